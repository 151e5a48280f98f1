package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/overload/internal/models"
)

// ExerciseFilter narrows ListExercises results. Zero values mean no filter.
type ExerciseFilter struct {
	MuscleGroup string
	Equipment   string
	Search      string
	Limit       int
	Offset      int
}

// ListExercises retrieves default exercises plus the user's custom ones,
// name-ordered, with optional filters.
func (db *DB) ListExercises(ctx context.Context, userID int64, f ExerciseFilter) ([]models.Exercise, error) {
	query := `SELECT id, name, description, muscle_group, equipment, is_custom, user_id
		FROM exercises WHERE (NOT is_custom OR user_id = $1)`
	args := []any{userID}

	if f.MuscleGroup != "" {
		args = append(args, "%"+f.MuscleGroup+"%")
		query += fmt.Sprintf(" AND muscle_group ILIKE $%d", len(args))
	}
	if f.Equipment != "" {
		args = append(args, "%"+f.Equipment+"%")
		query += fmt.Sprintf(" AND equipment ILIKE $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	query += " ORDER BY name"
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.MuscleGroup, &e.Equipment, &e.IsCustom, &e.UserID); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetExercise retrieves a single exercise by ID.
func (db *DB) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, description, muscle_group, equipment, is_custom, user_id
		FROM exercises WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Description, &e.MuscleGroup, &e.Equipment, &e.IsCustom, &e.UserID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return &e, nil
}

// CreateExercise inserts a custom exercise for a user.
func (db *DB) CreateExercise(ctx context.Context, e models.Exercise) (*models.Exercise, error) {
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO exercises (name, description, muscle_group, equipment, is_custom, user_id)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		RETURNING id
	`, e.Name, e.Description, e.MuscleGroup, e.Equipment, e.UserID).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("inserting exercise: %w", err)
	}
	e.IsCustom = true
	return &e, nil
}

// UpsertDefaultExercise inserts a library (non-custom) exercise, updating
// its metadata if one with the same name already exists. Returns true when a
// new row was created.
func (db *DB) UpsertDefaultExercise(ctx context.Context, e models.Exercise) (bool, error) {
	var inserted bool
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO exercises (name, description, muscle_group, equipment, is_custom)
		VALUES ($1, $2, $3, $4, FALSE)
		ON CONFLICT (name) WHERE NOT is_custom
		DO UPDATE SET description = EXCLUDED.description,
			muscle_group = EXCLUDED.muscle_group,
			equipment = EXCLUDED.equipment
		RETURNING (xmax = 0)
	`, e.Name, e.Description, e.MuscleGroup, e.Equipment).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upserting exercise %q: %w", e.Name, err)
	}
	return inserted, nil
}

// ExerciseIDByName resolves a library (non-custom) exercise name to its ID.
func (db *DB) ExerciseIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM exercises WHERE NOT is_custom AND name = $1
	`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolving exercise %q: %w", name, err)
	}
	return id, nil
}

// UpdateExercise updates a custom exercise's editable fields.
func (db *DB) UpdateExercise(ctx context.Context, e models.Exercise) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE exercises SET name = $2, description = $3, muscle_group = $4, equipment = $5
		WHERE id = $1
	`, e.ID, e.Name, e.Description, e.MuscleGroup, e.Equipment)
	if err != nil {
		return fmt.Errorf("updating exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating exercise %d: no rows", e.ID)
	}
	return nil
}

// DeleteExercise removes an exercise by ID.
func (db *DB) DeleteExercise(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	return nil
}

// ListMuscleGroups returns the distinct muscle groups in the library.
func (db *DB) ListMuscleGroups(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT DISTINCT muscle_group FROM exercises
		WHERE muscle_group <> '' ORDER BY muscle_group
	`)
	if err != nil {
		return nil, fmt.Errorf("querying muscle groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scanning muscle group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// MuscleGroupsByExercise resolves muscle groups for a batch of exercise IDs.
// IDs that do not resolve are simply absent from the result; the progression
// engine degrades them to its default classification.
func (db *DB) MuscleGroupsByExercise(ctx context.Context, ids []int64) (map[int64]string, error) {
	result := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT id, muscle_group FROM exercises WHERE id IN (`+strings.Join(placeholders, ",")+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("querying muscle groups by exercise: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var group string
		if err := rows.Scan(&id, &group); err != nil {
			return nil, fmt.Errorf("scanning muscle group: %w", err)
		}
		result[id] = group
	}
	return result, rows.Err()
}
