package storage

import (
	"context"
	"fmt"

	"github.com/claude/overload/internal/models"
	"github.com/jackc/pgx/v5"
)

// CreateMesocycle inserts a mesocycle template with its nested workout
// templates and exercises in one transaction.
func (db *DB) CreateMesocycle(ctx context.Context, m models.Mesocycle) (*models.Mesocycle, error) {
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		return insertMesocycleTx(ctx, tx, &m)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ReplaceStockMesocycle upserts a stock template by name: any existing stock
// template with the same name is dropped (cascading its workouts and
// exercises) and the new definition inserted, all in one transaction.
func (db *DB) ReplaceStockMesocycle(ctx context.Context, m models.Mesocycle) (*models.Mesocycle, error) {
	m.IsStock = true
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM mesocycles WHERE is_stock AND name = $1`, m.Name); err != nil {
			return fmt.Errorf("dropping stock mesocycle %q: %w", m.Name, err)
		}
		return insertMesocycleTx(ctx, tx, &m)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func insertMesocycleTx(ctx context.Context, tx pgx.Tx, m *models.Mesocycle) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO mesocycles (user_id, name, description, weeks, days_per_week, is_stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, m.UserID, m.Name, m.Description, m.Weeks, m.DaysPerWeek, m.IsStock).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting mesocycle: %w", err)
	}

	for wi := range m.Workouts {
		w := &m.Workouts[wi]
		w.MesocycleID = m.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO workout_templates (mesocycle_id, name, description, order_index)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, w.MesocycleID, w.Name, w.Description, w.OrderIndex).Scan(&w.ID)
		if err != nil {
			return fmt.Errorf("inserting workout template: %w", err)
		}

		for ei := range w.Exercises {
			e := &w.Exercises[ei]
			e.WorkoutTemplateID = w.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO workout_exercises (workout_template_id, exercise_id, order_index,
					target_sets, target_reps_min, target_reps_max, starting_rir, ending_rir, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id
			`, e.WorkoutTemplateID, e.ExerciseID, e.OrderIndex,
				e.TargetSets, e.TargetRepsMin, e.TargetRepsMax, e.StartingRIR, e.EndingRIR, e.Notes).Scan(&e.ID)
			if err != nil {
				return fmt.Errorf("inserting workout exercise: %w", err)
			}
		}
	}
	return nil
}

// GetMesocycle retrieves a mesocycle with nested workout templates and
// exercises (including each exercise's muscle group).
func (db *DB) GetMesocycle(ctx context.Context, id int64) (*models.Mesocycle, error) {
	var m models.Mesocycle
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, name, description, weeks, days_per_week, is_stock, created_at
		FROM mesocycles WHERE id = $1
	`, id).Scan(&m.ID, &m.UserID, &m.Name, &m.Description, &m.Weeks, &m.DaysPerWeek, &m.IsStock, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying mesocycle: %w", err)
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT id, mesocycle_id, name, description, order_index
		FROM workout_templates WHERE mesocycle_id = $1 ORDER BY order_index
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying workout templates: %w", err)
	}
	defer rows.Close()

	index := make(map[int64]int)
	for rows.Next() {
		var w models.WorkoutTemplate
		if err := rows.Scan(&w.ID, &w.MesocycleID, &w.Name, &w.Description, &w.OrderIndex); err != nil {
			return nil, fmt.Errorf("scanning workout template: %w", err)
		}
		index[w.ID] = len(m.Workouts)
		m.Workouts = append(m.Workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exRows, err := db.Pool.Query(ctx, `
		SELECT we.id, we.workout_template_id, we.exercise_id, we.order_index,
			we.target_sets, we.target_reps_min, we.target_reps_max,
			we.starting_rir, we.ending_rir, we.notes,
			COALESCE(e.muscle_group, '')
		FROM workout_exercises we
		JOIN workout_templates wt ON wt.id = we.workout_template_id
		LEFT JOIN exercises e ON e.id = we.exercise_id
		WHERE wt.mesocycle_id = $1
		ORDER BY we.order_index
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer exRows.Close()

	for exRows.Next() {
		var e models.TemplateExercise
		if err := exRows.Scan(&e.ID, &e.WorkoutTemplateID, &e.ExerciseID, &e.OrderIndex,
			&e.TargetSets, &e.TargetRepsMin, &e.TargetRepsMax,
			&e.StartingRIR, &e.EndingRIR, &e.Notes, &e.MuscleGroup); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}
		if i, ok := index[e.WorkoutTemplateID]; ok {
			m.Workouts[i].Exercises = append(m.Workouts[i].Exercises, e)
		}
	}
	return &m, exRows.Err()
}

// MesocycleListItem is a mesocycle summary with its workout count.
type MesocycleListItem struct {
	models.Mesocycle
	WorkoutCount int `json:"workout_count"`
}

// ListMesocycles returns the user's templates plus stock templates, stock
// first, newest first within each.
func (db *DB) ListMesocycles(ctx context.Context, userID int64) ([]MesocycleListItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT m.id, m.user_id, m.name, m.description, m.weeks, m.days_per_week, m.is_stock, m.created_at,
			(SELECT COUNT(*) FROM workout_templates wt WHERE wt.mesocycle_id = m.id)
		FROM mesocycles m
		WHERE m.user_id = $1 OR m.is_stock
		ORDER BY m.is_stock DESC, m.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying mesocycles: %w", err)
	}
	defer rows.Close()

	var result []MesocycleListItem
	for rows.Next() {
		var item MesocycleListItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Description,
			&item.Weeks, &item.DaysPerWeek, &item.IsStock, &item.CreatedAt, &item.WorkoutCount); err != nil {
			return nil, fmt.Errorf("scanning mesocycle: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// UpdateMesocycle updates a template's editable top-level fields.
func (db *DB) UpdateMesocycle(ctx context.Context, m models.Mesocycle) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE mesocycles SET name = $2, description = $3, weeks = $4, days_per_week = $5
		WHERE id = $1
	`, m.ID, m.Name, m.Description, m.Weeks, m.DaysPerWeek)
	if err != nil {
		return fmt.Errorf("updating mesocycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating mesocycle %d: no rows", m.ID)
	}
	return nil
}

// DeleteMesocycle removes a template and, via cascade, its workouts and
// exercises.
func (db *DB) DeleteMesocycle(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM mesocycles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting mesocycle: %w", err)
	}
	return nil
}

// GetTemplateExercises returns a workout template's exercises in order,
// with muscle groups resolved where the exercise still exists.
func (db *DB) GetTemplateExercises(ctx context.Context, workoutTemplateID int64) ([]models.TemplateExercise, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT we.id, we.workout_template_id, we.exercise_id, we.order_index,
			we.target_sets, we.target_reps_min, we.target_reps_max,
			we.starting_rir, we.ending_rir, we.notes,
			COALESCE(e.muscle_group, '')
		FROM workout_exercises we
		LEFT JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_template_id = $1
		ORDER BY we.order_index
	`, workoutTemplateID)
	if err != nil {
		return nil, fmt.Errorf("querying template exercises: %w", err)
	}
	defer rows.Close()

	var result []models.TemplateExercise
	for rows.Next() {
		var e models.TemplateExercise
		if err := rows.Scan(&e.ID, &e.WorkoutTemplateID, &e.ExerciseID, &e.OrderIndex,
			&e.TargetSets, &e.TargetRepsMin, &e.TargetRepsMax,
			&e.StartingRIR, &e.EndingRIR, &e.Notes, &e.MuscleGroup); err != nil {
			return nil, fmt.Errorf("scanning template exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
