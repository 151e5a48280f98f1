package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/overload/internal/models"
	"github.com/claude/overload/internal/progression"
	"github.com/jackc/pgx/v5"
)

const setColumns = `id, workout_session_id, exercise_id, set_number, order_index,
	weight, reps, rir, target_weight, target_reps, target_rir, skipped, notes`

// GetSessionSets returns a session's sets in display order.
func (db *DB) GetSessionSets(ctx context.Context, sessionID int64) ([]models.WorkoutSet, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+setColumns+`
		FROM workout_sets WHERE workout_session_id = $1
		ORDER BY order_index, set_number
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session sets: %w", err)
	}
	defer rows.Close()
	return scanSets(rows)
}

// GetSet retrieves a single set by ID.
func (db *DB) GetSet(ctx context.Context, id int64) (*models.WorkoutSet, error) {
	row := db.Pool.QueryRow(ctx, `
		SELECT `+setColumns+`
		FROM workout_sets WHERE id = $1
	`, id)
	var s models.WorkoutSet
	if err := scanSet(row, &s); err != nil {
		return nil, fmt.Errorf("querying set: %w", err)
	}
	return &s, nil
}

// UpdateSetLog records what the user actually performed on a set.
func (db *DB) UpdateSetLog(ctx context.Context, s models.WorkoutSet) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE workout_sets
		SET weight = $2, reps = $3, rir = $4, skipped = $5, notes = $6
		WHERE id = $1
	`, s.ID, s.Weight, s.Reps, s.RIR, s.Skipped, s.Notes)
	if err != nil {
		return fmt.Errorf("updating set log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating set %d: no rows", s.ID)
	}
	return nil
}

// UpdateSetTargets persists recomputed targets for the given sets. Called
// after a target refresh; only the target columns change.
func (db *DB) UpdateSetTargets(ctx context.Context, sets []models.WorkoutSet) error {
	if len(sets) == 0 {
		return nil
	}
	return db.withTx(ctx, func(tx pgx.Tx) error {
		for _, s := range sets {
			_, err := tx.Exec(ctx, `
				UPDATE workout_sets SET target_weight = $2, target_reps = $3, target_rir = $4
				WHERE id = $1
			`, s.ID, s.TargetWeight, s.TargetReps, s.TargetRIR)
			if err != nil {
				return fmt.Errorf("updating set %d targets: %w", s.ID, err)
			}
		}
		return nil
	})
}

// ApplyMutation applies a session mutation's inserts, updates, and deletes
// in a single transaction.
func (db *DB) ApplyMutation(ctx context.Context, m progression.Mutation) error {
	if m.Empty() {
		return nil
	}
	return db.withTx(ctx, func(tx pgx.Tx) error {
		if err := insertSetsTx(ctx, tx, m.Insert); err != nil {
			return err
		}
		for _, s := range m.Update {
			_, err := tx.Exec(ctx, `
				UPDATE workout_sets
				SET exercise_id = $2, set_number = $3, order_index = $4,
					weight = $5, reps = $6, rir = $7,
					target_weight = $8, target_reps = $9, target_rir = $10,
					skipped = $11, notes = $12
				WHERE id = $1
			`, s.ID, s.ExerciseID, s.SetNumber, s.OrderIndex,
				s.Weight, s.Reps, s.RIR,
				s.TargetWeight, s.TargetReps, s.TargetRIR,
				s.Skipped, s.Notes)
			if err != nil {
				return fmt.Errorf("updating set %d: %w", s.ID, err)
			}
		}
		if len(m.Delete) > 0 {
			placeholders := make([]string, len(m.Delete))
			args := make([]any, len(m.Delete))
			for i, id := range m.Delete {
				placeholders[i] = fmt.Sprintf("$%d", i+1)
				args[i] = id
			}
			_, err := tx.Exec(ctx,
				`DELETE FROM workout_sets WHERE id IN (`+strings.Join(placeholders, ",")+`)`,
				args...)
			if err != nil {
				return fmt.Errorf("deleting sets: %w", err)
			}
		}
		return nil
	})
}

// insertSetsTx inserts the given sets within an open transaction and fills
// in their assigned IDs.
func insertSetsTx(ctx context.Context, tx pgx.Tx, sets []models.WorkoutSet) error {
	for i := range sets {
		s := &sets[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO workout_sets (workout_session_id, exercise_id, set_number, order_index,
				weight, reps, rir, target_weight, target_reps, target_rir, skipped, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id
		`, s.SessionID, s.ExerciseID, s.SetNumber, s.OrderIndex,
			s.Weight, s.Reps, s.RIR,
			s.TargetWeight, s.TargetReps, s.TargetRIR,
			s.Skipped, s.Notes).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("inserting set: %w", err)
		}
	}
	return nil
}

func scanSets(rows pgx.Rows) ([]models.WorkoutSet, error) {
	var result []models.WorkoutSet
	for rows.Next() {
		var s models.WorkoutSet
		if err := scanSet(rows, &s); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func scanSet(row pgx.Row, s *models.WorkoutSet) error {
	return row.Scan(&s.ID, &s.SessionID, &s.ExerciseID, &s.SetNumber, &s.OrderIndex,
		&s.Weight, &s.Reps, &s.RIR,
		&s.TargetWeight, &s.TargetReps, &s.TargetRIR,
		&s.Skipped, &s.Notes)
}
