package storage

import (
	"context"
	"fmt"
	"time"
)

// ProgressionPoint is one logged set in an exercise's history.
type ProgressionPoint struct {
	SessionID   int64     `json:"session_id"`
	WorkoutDate time.Time `json:"workout_date"`
	WeekNumber  int       `json:"week_number"`
	SetNumber   int       `json:"set_number"`
	Weight      float64   `json:"weight"`
	Reps        int       `json:"reps"`
	RIR         *int      `json:"rir,omitempty"`
}

// ExerciseProgression returns the logged history for one exercise across a
// user's sessions, oldest first. Unlogged and skipped sets are excluded.
func (db *DB) ExerciseProgression(ctx context.Context, userID, exerciseID int64, limit int) ([]ProgressionPoint, error) {
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT s.id, s.workout_date, s.week_number, ws.set_number, ws.weight, ws.reps, ws.rir
		FROM workout_sets ws
		JOIN workout_sessions s ON s.id = ws.workout_session_id
		WHERE s.user_id = $1 AND ws.exercise_id = $2
			AND ws.weight > 0 AND ws.reps > 0 AND NOT ws.skipped
		ORDER BY s.workout_date, s.id, ws.set_number
		LIMIT $3
	`, userID, exerciseID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying exercise progression: %w", err)
	}
	defer rows.Close()

	var result []ProgressionPoint
	for rows.Next() {
		var p ProgressionPoint
		if err := rows.Scan(&p.SessionID, &p.WorkoutDate, &p.WeekNumber, &p.SetNumber,
			&p.Weight, &p.Reps, &p.RIR); err != nil {
			return nil, fmt.Errorf("scanning progression point: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// VolumeRow is the per-week, per-muscle-group set volume within a block.
type VolumeRow struct {
	WeekNumber  int    `json:"week_number"`
	MuscleGroup string `json:"muscle_group"`
	SetCount    int    `json:"set_count"`
	LoggedCount int    `json:"logged_count"`
}

// BlockVolume aggregates set counts per week and muscle group for one
// mesocycle instance. Exercises with no library entry count under "Other".
func (db *DB) BlockVolume(ctx context.Context, instanceID int64) ([]VolumeRow, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT s.week_number, COALESCE(NULLIF(e.muscle_group, ''), 'Other'),
			COUNT(*),
			COUNT(*) FILTER (WHERE ws.weight > 0 AND ws.reps > 0 AND NOT ws.skipped)
		FROM workout_sets ws
		JOIN workout_sessions s ON s.id = ws.workout_session_id
		LEFT JOIN exercises e ON e.id = ws.exercise_id
		WHERE s.mesocycle_instance_id = $1
		GROUP BY s.week_number, COALESCE(NULLIF(e.muscle_group, ''), 'Other')
		ORDER BY s.week_number, 2
	`, instanceID)
	if err != nil {
		return nil, fmt.Errorf("querying block volume: %w", err)
	}
	defer rows.Close()

	var result []VolumeRow
	for rows.Next() {
		var v VolumeRow
		if err := rows.Scan(&v.WeekNumber, &v.MuscleGroup, &v.SetCount, &v.LoggedCount); err != nil {
			return nil, fmt.Errorf("scanning volume row: %w", err)
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
