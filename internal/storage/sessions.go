package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/overload/internal/models"
	"github.com/jackc/pgx/v5"
)

// CreateSessionWithSets inserts the session row and its generated sets as
// one transaction. The session and sets get their assigned IDs on return.
func (db *DB) CreateSessionWithSets(ctx context.Context, session *models.WorkoutSession, sets []models.WorkoutSet) error {
	return db.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO workout_sessions (user_id, mesocycle_instance_id, workout_template_id,
				workout_date, week_number, day_number, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at
		`, session.UserID, session.InstanceID, session.TemplateID,
			session.WorkoutDate, session.WeekNumber, session.DayNumber,
			session.Status, session.Notes).Scan(&session.ID, &session.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting session: %w", err)
		}

		for i := range sets {
			sets[i].SessionID = session.ID
		}
		return insertSetsTx(ctx, tx, sets)
	})
}

// GetSession retrieves a session by ID, scoped to the owning user.
func (db *DB) GetSession(ctx context.Context, id, userID int64) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, mesocycle_instance_id, workout_template_id, workout_date,
			week_number, day_number, status, duration_minutes, notes, created_at, completed_at
		FROM workout_sessions WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&s.ID, &s.UserID, &s.InstanceID, &s.TemplateID, &s.WorkoutDate,
		&s.WeekNumber, &s.DayNumber, &s.Status, &s.DurationMinutes, &s.Notes, &s.CreatedAt, &s.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}

// SessionListItem is a session summary with its set count.
type SessionListItem struct {
	models.WorkoutSession
	SetCount int `json:"set_count"`
}

// SessionFilter narrows ListSessions results. Zero values mean no filter.
type SessionFilter struct {
	InstanceID int64
	Status     string
	Limit      int
	Offset     int
}

// ListSessions returns the user's sessions, newest workout date first.
func (db *DB) ListSessions(ctx context.Context, userID int64, f SessionFilter) ([]SessionListItem, error) {
	query := `
		SELECT s.id, s.user_id, s.mesocycle_instance_id, s.workout_template_id, s.workout_date,
			s.week_number, s.day_number, s.status, s.duration_minutes, s.notes, s.created_at, s.completed_at,
			(SELECT COUNT(*) FROM workout_sets ws WHERE ws.workout_session_id = s.id)
		FROM workout_sessions s
		WHERE s.user_id = $1`
	args := []any{userID}

	if f.InstanceID != 0 {
		args = append(args, f.InstanceID)
		query += fmt.Sprintf(" AND s.mesocycle_instance_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}

	query += " ORDER BY s.workout_date DESC, s.id DESC"
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
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []SessionListItem
	for rows.Next() {
		var item SessionListItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.InstanceID, &item.TemplateID, &item.WorkoutDate,
			&item.WeekNumber, &item.DayNumber, &item.Status, &item.DurationMinutes, &item.Notes,
			&item.CreatedAt, &item.CompletedAt, &item.SetCount); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// UpdateSession updates a session's mutable fields. Marking a session
// completed stamps completed_at once.
func (db *DB) UpdateSession(ctx context.Context, s models.WorkoutSession) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE workout_sessions
		SET status = $2, duration_minutes = $3, notes = $4,
			completed_at = CASE WHEN $2 = 'completed' AND completed_at IS NULL THEN NOW() ELSE completed_at END
		WHERE id = $1
	`, s.ID, s.Status, s.DurationMinutes, s.Notes)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating session %d: no rows", s.ID)
	}
	return nil
}

// DeleteSession removes a session and, via cascade, its sets.
func (db *DB) DeleteSession(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM workout_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// FindPreviousSession returns the most recent session in the same instance
// with a smaller week number and the same day number, or nil when none
// exists.
func (db *DB) FindPreviousSession(ctx context.Context, instanceID int64, week, day int) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, mesocycle_instance_id, workout_template_id, workout_date,
			week_number, day_number, status, duration_minutes, notes, created_at, completed_at
		FROM workout_sessions
		WHERE mesocycle_instance_id = $1 AND week_number < $2 AND day_number = $3
		ORDER BY week_number DESC
		LIMIT 1
	`, instanceID, week, day).Scan(&s.ID, &s.UserID, &s.InstanceID, &s.TemplateID, &s.WorkoutDate,
		&s.WeekNumber, &s.DayNumber, &s.Status, &s.DurationMinutes, &s.Notes, &s.CreatedAt, &s.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying previous session: %w", err)
	}
	return &s, nil
}

// FindSessionByWeekDay returns the session at (instance, week, day), or nil
// when none exists. Used to resolve cross-block source references.
func (db *DB) FindSessionByWeekDay(ctx context.Context, instanceID int64, week, day int) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, mesocycle_instance_id, workout_template_id, workout_date,
			week_number, day_number, status, duration_minutes, notes, created_at, completed_at
		FROM workout_sessions
		WHERE mesocycle_instance_id = $1 AND week_number = $2 AND day_number = $3
	`, instanceID, week, day).Scan(&s.ID, &s.UserID, &s.InstanceID, &s.TemplateID, &s.WorkoutDate,
		&s.WeekNumber, &s.DayNumber, &s.Status, &s.DurationMinutes, &s.Notes, &s.CreatedAt, &s.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session by week/day: %w", err)
	}
	return &s, nil
}
