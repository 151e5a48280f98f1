package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/overload/internal/models"
)

// CreateInstance starts a new mesocycle instance.
func (db *DB) CreateInstance(ctx context.Context, userID, templateID int64, startDate time.Time) (*models.MesocycleInstance, error) {
	inst := models.MesocycleInstance{
		UserID:     userID,
		TemplateID: templateID,
		Status:     models.InstanceActive,
		StartDate:  startDate,
	}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO mesocycle_instances (user_id, mesocycle_template_id, status, start_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, userID, templateID, inst.Status, startDate).Scan(&inst.ID, &inst.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting instance: %w", err)
	}
	return &inst, nil
}

// GetInstance retrieves an instance by ID.
func (db *DB) GetInstance(ctx context.Context, id int64) (*models.MesocycleInstance, error) {
	var inst models.MesocycleInstance
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, mesocycle_template_id, status, start_date, end_date, created_at
		FROM mesocycle_instances WHERE id = $1
	`, id).Scan(&inst.ID, &inst.UserID, &inst.TemplateID, &inst.Status, &inst.StartDate, &inst.EndDate, &inst.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying instance: %w", err)
	}
	return &inst, nil
}

// GetActiveInstance retrieves the user's active instance, if any.
func (db *DB) GetActiveInstance(ctx context.Context, userID int64) (*models.MesocycleInstance, error) {
	var inst models.MesocycleInstance
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, mesocycle_template_id, status, start_date, end_date, created_at
		FROM mesocycle_instances WHERE user_id = $1 AND status = $2
	`, userID, models.InstanceActive).Scan(&inst.ID, &inst.UserID, &inst.TemplateID, &inst.Status, &inst.StartDate, &inst.EndDate, &inst.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying active instance: %w", err)
	}
	return &inst, nil
}

// InstanceListItem is an instance with its template's display info.
type InstanceListItem struct {
	models.MesocycleInstance
	TemplateName  string `json:"template_name"`
	TemplateWeeks int    `json:"template_weeks"`
	DaysPerWeek   int    `json:"template_days_per_week"`
}

// ListInstances returns the user's instances, newest first, with optional
// status filter.
func (db *DB) ListInstances(ctx context.Context, userID int64, status string) ([]InstanceListItem, error) {
	query := `
		SELECT i.id, i.user_id, i.mesocycle_template_id, i.status, i.start_date, i.end_date, i.created_at,
			COALESCE(m.name, 'Unknown'), COALESCE(m.weeks, 0), COALESCE(m.days_per_week, 0)
		FROM mesocycle_instances i
		LEFT JOIN mesocycles m ON m.id = i.mesocycle_template_id
		WHERE i.user_id = $1`
	args := []any{userID}
	if status != "" {
		args = append(args, status)
		query += " AND i.status = $2"
	}
	query += " ORDER BY i.created_at DESC"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying instances: %w", err)
	}
	defer rows.Close()

	var result []InstanceListItem
	for rows.Next() {
		var item InstanceListItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.TemplateID, &item.Status,
			&item.StartDate, &item.EndDate, &item.CreatedAt,
			&item.TemplateName, &item.TemplateWeeks, &item.DaysPerWeek); err != nil {
			return nil, fmt.Errorf("scanning instance: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// UpdateInstanceStatus changes an instance's status; completed/abandoned
// also stamp the end date.
func (db *DB) UpdateInstanceStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE mesocycle_instances SET status = $2 WHERE id = $1`
	if status == models.InstanceCompleted || status == models.InstanceAbandoned {
		query = `UPDATE mesocycle_instances SET status = $2, end_date = NOW() WHERE id = $1`
	}
	tag, err := db.Pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("updating instance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating instance %d: no rows", id)
	}
	return nil
}

// DeleteInstance removes an instance and, via cascade, its sessions and sets.
func (db *DB) DeleteInstance(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM mesocycle_instances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting instance: %w", err)
	}
	return nil
}
