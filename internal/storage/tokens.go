package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InsertToken stores an opaque bearer token for a user.
func (db *DB) InsertToken(ctx context.Context, token uuid.UUID, userID int64, expiresAt time.Time) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO auth_tokens (token, user_id, expires_at) VALUES ($1, $2, $3)
	`, token, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("inserting token: %w", err)
	}
	return nil
}

// UserIDForToken resolves a bearer token to a user ID. Expired tokens do not
// resolve.
func (db *DB) UserIDForToken(ctx context.Context, token uuid.UUID) (int64, error) {
	var userID int64
	err := db.Pool.QueryRow(ctx, `
		SELECT user_id FROM auth_tokens WHERE token = $1 AND expires_at > NOW()
	`, token).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("resolving token: %w", err)
	}
	return userID, nil
}

// DeleteToken revokes a bearer token (logout).
func (db *DB) DeleteToken(ctx context.Context, token uuid.UUID) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM auth_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}
