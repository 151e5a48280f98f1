package storage

import (
	"context"
	"fmt"

	"github.com/claude/overload/internal/models"
)

// CreateUser inserts a new user and returns it with the assigned ID.
func (db *DB) CreateUser(ctx context.Context, email, passwordHash, fullName string) (*models.User, error) {
	u := models.User{Email: email, PasswordHash: passwordHash, FullName: fullName, IsActive: true}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, email, passwordHash, fullName).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return &u, nil
}

// EnsureUser inserts a user if the email is unknown and returns the ID
// either way. Used for the library account that owns stock templates; its
// password hash is empty so it can never log in.
func (db *DB) EnsureUser(ctx context.Context, email, fullName string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, is_active)
		VALUES ($1, '', $2, FALSE)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, email, fullName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensuring user %q: %w", email, err)
	}
	return id, nil
}

// GetUserByEmail retrieves a user by email for login.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx, `
		SELECT id, email, password_hash, full_name, is_active, created_at, last_login
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsActive, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	return &u, nil
}

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx, `
		SELECT id, email, password_hash, full_name, is_active, created_at, last_login
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsActive, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// TouchLastLogin records a successful login.
func (db *DB) TouchLastLogin(ctx context.Context, userID int64) error {
	_, err := db.Pool.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}
