// Package repository provides PostgreSQL persistence implementations for the
// dashboard services.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Davidshtp/Dashboard/internal/models"
)

// PostgresUserRepository implements user persistence against a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given
// database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

const userColumns = `id, name, last_name, email, password_hash, avatar, reset_code, reset_code_expires_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var expires sql.NullTime
	err := row.Scan(&u.ID, &u.Name, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Avatar, &u.ResetCode, &expires)
	if err != nil {
		return nil, err
	}
	if expires.Valid {
		u.ResetCodeExpiresAt = expires.Time
	}
	return &u, nil
}

// CreateUser inserts a new user record.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, u models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, name, last_name, email, password_hash, avatar)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Name, u.LastName, u.Email, u.PasswordHash, u.Avatar)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByEmail fetches a user by email. Returns sql.ErrNoRows if absent.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetByID fetches a user by ID. Returns sql.ErrNoRows if absent.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// EmailTaken reports whether another user already owns the given email.
// excludeID may be empty when checking at registration time.
func (r *PostgresUserRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var taken bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		email, excludeID,
	).Scan(&taken)
	return taken, err
}

// UpdateProfile overwrites the mutable profile fields of a user.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id, name, lastName, avatar string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET name = $2, last_name = $3, avatar = $4 WHERE id = $1
	`, id, name, lastName, avatar)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// UpdateEmail replaces a user's email address.
func (r *PostgresUserRepository) UpdateEmail(ctx context.Context, id, email string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET email = $2 WHERE id = $1`, id, email)
	if err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	return nil
}

// UpdatePassword replaces a user's password hash.
func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id string, hash []byte) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// SetResetCode stores a password-recovery code and its expiry for the user
// with the given email. Returns false if no such user exists.
func (r *PostgresUserRepository) SetResetCode(ctx context.Context, email, code string, expires time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET reset_code = $2, reset_code_expires_at = $3 WHERE email = $1
	`, email, code, expires)
	if err != nil {
		return false, fmt.Errorf("set reset code: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set reset code: %w", err)
	}
	return rows > 0, nil
}

// ResetPassword replaces the password hash and consumes the reset code in a
// single statement, so the code cannot be replayed.
func (r *PostgresUserRepository) ResetPassword(ctx context.Context, email string, hash []byte) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users
		   SET password_hash = $2, reset_code = '', reset_code_expires_at = NULL
		 WHERE email = $1
	`, email, hash)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}
