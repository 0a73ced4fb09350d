// Package service provides the business logic for authentication, categories,
// inventory items and profiles, delegating persistence to repository
// interfaces.
package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Davidshtp/Dashboard/internal/models"
)

// UserRepository defines the persistence operations required by the
// authentication and profile services.
type UserRepository interface {
	// CreateUser inserts a new user record.
	CreateUser(ctx context.Context, u models.User) error
	// GetByEmail fetches a user by email, sql.ErrNoRows if absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID fetches a user by ID, sql.ErrNoRows if absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// EmailTaken reports whether a user other than excludeID owns the email.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	// UpdateProfile overwrites the user's name, last name and avatar.
	UpdateProfile(ctx context.Context, id, name, lastName, avatar string) error
	// UpdateEmail replaces the user's email address.
	UpdateEmail(ctx context.Context, id, email string) error
	// UpdatePassword replaces the user's password hash.
	UpdatePassword(ctx context.Context, id string, hash []byte) error
	// SetResetCode stores a recovery code and expiry; false if no such user.
	SetResetCode(ctx context.Context, email, code string, expires time.Time) (bool, error)
	// ResetPassword replaces the password hash and consumes the reset code.
	ResetPassword(ctx context.Context, email string, hash []byte) error
}

// AuthService implements registration, login and password recovery.
type AuthService struct {
	repo UserRepository
	// resetTTL bounds how long a recovery code stays valid.
	resetTTL time.Duration
}

// NewAuthService constructs an AuthService using the provided repository.
func NewAuthService(repo UserRepository, resetTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, resetTTL: resetTTL}
}

// NormalizeEmail lowercases and trims an email before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user. The email must not already be registered and
// the password must be at least 6 characters.
func (s *AuthService) Register(ctx context.Context, name, lastName, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	lastName = strings.TrimSpace(lastName)
	email = NormalizeEmail(email)

	if name == "" || lastName == "" {
		return nil, ErrNameRequired
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	taken, err := s.repo.EmailTaken(ctx, email, "")
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies the credentials and returns the matching user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}
	return user, nil
}

// CurrentUser resolves a user ID (typically from a verified token) to the
// full user record.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return user, nil
}

// ForgotPassword generates a 6-digit one-time recovery code for the account,
// stores it with a bounded validity window and returns it for out-of-band
// delivery.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	code, err := generateResetCode()
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}

	ok, err := s.repo.SetResetCode(ctx, NormalizeEmail(email), code, time.Now().Add(s.resetTTL))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUserNotFound
	}
	return code, nil
}

// ResetPassword validates the recovery code and replaces the password. The
// code is single-use: it is cleared together with the password update.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = NormalizeEmail(email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("fetch user: %w", err)
	}

	if user.ResetCode == "" || user.ResetCode != code {
		return ErrInvalidResetCode
	}
	if !user.ResetCodeExpiresAt.IsZero() && time.Now().After(user.ResetCodeExpiresAt) {
		return ErrInvalidResetCode
	}
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.ResetPassword(ctx, email, hash)
}

// generateResetCode draws a uniform 6-digit numeric code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
