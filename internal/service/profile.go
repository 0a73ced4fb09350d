package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Davidshtp/Dashboard/internal/models"
)

// ProfileService implements profile reads and updates: name/avatar changes,
// email changes with uniqueness re-checked, and password changes verified
// against the current credential.
type ProfileService struct {
	repo UserRepository
}

// NewProfileService constructs a ProfileService using the provided repository.
func NewProfileService(repo UserRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the user's profile.
func (s *ProfileService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return user, nil
}

// Update applies a partial profile update. Nil fields keep their current
// value; a provided-but-blank name is rejected.
func (s *ProfileService) Update(ctx context.Context, id string, name, lastName, avatar *string) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		user.Name = trimmed
	}
	if lastName != nil {
		trimmed := strings.TrimSpace(*lastName)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		user.LastName = trimmed
	}
	if avatar != nil {
		user.Avatar = *avatar
	}

	if err := s.repo.UpdateProfile(ctx, id, user.Name, user.LastName, user.Avatar); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateEmail changes the user's email, re-checking uniqueness against every
// other account.
func (s *ProfileService) UpdateEmail(ctx context.Context, id, newEmail string) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	newEmail = NormalizeEmail(newEmail)
	if !strings.Contains(newEmail, "@") {
		return nil, ErrInvalidEmail
	}

	taken, err := s.repo.EmailTaken(ctx, newEmail, id)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	if err := s.repo.UpdateEmail(ctx, id, newEmail); err != nil {
		return nil, err
	}
	user.Email = newEmail
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *ProfileService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(currentPassword)); err != nil {
		return nil, ErrWrongPassword
	}
	if len(newPassword) < 6 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	return user, nil
}
