package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Davidshtp/Dashboard/internal/models"
)

// CategoryRepository defines the persistence operations needed by the
// CategoryService.
type CategoryRepository interface {
	// GetAll retrieves every category.
	GetAll(ctx context.Context) ([]models.Category, error)
	// GetByID fetches a single category, sql.ErrNoRows if absent.
	GetByID(ctx context.Context, id string) (*models.Category, error)
	// Create inserts a new category.
	Create(ctx context.Context, c models.Category) error
	// Update renames an existing category.
	Update(ctx context.Context, c models.Category) error
	// Delete removes a category by ID.
	Delete(ctx context.Context, id string) error
	// NameTaken reports whether a category other than excludeID uses the
	// name, ignoring case.
	NameTaken(ctx context.Context, name, excludeID string) (bool, error)
	// CountItems returns how many items reference the category.
	CountItems(ctx context.Context, categoryID string) (int64, error)
}

// CategoryService implements category business rules: unique names ignoring
// case, and no deletion while items still reference the category.
type CategoryService struct {
	repo CategoryRepository
}

// NewCategoryService constructs a CategoryService with the provided repository.
func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// GetAll returns every category.
func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAll(ctx)
}

// Get returns a single category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("fetch category: %w", err)
	}
	return c, nil
}

// Create adds a new category with a server-assigned ID.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	taken, err := s.repo.NameTaken(ctx, name, "")
	if err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if taken {
		return nil, ErrCategoryNameTaken
	}

	c := models.Category{ID: uuid.NewString(), Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update renames an existing category, keeping names unique ignoring case.
func (s *CategoryService) Update(ctx context.Context, id, name string) (*models.Category, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	taken, err := s.repo.NameTaken(ctx, name, id)
	if err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if taken {
		return nil, ErrCategoryNameTaken
	}

	c := models.Category{ID: id, Name: name}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a category. Deletion is rejected while any item references it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(ctx, id)
}
