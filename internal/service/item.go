package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Davidshtp/Dashboard/internal/models"
)

// ItemRepository defines the persistence operations needed by the ItemService.
type ItemRepository interface {
	// GetAll retrieves every inventory item.
	GetAll(ctx context.Context) ([]models.Item, error)
	// GetByID fetches a single item, sql.ErrNoRows if absent.
	GetByID(ctx context.Context, id string) (*models.Item, error)
	// GetByCategory retrieves all items referencing the category.
	GetByCategory(ctx context.Context, categoryID string) ([]models.Item, error)
	// Create inserts a new item.
	Create(ctx context.Context, it models.Item) error
	// Update overwrites an existing item.
	Update(ctx context.Context, it models.Item) error
	// Delete removes an item by ID.
	Delete(ctx context.Context, id string) error
}

// CategoryProvider is the read-only view of categories the ItemService needs
// for referential checks and display names.
type CategoryProvider interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
}

// ItemInput carries the client-supplied fields of an item.
type ItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
}

// ItemWithCategory is an item joined with its category's display name.
type ItemWithCategory struct {
	models.Item
	CategoryName string `json:"categoryName"`
}

// ItemService implements inventory item business rules: non-negative
// quantities, positive prices and a valid category reference.
type ItemService struct {
	repo       ItemRepository
	categories CategoryProvider
}

// NewItemService constructs an ItemService with the provided repositories.
func NewItemService(repo ItemRepository, categories CategoryProvider) *ItemService {
	return &ItemService{repo: repo, categories: categories}
}

// validate rejects malformed input before it reaches the repository.
func (s *ItemService) validate(ctx context.Context, in *ItemInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if !in.Price.IsPositive() {
		return ErrNonPositivePrice
	}
	if in.CategoryID == "" {
		return ErrUnknownCategory
	}
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownCategory
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

// GetAll returns every item joined with its category name.
func (s *ItemService) GetAll(ctx context.Context) ([]ItemWithCategory, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	out := make([]ItemWithCategory, 0, len(items))
	for _, it := range items {
		name, ok := names[it.CategoryID]
		if !ok {
			name = "unknown category"
		}
		out = append(out, ItemWithCategory{Item: it, CategoryName: name})
	}
	return out, nil
}

// Get returns a single item joined with its category name.
func (s *ItemService) Get(ctx context.Context, id string) (*ItemWithCategory, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("fetch item: %w", err)
	}

	name := "unknown category"
	if c, err := s.categories.GetByID(ctx, it.CategoryID); err == nil {
		name = c.Name
	}
	return &ItemWithCategory{Item: *it, CategoryName: name}, nil
}

// GetByCategory returns the items referencing an existing category.
func (s *ItemService) GetByCategory(ctx context.Context, categoryID string) ([]models.Item, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownCategory
		}
		return nil, fmt.Errorf("check category: %w", err)
	}
	return s.repo.GetByCategory(ctx, categoryID)
}

// Create adds a new item with a server-assigned ID.
func (s *ItemService) Create(ctx context.Context, in ItemInput) (*models.Item, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	it := models.Item{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return &it, nil
}

// Update overwrites an existing item after validating the input.
func (s *ItemService) Update(ctx context.Context, id string, in ItemInput) (*models.Item, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("fetch item: %w", err)
	}

	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	it := models.Item{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
	}
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return &it, nil
}

// Delete removes an item by ID.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrItemNotFound
		}
		return fmt.Errorf("fetch item: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
