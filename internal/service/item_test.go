package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Davidshtp/Dashboard/internal/models"
)

type mockItemRepo struct {
	GetAllFunc        func(ctx context.Context) ([]models.Item, error)
	GetByIDFunc       func(ctx context.Context, id string) (*models.Item, error)
	GetByCategoryFunc func(ctx context.Context, categoryID string) ([]models.Item, error)
	CreateFunc        func(ctx context.Context, it models.Item) error
	UpdateFunc        func(ctx context.Context, it models.Item) error
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *mockItemRepo) GetAll(ctx context.Context) ([]models.Item, error) {
	return m.GetAllFunc(ctx)
}
func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*models.Item, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockItemRepo) GetByCategory(ctx context.Context, categoryID string) ([]models.Item, error) {
	return m.GetByCategoryFunc(ctx, categoryID)
}
func (m *mockItemRepo) Create(ctx context.Context, it models.Item) error {
	return m.CreateFunc(ctx, it)
}
func (m *mockItemRepo) Update(ctx context.Context, it models.Item) error {
	return m.UpdateFunc(ctx, it)
}
func (m *mockItemRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

// mockCategoryProvider serves a fixed category set.
type mockCategoryProvider struct {
	categories []models.Category
}

func (m *mockCategoryProvider) GetAll(ctx context.Context) ([]models.Category, error) {
	return m.categories, nil
}
func (m *mockCategoryProvider) GetByID(ctx context.Context, id string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func validInput() ItemInput {
	return ItemInput{
		Name:       "Coffee",
		Quantity:   10,
		Price:      decimal.RequireFromString("4.50"),
		CategoryID: "c1",
	}
}

func itemDeps() (*mockItemRepo, *mockCategoryProvider) {
	return &mockItemRepo{}, &mockCategoryProvider{
		categories: []models.Category{{ID: "c1", Name: "Bebidas"}},
	}
}

func TestItemCreate_ZeroPrice(t *testing.T) {
	repo, cats := itemDeps()
	svc := NewItemService(repo, cats)

	in := validInput()
	in.Price = decimal.Zero

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrNonPositivePrice) {
		t.Errorf("Create error = %v; want ErrNonPositivePrice", err)
	}
}

func TestItemCreate_NegativeQuantity(t *testing.T) {
	repo, cats := itemDeps()
	svc := NewItemService(repo, cats)

	in := validInput()
	in.Quantity = -1

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrNegativeQuantity) {
		t.Errorf("Create error = %v; want ErrNegativeQuantity", err)
	}
}

func TestItemCreate_UnknownCategory(t *testing.T) {
	repo, cats := itemDeps()
	svc := NewItemService(repo, cats)

	in := validInput()
	in.CategoryID = "missing"

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Create error = %v; want ErrUnknownCategory", err)
	}
}

func TestItemCreate_Success(t *testing.T) {
	repo, cats := itemDeps()
	var created models.Item
	repo.CreateFunc = func(ctx context.Context, it models.Item) error {
		created = it
		return nil
	}
	svc := NewItemService(repo, cats)

	it, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if it.ID == "" || it.ID != created.ID {
		t.Errorf("expected a generated ID, got %q", it.ID)
	}
}

func TestItemGetAll_JoinsCategoryNames(t *testing.T) {
	repo, cats := itemDeps()
	repo.GetAllFunc = func(ctx context.Context) ([]models.Item, error) {
		return []models.Item{
			{ID: "i1", Name: "Coffee", CategoryID: "c1", Price: decimal.New(1, 0)},
			{ID: "i2", Name: "Orphan", CategoryID: "gone", Price: decimal.New(1, 0)},
		}, nil
	}
	svc := NewItemService(repo, cats)

	items, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if items[0].CategoryName != "Bebidas" {
		t.Errorf("expected joined category name, got %q", items[0].CategoryName)
	}
	if items[1].CategoryName != "unknown category" {
		t.Errorf("expected placeholder for missing category, got %q", items[1].CategoryName)
	}
}

func TestItemUpdate_NotFound(t *testing.T) {
	repo, cats := itemDeps()
	repo.GetByIDFunc = func(context.Context, string) (*models.Item, error) {
		return nil, sql.ErrNoRows
	}
	svc := NewItemService(repo, cats)

	_, err := svc.Update(context.Background(), "missing", validInput())
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Update error = %v; want ErrItemNotFound", err)
	}
}
