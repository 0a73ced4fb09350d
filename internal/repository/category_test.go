package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Davidshtp/Dashboard/internal/models"
)

func setupCategoryMock(t *testing.T) (*PostgresCategoryRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresCategoryRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCategoryGetAll(t *testing.T) {
	repo, mock, cleanup := setupCategoryMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM categories ORDER BY name`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("c1", "Bebidas").
			AddRow("c2", "Snacks"))

	categories, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Bebidas" {
		t.Errorf("unexpected first category: %+v", categories[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCategoryGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupCategoryMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM categories WHERE id = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCategoryNameTaken_IgnoresCase(t *testing.T) {
	repo, mock, cleanup := setupCategoryMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1) AND id <> $2)`)).
		WithArgs("bebidas", "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.NameTaken(context.Background(), "bebidas", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !taken {
		t.Errorf("expected name to be taken, got false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCategoryCountItems(t *testing.T) {
	repo, mock, cleanup := setupCategoryMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM items WHERE category_id = $1`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountItems(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 items, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCategoryCreate(t *testing.T) {
	repo, mock, cleanup := setupCategoryMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO categories (id, name) VALUES ($1, $2)`)).
		WithArgs("c1", "Bebidas").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), models.Category{ID: "c1", Name: "Bebidas"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
