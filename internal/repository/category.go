package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Davidshtp/Dashboard/internal/models"
)

// PostgresCategoryRepository implements category persistence against a
// PostgreSQL database.
type PostgresCategoryRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository using
// the provided *sql.DB.
func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{DB: db}
}

// GetAll fetches every category ordered by name.
func (r *PostgresCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetByID fetches a single category. Returns sql.ErrNoRows if absent.
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category.
func (r *PostgresCategoryRepository) Create(ctx context.Context, c models.Category) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Update renames an existing category.
func (r *PostgresCategoryRepository) Update(ctx context.Context, c models.Category) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1`, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// NameTaken reports whether another category already uses the given name,
// ignoring case. excludeID may be empty when checking at creation time.
func (r *PostgresCategoryRepository) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var taken bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1) AND id <> $2)`,
		name, excludeID,
	).Scan(&taken)
	return taken, err
}

// CountItems returns how many items reference the category.
func (r *PostgresCategoryRepository) CountItems(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE category_id = $1`, categoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}
