package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Davidshtp/Dashboard/internal/models"
)

// PostgresItemRepository implements inventory item persistence against a
// PostgreSQL database.
type PostgresItemRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresItemRepository creates a new PostgresItemRepository using the
// provided *sql.DB.
func NewPostgresItemRepository(db *sql.DB) *PostgresItemRepository {
	return &PostgresItemRepository{DB: db}
}

const itemColumns = `id, name, description, quantity, price, category_id`

func scanItems(rows *sql.Rows) ([]models.Item, error) {
	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Quantity, &it.Price, &it.CategoryID); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetAll fetches every inventory item ordered by name.
func (r *PostgresItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// GetByID fetches a single item. Returns sql.ErrNoRows if absent.
func (r *PostgresItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Quantity, &it.Price, &it.CategoryID)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByCategory fetches all items referencing the given category.
func (r *PostgresItemRepository) GetByCategory(ctx context.Context, categoryID string) ([]models.Item, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE category_id = $1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("get items by category: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// Create inserts a new item.
func (r *PostgresItemRepository) Create(ctx context.Context, it models.Item) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO items (id, name, description, quantity, price, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, it.ID, it.Name, it.Description, it.Quantity, it.Price, it.CategoryID)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// Update overwrites an existing item.
func (r *PostgresItemRepository) Update(ctx context.Context, it models.Item) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE items
		   SET name = $2, description = $3, quantity = $4, price = $5, category_id = $6
		 WHERE id = $1
	`, it.ID, it.Name, it.Description, it.Quantity, it.Price, it.CategoryID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete removes an item by ID.
func (r *PostgresItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
