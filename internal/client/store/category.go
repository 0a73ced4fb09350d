// Package store holds the client-side state containers: per-entity caches
// that mirror gateway state, the session guard and the password-recovery
// flow. Stores are plain injected instances, not globals, and they are never
// optimistic: a cache mutates only after the gateway confirms the operation.
package store

import (
	"context"
	"sync"

	"github.com/Davidshtp/Dashboard/internal/client/gateway"
	"github.com/Davidshtp/Dashboard/internal/models"
)

// CategoryStore caches the category collection and serializes all mutations
// through the gateway.
type CategoryStore struct {
	mu         sync.Mutex
	gw         *gateway.Client
	categories []models.Category
	loading    bool
	err        string

	// InUse reports whether any cached item still references the category.
	// When set, Remove rejects referenced categories without contacting the
	// gateway.
	InUse func(categoryID string) bool
}

// NewCategoryStore returns an empty store bound to the gateway client.
func NewCategoryStore(gw *gateway.Client) *CategoryStore {
	return &CategoryStore{gw: gw}
}

// Categories returns a copy of the cached collection.
func (s *CategoryStore) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Exists reports whether a category with the given ID is cached.
func (s *CategoryStore) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Loading reports whether the most recently started call is still in flight.
// It only drives spinners; it must not gate correctness.
func (s *CategoryStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the message recorded by the last failed operation, empty after
// a success.
func (s *CategoryStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *CategoryStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *CategoryStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

// FetchAll requests the full collection and replaces the cache wholesale on
// success. On failure the previous cache is left untouched.
func (s *CategoryStore) FetchAll(ctx context.Context) error {
	s.begin()

	categories, err := s.gw.Categories(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.categories = categories
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Add validates the name locally, sends the creation request and appends the
// server-returned entity to the cache.
func (s *CategoryStore) Add(ctx context.Context, name string) (*models.Category, error) {
	if err := ValidateCategoryName(name, s.Categories(), ""); err != nil {
		return nil, err
	}
	s.begin()

	category, err := s.gw.CreateCategory(ctx, name)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.categories = append(s.categories, *category)
	s.loading = false
	s.mu.Unlock()
	return category, nil
}

// Update validates the rename locally, sends it and replaces the cached entry
// with the server's representation.
func (s *CategoryStore) Update(ctx context.Context, id, name string) (*models.Category, error) {
	if err := ValidateCategoryName(name, s.Categories(), id); err != nil {
		return nil, err
	}
	s.begin()

	category, err := s.gw.UpdateCategory(ctx, id, name)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i] = *category
			break
		}
	}
	s.loading = false
	s.mu.Unlock()
	return category, nil
}

// Remove deletes a category. A category referenced by any cached item is
// rejected locally without a network round-trip.
func (s *CategoryStore) Remove(ctx context.Context, id string) error {
	if s.InUse != nil && s.InUse(id) {
		return ErrCategoryInUse
	}
	s.begin()

	if err := s.gw.DeleteCategory(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.loading = false
	s.mu.Unlock()
	return nil
}

// SetAll overrides the cache wholesale, for manual refresh paths.
func (s *CategoryStore) SetAll(categories []models.Category) {
	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
}
