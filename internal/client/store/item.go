package store

import (
	"context"
	"sync"

	"github.com/Davidshtp/Dashboard/internal/client/gateway"
	"github.com/Davidshtp/Dashboard/internal/models"
)

// ItemStore caches the inventory collection and serializes all mutations
// through the gateway.
type ItemStore struct {
	mu      sync.Mutex
	gw      *gateway.Client
	items   []models.Item
	loading bool
	err     string

	// CategoryExists resolves whether a category ID is known locally. When
	// set, Add and Update reject items referencing unknown categories before
	// any network call.
	CategoryExists func(categoryID string) bool
}

// NewItemStore returns an empty store bound to the gateway client.
func NewItemStore(gw *gateway.Client) *ItemStore {
	return &ItemStore{gw: gw}
}

// Items returns a copy of the cached collection.
func (s *ItemStore) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// HasCategory reports whether any cached item references the category.
func (s *ItemStore) HasCategory(categoryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// Loading reports whether the most recently started call is still in flight.
func (s *ItemStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the message recorded by the last failed operation.
func (s *ItemStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ItemStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *ItemStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

// FetchAll requests the full collection and replaces the cache wholesale on
// success. On failure the previous cache is left untouched.
func (s *ItemStore) FetchAll(ctx context.Context) error {
	s.begin()

	items, err := s.gw.Items(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.items = items
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Add validates the input locally, sends the creation request and appends the
// server-returned entity (with its server-assigned ID) to the cache.
func (s *ItemStore) Add(ctx context.Context, in gateway.ItemInput) (*models.Item, error) {
	if err := ValidateItemInput(in, s.CategoryExists); err != nil {
		return nil, err
	}
	s.begin()

	item, err := s.gw.CreateItem(ctx, in)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.items = append(s.items, *item)
	s.loading = false
	s.mu.Unlock()
	return item, nil
}

// Update validates the input locally, sends it and replaces the cached entry
// with the server's representation. If two updates to the same ID resolve out
// of order the cache keeps whichever response arrived last.
func (s *ItemStore) Update(ctx context.Context, id string, in gateway.ItemInput) (*models.Item, error) {
	if err := ValidateItemInput(in, s.CategoryExists); err != nil {
		return nil, err
	}
	s.begin()

	item, err := s.gw.UpdateItem(ctx, id, in)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = *item
			break
		}
	}
	s.loading = false
	s.mu.Unlock()
	return item, nil
}

// Remove deletes an item and drops it from the cache once confirmed.
func (s *ItemStore) Remove(ctx context.Context, id string) error {
	s.begin()

	if err := s.gw.DeleteItem(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.loading = false
	s.mu.Unlock()
	return nil
}

// SetAll overrides the cache wholesale, for manual refresh paths.
func (s *ItemStore) SetAll(items []models.Item) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}
