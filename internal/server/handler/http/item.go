package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Davidshtp/Dashboard/internal/models"
	"github.com/Davidshtp/Dashboard/internal/service"
)

// ItemService defines the interface for inventory item operations required by
// the HTTP handlers.
type ItemService interface {
	GetAll(ctx context.Context) ([]service.ItemWithCategory, error)
	Get(ctx context.Context, id string) (*service.ItemWithCategory, error)
	GetByCategory(ctx context.Context, categoryID string) ([]models.Item, error)
	Create(ctx context.Context, in service.ItemInput) (*models.Item, error)
	Update(ctx context.Context, id string, in service.ItemInput) (*models.Item, error)
	Delete(ctx context.Context, id string) error
}

// ItemHandler handles HTTP requests for inventory item CRUD.
type ItemHandler struct {
	ItemService ItemService
}

// GetAll handles GET /api/items, returning items joined with their category
// names.
func (h *ItemHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.ItemService.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []service.ItemWithCategory{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.ItemService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// GetByCategory handles GET /api/items/by-category/{id}.
func (h *ItemHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.ItemService.GetByCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	it, err := h.ItemService.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

// Update handles PUT /api/items/{id}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in service.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	it, err := h.ItemService.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ItemService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StandardResponse{
		Message: "item deleted successfully",
		Status:  "success",
	})
}
