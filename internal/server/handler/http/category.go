package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Davidshtp/Dashboard/internal/models"
)

// CategoryService defines the interface for category operations required by
// the HTTP handlers.
type CategoryService interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, id, name string) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

// CategoryHandler handles HTTP requests for category CRUD.
type CategoryHandler struct {
	CategoryService CategoryService
}

// categoryRequest represents the JSON payload for create and update.
type categoryRequest struct {
	Name string `json:"name"`
}

// GetAll handles GET /api/categories.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryService.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// Get handles GET /api/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.CategoryService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	c, err := h.CategoryService.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// Update handles PUT /api/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	c, err := h.CategoryService.Update(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/categories/{id}. Deletion is rejected while any
// item still references the category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.CategoryService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StandardResponse{
		Message: "category deleted successfully",
		Status:  "success",
	})
}
