package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Davidshtp/Dashboard/internal/models"
)

// ProfileService defines the interface for profile operations required by the
// HTTP handlers.
type ProfileService interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, name, lastName, avatar *string) (*models.User, error)
	UpdateEmail(ctx context.Context, id, newEmail string) (*models.User, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) (*models.User, error)
}

// ProfileHandler handles HTTP requests for the user profile.
type ProfileHandler struct {
	ProfileService ProfileService
}

// profileUpdateRequest is a partial update: nil fields keep their value.
type profileUpdateRequest struct {
	Name     *string `json:"name"`
	LastName *string `json:"lastName"`
	Avatar   *string `json:"avatar"`
}

// Get handles GET /api/profile/{id}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.ProfileService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/profile/{id} (name, last name, avatar).
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.ProfileService.Update(r.Context(), chi.URLParam(r, "id"), req.Name, req.LastName, req.Avatar)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateEmail handles PUT /api/profile/{id}/email.
func (h *ProfileHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewEmail string `json:"newEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewEmail == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.ProfileService.UpdateEmail(r.Context(), chi.URLParam(r, "id"), req.NewEmail)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ChangePassword handles PUT /api/profile/{id}/password.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.ProfileService.ChangePassword(r.Context(), chi.URLParam(r, "id"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
