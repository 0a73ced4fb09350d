// Package http provides the HTTP handlers and routing for the dashboard
// gateway API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Davidshtp/Dashboard/internal/service"
)

// StandardResponse is the generic success envelope for operations that do not
// return an entity.
type StandardResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the gateway's uniform error shape.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeServiceError maps service sentinel errors to HTTP statuses. Unknown
// errors become an opaque 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWrongPassword):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidResetCode),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrCategoryNameTaken),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrNegativeQuantity),
		errors.Is(err, service.ErrNonPositivePrice):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
