package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Davidshtp/Dashboard/internal/middleware"
	"github.com/Davidshtp/Dashboard/internal/models"
)

// AuthService defines the interface for authentication operations required by
// the HTTP handlers.
type AuthService interface {
	// Register creates a new user with a unique email.
	Register(ctx context.Context, name, lastName, email, password string) (*models.User, error)
	// Login verifies credentials and returns the matching user.
	Login(ctx context.Context, email, password string) (*models.User, error)
	// CurrentUser resolves a verified user ID to the full user record.
	CurrentUser(ctx context.Context, id string) (*models.User, error)
	// ForgotPassword generates and stores a one-time recovery code.
	ForgotPassword(ctx context.Context, email string) (string, error)
	// ResetPassword validates the recovery code and replaces the password.
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// AuthHandler handles HTTP requests for registration, login, session
// introspection and password recovery.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Tokens signs bearer tokens returned at login.
	Tokens TokenIssuer
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated user and their bearer token.
type LoginResponse struct {
	Message string       `json:"message"`
	Status  string       `json:"status"`
	User    *models.User `json:"user"`
	JWT     string       `json:"jwt"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Name, req.LastName, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login. On success it returns the user plus a
// signed bearer token the client persists locally.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	tok, err := h.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "login successful",
		Status:  "success",
		User:    user,
		JWT:     tok,
	})
}

// Me handles GET /api/auth/me. The bearer middleware has already verified the
// token and stored the user ID in the context.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	user, err := h.AuthService.CurrentUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ForgotPassword handles POST /api/auth/forgot-password. The generated code
// is reported in the response message for out-of-band delivery.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	code, err := h.AuthService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StandardResponse{
		Message: fmt.Sprintf("recovery code generated: %s", code),
		Status:  "success",
	})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		ResetCode   string `json:"resetCode"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Email, req.ResetCode, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StandardResponse{
		Message: "password reset successfully",
		Status:  "success",
	})
}
