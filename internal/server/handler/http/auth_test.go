package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/Davidshtp/Dashboard/internal/models"
	"github.com/Davidshtp/Dashboard/internal/service"
)

func TestAuthRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "created",
			body:       `{"name":"Alice","lastName":"Ng","email":"alice@example.com","password":"secret1"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate email",
			body:       `{"name":"Alice","lastName":"Ng","email":"alice@example.com","password":"secret1"}`,
			serviceErr: service.ErrEmailTaken,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       `{"name":"Alice","lastName":"Ng","email":"alice@example.com","password":"abc"}`,
			serviceErr: service.ErrPasswordTooShort,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			deps.auth.RegisterFunc = func(ctx context.Context, name, lastName, email, password string) (*models.User, error) {
				if tt.serviceErr != nil {
					return nil, tt.serviceErr
				}
				return &models.User{ID: "u1", Name: name, LastName: lastName, Email: email}, nil
			}
			srv := newTestServer(t, deps)

			status, _ := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", tt.body)
			if status != tt.wantStatus {
				t.Errorf("status = %d; want %d", status, tt.wantStatus)
			}
		})
	}
}

func TestAuthLogin_ReturnsUserAndToken(t *testing.T) {
	deps := newTestDeps()
	deps.auth.LoginFunc = func(ctx context.Context, email, password string) (*models.User, error) {
		return &models.User{ID: "u1", Name: "Alice", Email: email}, nil
	}
	srv := newTestServer(t, deps)

	status, body := doRequest(t, srv, http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@example.com","password":"secret1"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d; want 200", status)
	}

	var resp LoginResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" || resp.JWT != "signed-token" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.User == nil || resp.User.ID != "u1" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	deps := newTestDeps()
	deps.auth.LoginFunc = func(ctx context.Context, email, password string) (*models.User, error) {
		return nil, service.ErrWrongPassword
	}
	srv := newTestServer(t, deps)

	status, body := doRequest(t, srv, http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@example.com","password":"wrong"}`)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", status)
	}
	if !strings.Contains(body, "detail") {
		t.Errorf("body %q missing error detail", body)
	}
}

func TestAuthMe(t *testing.T) {
	deps := newTestDeps()
	deps.auth.CurrentUserFunc = func(ctx context.Context, id string) (*models.User, error) {
		if id != "u1" {
			t.Errorf("CurrentUser id = %q; want %q", id, "u1")
		}
		return &models.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
	}
	srv := newTestServer(t, deps)

	status, body := doRequest(t, srv, http.MethodGet, "/api/auth/me", "valid-token", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d; want 200", status)
	}

	var user models.User
	if err := json.Unmarshal([]byte(body), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestAuthForgotPassword(t *testing.T) {
	deps := newTestDeps()
	deps.auth.ForgotPasswordFunc = func(ctx context.Context, email string) (string, error) {
		return "123456", nil
	}
	srv := newTestServer(t, deps)

	status, body := doRequest(t, srv, http.MethodPost, "/api/auth/forgot-password", "",
		`{"email":"alice@example.com"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d; want 200", status)
	}
	if !strings.Contains(body, "123456") {
		t.Errorf("body %q missing the recovery code", body)
	}
}

func TestAuthForgotPassword_UnknownEmail(t *testing.T) {
	deps := newTestDeps()
	deps.auth.ForgotPasswordFunc = func(ctx context.Context, email string) (string, error) {
		return "", service.ErrUserNotFound
	}
	srv := newTestServer(t, deps)

	status, _ := doRequest(t, srv, http.MethodPost, "/api/auth/forgot-password", "",
		`{"email":"nobody@example.com"}`)
	if status != http.StatusNotFound {
		t.Errorf("status = %d; want 404", status)
	}
}

func TestAuthResetPassword(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "wrong code", serviceErr: service.ErrInvalidResetCode, wantStatus: http.StatusBadRequest},
		{name: "short password", serviceErr: service.ErrPasswordTooShort, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			deps.auth.ResetPasswordFunc = func(ctx context.Context, email, code, newPassword string) error {
				return tt.serviceErr
			}
			srv := newTestServer(t, deps)

			status, _ := doRequest(t, srv, http.MethodPost, "/api/auth/reset-password", "",
				`{"email":"alice@example.com","resetCode":"123456","newPassword":"newsecret"}`)
			if status != tt.wantStatus {
				t.Errorf("status = %d; want %d", status, tt.wantStatus)
			}
		})
	}
}
