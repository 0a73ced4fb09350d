package store

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davidshtp/Dashboard/internal/client/gateway"
	"github.com/Davidshtp/Dashboard/internal/models"
)

func tokenStore(t *testing.T) *FileTokenStore {
	t.Helper()
	return &FileTokenStore{Path: filepath.Join(t.TempDir(), "token.txt")}
}

func TestSession_StartsUnknown(t *testing.T) {
	fg := newFakeGateway(t)
	s := NewSession(fg.client(), tokenStore(t))

	assert.Equal(t, StateUnknown, s.State())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestSessionRestore_NoToken(t *testing.T) {
	fg := newFakeGateway(t)
	s := NewSession(fg.client(), tokenStore(t))

	state := s.Restore(context.Background())

	assert.Equal(t, StateUnauthenticated, state)
	assert.Zero(t, fg.count(), "no stored token means no network call")
}

func TestSessionRestore_ValidToken(t *testing.T) {
	fg := newFakeGateway(t)
	fg.handle("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"})
	})

	tokens := tokenStore(t)
	require.NoError(t, tokens.Save("stored-token"))

	s := NewSession(fg.client(), tokens)

	state := s.Restore(context.Background())

	assert.Equal(t, StateAuthenticated, state)
	assert.True(t, s.IsAuthenticated())
	require.NotNil(t, s.User())
	assert.Equal(t, "u1", s.User().ID)
}

func TestSessionRestore_RejectedTokenIsDiscarded(t *testing.T) {
	fg := newFakeGateway(t)
	fg.handle("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeDetail(t, w, http.StatusUnauthorized, "invalid or expired token")
	})

	tokens := tokenStore(t)
	require.NoError(t, tokens.Save("expired-token"))

	s := NewSession(fg.client(), tokens)

	state := s.Restore(context.Background())

	assert.Equal(t, StateUnauthenticated, state)
	assert.Nil(t, s.User())

	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, stored, "a rejected token must be cleared from disk")
}

func TestSessionLogin_PersistsToken(t *testing.T) {
	fg := newFakeGateway(t)
	fg.handle("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, gateway.LoginResult{
			Message: "login successful",
			Status:  "success",
			User:    models.User{ID: "u1", Email: "alice@example.com"},
			JWT:     "fresh-token",
		})
	})

	tokens := tokenStore(t)
	s := NewSession(fg.client(), tokens)

	user, err := s.Login(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, StateAuthenticated, s.State())

	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", stored)
}

func TestSessionLogin_FailureKeepsState(t *testing.T) {
	fg := newFakeGateway(t)
	fg.handle("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeDetail(t, w, http.StatusUnauthorized, "wrong password")
	})

	tokens := tokenStore(t)
	s := NewSession(fg.client(), tokens)

	_, err := s.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.NotEqual(t, StateAuthenticated, s.State())

	stored, loadErr := tokens.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, stored)
}

func TestSessionLogout(t *testing.T) {
	fg := newFakeGateway(t)
	fg.handle("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, gateway.LoginResult{
			User: models.User{ID: "u1"},
			JWT:  "fresh-token",
		})
	})

	tokens := tokenStore(t)
	s := NewSession(fg.client(), tokens)

	_, err := s.Login(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)

	s.Logout()

	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User())
	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSessionRegister_DoesNotStartSession(t *testing.T) {
	fg := newFakeGateway(t)
	fg.handle("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, models.User{ID: "u1", Email: "alice@example.com"})
	})

	s := NewSession(fg.client(), tokenStore(t))

	user, err := s.Register(context.Background(), gateway.RegisterInput{
		Name: "Alice", LastName: "Ng", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.False(t, s.IsAuthenticated())
}
