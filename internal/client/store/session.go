package store

import (
	"context"
	"sync"

	"github.com/Davidshtp/Dashboard/internal/client/gateway"
	"github.com/Davidshtp/Dashboard/internal/models"
)

// State is the session guard's position in its lifecycle.
type State int

const (
	// StateUnknown means token presence has not been resolved yet.
	StateUnknown State = iota
	// StateAuthenticating means a stored token is being exchanged for a user.
	StateAuthenticating
	// StateAuthenticated means the stored token resolved to a user.
	StateAuthenticated
	// StateUnauthenticated means there is no usable session.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	// Load returns the stored token, or an empty string if none exists.
	Load() (string, error)
	// Save persists the token.
	Save(token string) error
	// Clear discards the stored token.
	Clear() error
}

// Session is the single authority for the current user. It owns the stored
// token and the guard state machine; every other component only reads from it.
type Session struct {
	mu     sync.Mutex
	gw     *gateway.Client
	tokens TokenStore
	state  State
	user   *models.User
}

// NewSession returns a Session in the Unknown state.
func NewSession(gw *gateway.Client, tokens TokenStore) *Session {
	return &Session{gw: gw, tokens: tokens, state: StateUnknown}
}

// State returns the current guard state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the current user, nil unless authenticated.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated is the navigation gate. It is evaluated on every check, not
// cached by callers.
func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Restore resolves the stored token on startup. No token means immediately
// Unauthenticated; a token is exchanged for the current user, and discarded
// if the gateway rejects it.
func (s *Session) Restore(ctx context.Context) State {
	tok, err := s.tokens.Load()
	if err != nil || tok == "" {
		s.setUnauthenticated()
		return StateUnauthenticated
	}

	s.mu.Lock()
	s.state = StateAuthenticating
	s.mu.Unlock()
	s.gw.SetToken(tok)

	user, err := s.gw.Me(ctx)
	if err != nil {
		// Expired or invalid token: discard it.
		_ = s.tokens.Clear()
		s.setUnauthenticated()
		return StateUnauthenticated
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
	return StateAuthenticated
}

// Login exchanges credentials for a session, persisting the token locally.
func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	result, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.gw.SetToken(result.JWT)
	if err := s.tokens.Save(result.JWT); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = &result.User
	s.mu.Unlock()
	return &result.User, nil
}

// Register creates an account. It does not start a session; the caller logs
// in afterwards.
func (s *Session) Register(ctx context.Context, in gateway.RegisterInput) (*models.User, error) {
	return s.gw.Register(ctx, in)
}

// Logout discards the token and the cached user.
func (s *Session) Logout() {
	_ = s.tokens.Clear()
	s.setUnauthenticated()
}

// SetUser replaces the cached user after a profile mutation confirmed by the
// gateway.
func (s *Session) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Session) setUnauthenticated() {
	s.gw.SetToken("")
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.user = nil
	s.mu.Unlock()
}
