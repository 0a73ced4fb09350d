package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Davidshtp/Dashboard/internal/client/gateway"
)

// RecoveryStep is the password-recovery flow's position.
type RecoveryStep int

const (
	// StepRequest awaits the account email.
	StepRequest RecoveryStep = iota
	// StepConfirm awaits the delivered code plus the replacement password.
	StepConfirm
	// StepDone means the password was replaced and the code consumed.
	StepDone
)

// ErrRecoveryNotRequested is returned when Confirm runs before Request.
var ErrRecoveryNotRequested = errors.New("request a recovery code first")

// Recovery drives the two-step password-recovery protocol: request a one-time
// code for an email, then submit the code with a new password. A failed
// confirmation keeps the flow on the confirm step so it can be retried.
type Recovery struct {
	mu      sync.Mutex
	gw      *gateway.Client
	step    RecoveryStep
	email   string
	message string
}

// NewRecovery returns a flow on the request step.
func NewRecovery(gw *gateway.Client) *Recovery {
	return &Recovery{gw: gw}
}

// Step returns the flow's current step.
func (r *Recovery) Step() RecoveryStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.step
}

// Message returns the delivery notice from the last successful request.
func (r *Recovery) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}

// Request asks the gateway for a recovery code and advances to the confirm
// step on success.
func (r *Recovery) Request(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return ErrEmailInvalid
	}

	message, err := r.gw.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.step = StepConfirm
	r.email = email
	r.message = message
	r.mu.Unlock()
	return nil
}

// Confirm validates the replacement password locally, then submits the code.
// On success the flow completes; on rejection it stays on the confirm step.
func (r *Recovery) Confirm(ctx context.Context, code, newPassword, confirm string) error {
	r.mu.Lock()
	if r.step != StepConfirm {
		r.mu.Unlock()
		return ErrRecoveryNotRequested
	}
	email := r.email
	r.mu.Unlock()

	if err := ValidateNewPassword(newPassword, confirm); err != nil {
		return err
	}

	if err := r.gw.ResetPassword(ctx, email, code, newPassword); err != nil {
		return err
	}

	r.mu.Lock()
	r.step = StepDone
	r.mu.Unlock()
	return nil
}

// Reset returns the flow to the request step.
func (r *Recovery) Reset() {
	r.mu.Lock()
	r.step = StepRequest
	r.email = ""
	r.message = ""
	r.mu.Unlock()
}
