// Package authflow models the client-side signup/login/passphrase flow as an
// explicit state machine, independent of any rendering layer. The HTTP calls
// themselves happen between SubmitCredentials/SubmitPassphrase and the
// Succeed/Fail callbacks.
package authflow

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// State of the flow.
type State string

const (
	StateIdle                  State = "idle"
	StateSubmittingCredentials State = "submittingCredentials"
	StateAwaitingPassphrase    State = "awaitingPassphrase"
	StateSubmittingPassphrase  State = "submittingPassphrase"
	StateSuccess               State = "success"
	StateError                 State = "error"
)

// Mode selects which form is active.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// ErrInvalidTransition is returned when an event is not legal in the current state.
var ErrInvalidTransition = errors.New("invalid auth flow transition")

// Fields holds the entered form values. Errors preserve them; only the
// passphrase is cleared when its popup is dismissed.
type Fields struct {
	Name       string
	Email      string
	Phone      string
	Password   string
	Passphrase string
}

// Flow drives the auth UI state. The success completion callback is delayed
// so the success message stays visible before the surrounding UI closes.
type Flow struct {
	mu sync.Mutex

	state   State
	mode    Mode
	fields  Fields
	message string

	adminEmail    string
	completeDelay time.Duration
	onComplete    func()
	timer         *time.Timer
}

// Option configures a Flow.
type Option func(*Flow)

// WithCompletionDelay sets how long Succeed waits before firing the
// completion callback.
func WithCompletionDelay(d time.Duration) Option {
	return func(f *Flow) { f.completeDelay = d }
}

// WithCompletion sets the callback fired after the success delay.
func WithCompletion(fn func()) Option {
	return func(f *Flow) { f.onComplete = fn }
}

// New returns a Flow in the idle login state. adminEmail marks the identity
// that bypasses the passphrase step.
func New(adminEmail string, opts ...Option) *Flow {
	f := &Flow{
		state:         StateIdle,
		mode:          ModeLogin,
		adminEmail:    strings.ToLower(adminEmail),
		completeDelay: 1500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Mode returns the active form mode.
func (f *Flow) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// Fields returns a copy of the entered values.
func (f *Flow) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Message returns the transient status message.
func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// ToggleMode switches between signup and login, resetting all fields and
// transient messages.
func (f *Flow) ToggleMode() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopTimer()
	if f.mode == ModeLogin {
		f.mode = ModeSignup
	} else {
		f.mode = ModeLogin
	}
	f.fields = Fields{}
	f.message = ""
	f.state = StateIdle
}

// SubmitCredentials records the form values and enters submittingCredentials.
// Legal from idle and error.
func (f *Flow) SubmitCredentials(fields Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle && f.state != StateError {
		return ErrInvalidTransition
	}
	fields.Passphrase = ""
	f.fields = fields
	f.message = ""
	f.state = StateSubmittingCredentials
	return nil
}

// CredentialsAccepted reports that the server accepted email+password.
// Non-admin logins move to awaitingPassphrase; signups and the admin
// identity complete directly.
func (f *Flow) CredentialsAccepted() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSubmittingCredentials {
		return ErrInvalidTransition
	}
	if f.mode == ModeLogin && strings.ToLower(strings.TrimSpace(f.fields.Email)) != f.adminEmail {
		f.state = StateAwaitingPassphrase
		return nil
	}
	f.succeedLocked()
	return nil
}

// SubmitPassphrase records the passphrase and enters submittingPassphrase.
func (f *Flow) SubmitPassphrase(passphrase string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAwaitingPassphrase {
		return ErrInvalidTransition
	}
	f.fields.Passphrase = passphrase
	f.state = StateSubmittingPassphrase
	return nil
}

// Succeed completes the flow from either submitting state.
func (f *Flow) Succeed(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSubmittingCredentials && f.state != StateSubmittingPassphrase {
		return ErrInvalidTransition
	}
	f.message = message
	f.succeedLocked()
	return nil
}

// Fail moves to the error state, preserving entered field values.
func (f *Flow) Fail(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateSubmittingCredentials, StateSubmittingPassphrase, StateAwaitingPassphrase:
		f.message = message
		f.state = StateError
		return nil
	}
	return ErrInvalidTransition
}

// DismissPassphrase cancels the passphrase popup, clearing only the
// passphrase field and returning to idle.
func (f *Flow) DismissPassphrase() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAwaitingPassphrase {
		return ErrInvalidTransition
	}
	f.fields.Passphrase = ""
	f.state = StateIdle
	return nil
}

func (f *Flow) succeedLocked() {
	f.state = StateSuccess
	if f.onComplete != nil {
		f.stopTimer()
		f.timer = time.AfterFunc(f.completeDelay, f.onComplete)
	}
}

func (f *Flow) stopTimer() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
