package verification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avelichko/skillswap/internal/client/api"
	"github.com/avelichko/skillswap/internal/client/models"
	"github.com/avelichko/skillswap/internal/client/session"
	"github.com/avelichko/skillswap/internal/common"
)

var (
	// ErrInvalidCode means the entered code is not exactly six digits.
	// Detected locally; no request is issued.
	ErrInvalidCode = errors.New("code must be exactly 6 digits")

	// ErrExpired means the current code's window has closed and entry is
	// locked until a resend succeeds.
	ErrExpired = errors.New("code expired, request a new one")

	// ErrSubmitInFlight / ErrResendInFlight guard against double submission
	// of the same operation.
	ErrSubmitInFlight = errors.New("verification already in progress")
	ErrResendInFlight = errors.New("resend already in progress")

	// ErrResendNotAllowed means the cooldown has not elapsed: resend is only
	// permitted once the code has expired or is about to.
	ErrResendNotAllowed = errors.New("resend not available yet")

	// ErrCompleted means the session already reached a terminal state
	// (verified or cancelled).
	ErrCompleted = errors.New("verification session is finished")
)

// Option configures a Session.
type Option func(*Session)

// WithTickInterval overrides the one-second countdown tick, for tests.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) { s.tickInterval = d }
}

// WithWindow overrides the validity window the countdown starts from.
// Resend still resets to the full production window.
func WithWindow(d time.Duration) Option {
	return func(s *Session) { s.remaining = int(d.Seconds()) }
}

// WithOnComplete registers a callback fired exactly once when verification
// succeeds, after the identity has been handed to the session store.
func WithOnComplete(fn func(*models.Identity)) Option {
	return func(s *Session) { s.onComplete = fn }
}

// WithOnCancel registers a callback fired when the user abandons the flow.
func WithOnCancel(fn func()) Option {
	return func(s *Session) { s.onCancel = fn }
}

// Session is the verification state machine for one email address.
//
// Lifecycle: created when the verification screen opens (a code has just
// been sent), ticking down from the full validity window. Entry of a code
// and submission are allowed while the window is open; once it expires,
// input is locked until Resend succeeds and restarts the window. Verify
// success is terminal: the identity is adopted by the session store and the
// completion callback fires exactly once.
//
// The countdown goroutine delivers ticks concurrently with user-driven
// calls, so all state is guarded by one mutex.
type Session struct {
	client   api.Client
	sessions *session.Store

	tickInterval time.Duration
	onComplete   func(*models.Identity)
	onCancel     func()

	mu        sync.Mutex
	email     string
	userName  string
	code      string
	remaining int
	expired   bool
	verifying bool
	resending bool
	verified  bool
	canceled  bool
	timer     *Countdown
	timerRun  int
}

// NewSession builds a verification session for email. userName is optional
// display-name context included in resend requests for first-time signups.
func NewSession(client api.Client, sessions *session.Store, email, userName string, opts ...Option) *Session {
	s := &Session{
		client:       client,
		sessions:     sessions,
		tickInterval: time.Second,
		email:        email,
		userName:     userName,
		remaining:    int(common.VerificationWindow.Seconds()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.timer = NewCountdown(s.tickInterval, s.handleTick, s.handleExpire)
	return s
}

// Start begins the countdown. Call once, when the verification screen opens.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timerRun = s.timer.Start(s.remaining)
}

// A tick or expiry from a run superseded by Resend is discarded, so a stale
// delivery cannot close a freshly reset window.
func (s *Session) handleTick(run, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run != s.timerRun || s.verified || s.canceled {
		return
	}
	s.remaining = remaining
}

func (s *Session) handleExpire(run int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run != s.timerRun || s.verified || s.canceled || s.expired {
		return
	}
	s.remaining = 0
	s.expired = true
}

// SetCode records the digits entered so far. Up to six digits are accepted;
// anything else is rejected with ErrInvalidCode. Entry is locked while the
// code is expired and after the session finishes.
func (s *Session) SetCode(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.verified || s.canceled {
		return ErrCompleted
	}
	if s.expired {
		return ErrExpired
	}
	if len(code) > common.OTPDigits || !allDigits(code) {
		return ErrInvalidCode
	}
	s.code = code
	return nil
}

// SubmitCode sends the entered code for verification.
//
// Preconditions: the window is open, no submit is in flight, and exactly six
// digits have been entered. On success the session reaches its terminal
// verified state, the identity is stored, and the completion callback fires
// once. On failure the entered code is cleared and the error is returned;
// nothing is retried automatically.
func (s *Session) SubmitCode(ctx context.Context) error {
	s.mu.Lock()
	if s.verified || s.canceled {
		s.mu.Unlock()
		return ErrCompleted
	}
	if s.expired {
		s.mu.Unlock()
		return ErrExpired
	}
	if s.verifying {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	if len(s.code) != common.OTPDigits {
		s.mu.Unlock()
		return ErrInvalidCode
	}
	s.verifying = true
	email, code := s.email, s.code
	s.mu.Unlock()

	id, err := s.client.VerifyOTP(ctx, email, code)

	s.mu.Lock()
	s.verifying = false
	if err != nil {
		// failed attempt always clears the field
		s.code = ""
		s.mu.Unlock()
		return err
	}
	s.verified = true
	s.timer.Stop()
	onComplete := s.onComplete
	s.mu.Unlock()

	s.sessions.SetUser(id)
	if onComplete != nil {
		onComplete(id)
	}
	return nil
}

// CanResend reports whether a resend is currently permitted: the code has
// expired, or is within the final minute of its window.
func (s *Session) CanResend() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canResendLocked()
}

func (s *Session) canResendLocked() bool {
	return s.expired || s.remaining <= int(common.ResendThreshold.Seconds())
}

// Resend requests a fresh code. Permitted only per CanResend; at most one
// resend may be in flight. On success the window restarts at full length,
// the expired flag clears, and any entered code is discarded. On failure
// every piece of state is left exactly as it was.
func (s *Session) Resend(ctx context.Context) error {
	s.mu.Lock()
	if s.verified || s.canceled {
		s.mu.Unlock()
		return ErrCompleted
	}
	if s.resending {
		s.mu.Unlock()
		return ErrResendInFlight
	}
	if !s.canResendLocked() {
		s.mu.Unlock()
		return ErrResendNotAllowed
	}
	s.resending = true
	email, userName := s.email, s.userName
	s.mu.Unlock()

	err := s.client.SendOTP(ctx, email, userName)

	s.mu.Lock()
	s.resending = false
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.remaining = int(common.VerificationWindow.Seconds())
	s.expired = false
	s.code = ""
	s.timerRun = s.timer.Start(s.remaining)
	s.mu.Unlock()

	return nil
}

// Cancel abandons the flow: the countdown stops and the cancellation
// callback fires. No network calls are made. Cancel after a terminal state
// is a no-op.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.verified || s.canceled {
		s.mu.Unlock()
		return
	}
	s.canceled = true
	s.timer.Stop()
	onCancel := s.onCancel
	s.mu.Unlock()

	if onCancel != nil {
		onCancel()
	}
}

// Email returns the address being verified.
func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// Code returns the digits entered so far.
func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Remaining returns the seconds left in the current window.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Expired reports whether the current code's window has closed.
func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired
}

// Verified reports whether the session reached its terminal success state.
func (s *Session) Verified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verified
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
