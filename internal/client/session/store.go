// Package session holds the process-wide authenticated identity.
//
// Exactly one Store exists for the lifetime of the client; every component
// that needs to know who is logged in reads it through the shared instance,
// so no stale copies survive a login/logout transition.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/avelichko/skillswap/internal/client/api"
	"github.com/avelichko/skillswap/internal/client/models"
)

// ErrAuthentication is returned by Login and Signup when the server rejects
// the credentials.
var ErrAuthentication = errors.New("authentication failed")

// Store is the client-side session: the current identity, if any, plus the
// operations that may change it. All methods are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	client api.Client
	user   *models.Identity
}

func NewStore(client api.Client) *Store {
	return &Store{client: client}
}

// CurrentUser returns the authenticated identity, or nil when logged out.
func (s *Store) CurrentUser() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsLoggedIn reports whether a session is active.
func (s *Store) IsLoggedIn() bool {
	return s.CurrentUser() != nil
}

// CheckSession asks the server who the current session belongs to and, on
// success, populates the store. Any failure, including a plain 401, is the
// expected logged-out path: the session is left empty and no error is
// returned to the caller.
func (s *Store) CheckSession(ctx context.Context) {
	id, err := s.client.Me(ctx)
	if err != nil {
		return
	}
	s.SetUser(id)
}

// Login authenticates with email and password. A rejected credential pair
// yields ErrAuthentication wrapping the server's message; transport errors
// pass through unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	id, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, loginError(err)
	}
	s.SetUser(id)
	return id, nil
}

// Signup registers a new account. Same error contract as Login.
func (s *Store) Signup(ctx context.Context, name, email, password, location string) (*models.Identity, error) {
	id, err := s.client.Signup(ctx, name, email, password, location)
	if err != nil {
		return nil, loginError(err)
	}
	s.SetUser(id)
	return id, nil
}

// Logout drops the session. The server call is best effort: the local
// session is cleared regardless of its result.
func (s *Store) Logout(ctx context.Context) {
	_ = s.client.Logout(ctx)
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// SetUser adopts an identity directly. The verification flow uses this to
// open a session from a successful OTP verify without a separate login call.
func (s *Store) SetUser(id *models.Identity) {
	s.mu.Lock()
	s.user = id
	s.mu.Unlock()
}

func loginError(err error) error {
	if errors.Is(err, api.ErrUnavailable) {
		return err
	}
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: %s", ErrAuthentication, reqErr.Message)
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return fmt.Errorf("%w: invalid credentials", ErrAuthentication)
	}
	return err
}
