// Package pending persists the in-progress email verification across client
// restarts: which address a code was sent to and the display name to include
// on resends. This is the only client-local state; it is written when signup
// starts a verification, read on startup to resume it, and cleared when the
// flow completes or is cancelled.
package pending

import "context"

// Verification is the resumable state of an unfinished verification.
type Verification struct {
	Email    string
	UserName string
}

type Repository interface {
	// Get returns the stored verification, or nil when none is pending.
	Get(ctx context.Context) (*Verification, error)

	// Set stores the verification, replacing any previous one.
	Set(ctx context.Context, v Verification) error

	// Clear removes the stored verification. Clearing an empty store is not
	// an error.
	Clear(ctx context.Context) error
}
