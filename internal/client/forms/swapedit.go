// Package forms contains bounded form state for editing server entities.
package forms

import (
	"context"
	"errors"

	"github.com/avelichko/skillswap/internal/client/api"
	"github.com/avelichko/skillswap/internal/client/models"
)

// ErrSkillsRequired means one of the two skill fields is empty. Detected
// locally; no request is issued.
var ErrSkillsRequired = errors.New("both skills are required")

// SwapEditForm is a transient editing copy of one swap request.
//
// Fields are seeded from the target entity at the closed-to-open edge only,
// so edits in progress are never clobbered by repeated renders of the same
// open form. Closing discards edits; a successful submit closes the form and
// invalidates any cached request list via the callback.
type SwapEditForm struct {
	client       api.Client
	onInvalidate func()

	open   bool
	target *models.SwapRequest

	SenderSkill   string
	ReceiverSkill string
	Message       string
}

// NewSwapEditForm builds a closed form. onInvalidate, if non-nil, runs after
// every successful submit so cached swap-request lists get refreshed.
func NewSwapEditForm(client api.Client, onInvalidate func()) *SwapEditForm {
	return &SwapEditForm{client: client, onInvalidate: onInvalidate}
}

// Open shows the form for the given entity. When the form is already open
// this is a no-op, preserving in-progress edits; reopening after Close
// reseeds all three fields from the new target.
func (f *SwapEditForm) Open(target *models.SwapRequest) {
	if f.open {
		return
	}
	f.open = true
	f.target = target
	f.SenderSkill = target.SenderSkill
	f.ReceiverSkill = target.ReceiverSkill
	f.Message = target.Message
}

// Close hides the form, discarding edits.
func (f *SwapEditForm) Close() {
	f.open = false
	f.target = nil
}

// IsOpen reports whether the form is showing.
func (f *SwapEditForm) IsOpen() bool {
	return f.open
}

// Submit validates and sends the partial update. Both skill fields must be
// non-empty; the message is optional. On success the form closes and the
// updated entity is returned; on failure the form stays open so the user can
// correct and retry.
func (f *SwapEditForm) Submit(ctx context.Context) (*models.SwapRequest, error) {
	if !f.open || f.target == nil {
		return nil, errors.New("form is not open")
	}
	if f.SenderSkill == "" || f.ReceiverSkill == "" {
		return nil, ErrSkillsRequired
	}

	updated, err := f.client.UpdateSwapRequest(ctx, f.target.ID, f.SenderSkill, f.ReceiverSkill, f.Message)
	if err != nil {
		return nil, err
	}

	f.Close()
	if f.onInvalidate != nil {
		f.onInvalidate()
	}
	return updated, nil
}
