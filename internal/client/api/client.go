// Package api defines the client used to talk to the SkillSwap HTTP API
// and its JSON-over-HTTP implementation.
package api

import (
	"context"

	"github.com/avelichko/skillswap/internal/client/models"
)

// Client is the surface of the SkillSwap API consumed by client services.
//
// Error contract: transport failures map to ErrUnavailable, 401/403 to
// ErrUnauthorized, and any other non-2xx response to a *RequestError
// carrying the server-provided message.
type Client interface {
	Close() error

	// Auth.
	SendOTP(ctx context.Context, email, userName string) error
	VerifyOTP(ctx context.Context, email, code string) (*models.Identity, error)
	Me(ctx context.Context) (*models.Identity, error)
	Login(ctx context.Context, email, password string) (*models.Identity, error)
	Signup(ctx context.Context, name, email, password, location string) (*models.Identity, error)
	Logout(ctx context.Context) error

	// Directory.
	ListUsers(ctx context.Context) ([]*models.Identity, error)

	// Swap requests.
	ListSwapRequests(ctx context.Context) ([]*models.SwapRequest, error)
	CreateSwapRequest(ctx context.Context, targetID, message string) (*models.SwapRequest, error)
	UpdateSwapRequest(ctx context.Context, id, senderSkill, receiverSkill, message string) (*models.SwapRequest, error)

	// Profile.
	RequestPhotoUpload(ctx context.Context) (key string, url string, err error)
}
