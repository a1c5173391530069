package swaps

import (
	"context"

	"github.com/avelichko/skillswap/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, req *models.SwapRequest) (*models.SwapRequest, error)
	GetByID(ctx context.Context, id string) (*models.SwapRequest, error)
	// ListForUser returns requests where the user is requester or target,
	// newest first.
	ListForUser(ctx context.Context, userID string) ([]*models.SwapRequest, error)
	Update(ctx context.Context, req *models.SwapRequest) (*models.SwapRequest, error)
}
