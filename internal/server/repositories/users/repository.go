package users

import (
	"context"

	"github.com/avelichko/skillswap/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// ListVerified returns verified accounts, newest first.
	ListVerified(ctx context.Context) ([]*models.User, error)
	MarkVerified(ctx context.Context, id string) error
	SetPhotoKey(ctx context.Context, id, key string) error
}
