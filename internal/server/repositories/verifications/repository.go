package verifications

import (
	"context"

	"github.com/avelichko/skillswap/internal/server/models"
)

type Repository interface {
	// Upsert replaces any code previously issued for the email, so at most
	// one code per address is live at a time.
	Upsert(ctx context.Context, code *models.VerificationCode) error
	GetByEmail(ctx context.Context, email string) (*models.VerificationCode, error)
	// Delete consumes the code; verification codes are single use.
	Delete(ctx context.Context, email string) error
}
