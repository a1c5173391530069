package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avelichko/skillswap/internal/common"
	"github.com/avelichko/skillswap/internal/server/models"
	"github.com/avelichko/skillswap/internal/server/repositories/repomanager"
)

// ErrSkillsRequired means a swap request update left one of the skill fields
// empty.
var ErrSkillsRequired = errors.New("both skills are required")

type SwapService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSwapService(db *sql.DB, m repomanager.RepositoryManager) *SwapService {
	return &SwapService{db: db, repomanager: m}
}

// List returns the swap requests the user participates in, newest first.
func (s *SwapService) List(ctx context.Context, userID string) ([]*models.SwapRequest, error) {
	return s.repomanager.Swaps(s.db).ListForUser(ctx, userID)
}

// Create opens a new pending swap request from the user to the target.
func (s *SwapService) Create(ctx context.Context, userID, targetID, message string) (*models.SwapRequest, error) {

	if targetID == userID {
		return nil, common.ErrorValidation
	}

	// the target must exist
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, targetID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	req := &models.SwapRequest{
		RequesterID: userID,
		TargetID:    targetID,
		Message:     message,
		Status:      models.SwapStatusPending,
	}

	req, err := s.repomanager.Swaps(s.db).Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("error creating swap request: %w", err)
	}

	return req, nil
}

// Update applies a partial edit to one of the user's own requests. Both
// skill fields must end up non-empty; only the requester may edit.
func (s *SwapService) Update(ctx context.Context, userID, id, senderSkill, receiverSkill, message string) (*models.SwapRequest, error) {

	if senderSkill == "" || receiverSkill == "" {
		return nil, ErrSkillsRequired
	}

	repo := s.repomanager.Swaps(s.db)

	req, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RequesterID != userID {
		return nil, common.ErrorUnauthorized
	}

	req.SenderSkill = senderSkill
	req.ReceiverSkill = receiverSkill
	req.Message = message

	req, err = repo.Update(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("error updating swap request: %w", err)
	}

	return req, nil
}
