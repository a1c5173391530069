package swaps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avelichko/skillswap/internal/common"
	"github.com/avelichko/skillswap/internal/dbx"
	"github.com/avelichko/skillswap/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, req *models.SwapRequest) (*models.SwapRequest, error) {

	query :=
		`INSERT INTO swap_requests (requester_id, target_id, sender_skill, receiver_skill, message, status)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		req.RequesterID, req.TargetID, req.SenderSkill, req.ReceiverSkill, req.Message, req.Status).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return req, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.SwapRequest, error) {
	query :=
		`SELECT id, requester_id, target_id, sender_skill, receiver_skill, message, status, created_at, updated_at
		 FROM swap_requests
		 WHERE id = $1
		 `

	req := &models.SwapRequest{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&req.ID, &req.RequesterID, &req.TargetID, &req.SenderSkill, &req.ReceiverSkill,
			&req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return req, nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*models.SwapRequest, error) {
	query :=
		`SELECT id, requester_id, target_id, sender_skill, receiver_skill, message, status, created_at, updated_at
		 FROM swap_requests
		 WHERE requester_id = $1 OR target_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SwapRequest
	for rows.Next() {
		req := &models.SwapRequest{}
		err := rows.Scan(&req.ID, &req.RequesterID, &req.TargetID, &req.SenderSkill, &req.ReceiverSkill,
			&req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, req *models.SwapRequest) (*models.SwapRequest, error) {
	query :=
		`UPDATE swap_requests
		 SET sender_skill = $2, receiver_skill = $3, message = $4, status = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		req.ID, req.SenderSkill, req.ReceiverSkill, req.Message, req.Status).
		Scan(&req.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return req, nil
}
