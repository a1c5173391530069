package verifications

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

func (r *PostgresRepository) Upsert(ctx context.Context, code *models.VerificationCode) error {

	query :=
		`INSERT INTO verification_codes (email, user_name, code_hash, expires_at)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (email) DO UPDATE
		 SET user_name = EXCLUDED.user_name,
		     code_hash = EXCLUDED.code_hash,
		     expires_at = EXCLUDED.expires_at,
		     created_at = now()
		 `

	_, err := r.db.ExecContext(ctx, query,
		code.Email, code.UserName, code.CodeHash, code.ExpiresAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.VerificationCode, error) {
	query :=
		`SELECT id, email, user_name, code_hash, expires_at, created_at FROM verification_codes
		 WHERE email = $1
		 `

	code := &models.VerificationCode{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&code.ID, &code.Email, &code.UserName, &code.CodeHash, &code.ExpiresAt, &code.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return code, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, email string) error {
	query := `DELETE FROM verification_codes WHERE email = $1`

	_, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
