package pending

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelichko/skillswap/internal/dbx"
)

const (
	keyEmail = "pending_verification_email"
	keyName  = "pending_verification_name"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*Verification, error) {
	email, err := r.get(ctx, keyEmail)
	if err != nil {
		return nil, err
	}
	if email == "" {
		return nil, nil
	}
	name, err := r.get(ctx, keyName)
	if err != nil {
		return nil, err
	}
	return &Verification{Email: email, UserName: name}, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, v Verification) error {
	if err := r.set(ctx, keyEmail, v.Email); err != nil {
		return err
	}
	return r.set(ctx, keyName, v.UserName)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_state WHERE key IN (?, ?)`, keyEmail, keyName)
	if err != nil {
		return fmt.Errorf("failed to clear pending verification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get local_state[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set local_state[%s]: %w", key, err)
	}
	return nil
}
