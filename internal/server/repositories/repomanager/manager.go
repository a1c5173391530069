package repomanager

import (
	"context"
	"database/sql"

	"github.com/avelichko/skillswap/internal/dbx"
	"github.com/avelichko/skillswap/internal/server/repositories/swaps"
	"github.com/avelichko/skillswap/internal/server/repositories/users"
	"github.com/avelichko/skillswap/internal/server/repositories/verifications"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Verifications(db dbx.DBTX) verifications.Repository
	Swaps(db dbx.DBTX) swaps.Repository
}
