// Package cli implements the interactive SkillSwap terminal client.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/avelichko/skillswap/internal/client/api"
	"github.com/avelichko/skillswap/internal/client/config"
	"github.com/avelichko/skillswap/internal/client/forms"
	"github.com/avelichko/skillswap/internal/client/localdb"
	"github.com/avelichko/skillswap/internal/client/models"
	"github.com/avelichko/skillswap/internal/client/repositories/pending"
	"github.com/avelichko/skillswap/internal/client/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	client   api.Client
	sessions *session.Store
	pending  pending.Repository
	editForm *forms.SwapEditForm
	db       *sql.DB

	reader *bufio.Reader
	out    io.Writer

	// swapCache holds the last fetched request list; the edit form
	// invalidates it after every successful update.
	swapCache []*models.SwapRequest
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := localdb.Init(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing local database: %w", err)
	}

	apiClient, err := api.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:   c,
		client:   apiClient,
		sessions: session.NewStore(apiClient),
		pending:  pending.NewSQLiteRepository(db),
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	a.editForm = forms.NewSwapEditForm(apiClient, a.invalidateSwapCache)
	return a, nil
}

func (a *App) invalidateSwapCache() {
	a.swapCache = nil
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsLoggedIn()
}

// Run checks the current session, resumes an interrupted verification if one
// is stored locally, and enters the command loop.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	// silent check: any failure is just the logged-out default
	a.sessions.CheckSession(ctx)

	if !a.isLoggedIn() {
		if v, err := a.pending.Get(ctx); err == nil && v != nil {
			fmt.Fprintf(a.out, "Resuming email verification for %s\n", v.Email)
			a.RunVerification(ctx, v.Email, v.UserName)
		}
	}

	a.Root(ctx)
}

func (a *App) Close() {
	_ = a.client.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
}
