package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"inkwell/internal/client/api"
	"inkwell/internal/client/config"
	"inkwell/internal/client/identity"
	"inkwell/internal/client/repositories/session"
	"inkwell/internal/client/services"
	"inkwell/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the journal client together: configuration, the identity
// provider, the persisted session, the entries API, and the interactive
// REPL on top of them.
type App struct {
	config   *config.Config
	sessions services.SessionService
	journal  services.JournalService
	log      logging.Logger
	db       *sql.DB
	reader   *bufio.Reader
}

// NewApp builds the full client from configuration.
//
// The session database is opened (and migrated) first. When the identity
// provider is not fully configured the app still starts: the session
// service degrades to a signed-out state and authentication commands
// report the missing configuration instead of crashing.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := session.OpenDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}
	repo := session.NewSQLiteRepository(db)

	var provider identity.Provider
	if cfg.PoolConfigured() {
		p, err := identity.NewCognitoProvider(ctx, cfg.AWSRegion, cfg.UserPoolClientID)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing identity provider: %w", err)
		}
		provider = p
	}

	sessions := services.NewSessionService(provider, repo, log)
	apiClient := api.New(cfg.APIBaseURL, cfg.RequestTimeout, sessions)
	journal := services.NewJournalService(apiClient, sessions, log)

	return &App{
		config:   cfg,
		sessions: sessions,
		journal:  journal,
		log:      log,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session, pulls the entry list once, and hands
// control to the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if err := a.sessions.RefreshUser(ctx); err != nil {
		a.log.Warn(ctx, "restoring session failed", "error", err)
	}
	a.journal.FetchAll(ctx)

	printlnFn("Inkwell journal CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.State() == services.StateAuthenticated
}

func (a *App) getStatus() string {
	if user := a.sessions.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s) ", user.Username)
	}
	return ""
}
