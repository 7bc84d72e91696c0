package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/BAWimmer/lockbox/internal/auth"
	"github.com/BAWimmer/lockbox/internal/codec"
	"github.com/BAWimmer/lockbox/internal/config"
	"github.com/BAWimmer/lockbox/internal/dbx"
	"github.com/BAWimmer/lockbox/internal/logging"
	"github.com/BAWimmer/lockbox/internal/ratelimit"
	"github.com/BAWimmer/lockbox/internal/repositories/keyvalue"
	"github.com/BAWimmer/lockbox/internal/securestore"
	"github.com/BAWimmer/lockbox/internal/storage"
	"github.com/BAWimmer/lockbox/internal/vault"
)

// App wires the services together and holds the interactive state: the
// current user, if any, and the stdin reader shared by all prompts.
type App struct {
	config      *config.Config
	db          *sql.DB
	authService *auth.Service
	noteService *vault.Service

	currentUser *auth.User
	reader      *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	var c codec.Codec = codec.NewLegacy()
	if cfg.HardenedCodec {
		c = codec.NewHardened()
	}

	store := securestore.New(keyvalue.NewSQLiteRepository(db), c, log)
	limiter := ratelimit.New(cfg.MaxLoginAttempts, cfg.LoginLockoutWindow)

	return &App{
		config:      cfg,
		db:          db,
		authService: auth.NewService(store, c, limiter, cfg, log),
		noteService: vault.NewService(db, c, log),
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.currentUser != nil
}

func (a *App) status() string {
	if a.currentUser == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.currentUser.Username)
}

// Run resumes a persisted session, if one is still valid, and hands
// control to the REPL. The database is closed on exit.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	user, err := a.authService.CurrentSession(ctx)
	if err == nil && user != nil {
		a.currentUser = user
		fmt.Printf("Welcome back, %s\n", user.Username)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	return nil
}

// Wipe deletes every local record inside one transaction. Requires
// confirmation; there is no way back.
func (a *App) Wipe(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This deletes ALL local data. Type 'yes' to continue", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Cancelled.")
		return nil
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return keyvalue.NewSQLiteRepository(tx).Clear(ctx)
	})
	if err != nil {
		fmt.Println("Wipe failed:", err)
		return err
	}

	a.currentUser = nil
	fmt.Println("All local data removed.")
	return nil
}
