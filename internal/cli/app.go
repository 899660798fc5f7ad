// Package cli implements the interactive console for the bank: the command
// loop, prompts, and rendering of ledger results. All money and credential
// logic lives in the ledger package; this layer only talks to the user.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/avolkovs/securebank/internal/config"
	"github.com/avolkovs/securebank/internal/ledger"
	"github.com/avolkovs/securebank/internal/logging"
)

type App struct {
	cfg    *config.Config
	store  *ledger.Store
	ledger *ledger.Ledger
	log    logging.Logger

	session *Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	// Structured logs go to stderr so they never interleave with prompts.
	sl := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.NewSlogLogger(sl)

	store, err := ledger.NewStore(cfg.DataDir, cfg.LedgerFile, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	return &App{
		cfg:    cfg,
		store:  store,
		ledger: ledger.New(store, cfg, logger),
		log:    logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool { return a.session != nil }

func (a *App) status() string {
	if a.session == nil {
		return "not logged in"
	}
	return a.session.Username
}

// Run prints the welcome banner, self-heals the store, and enters the
// command loop until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "==================================================")
	fmt.Fprintln(a.out, "  WELCOME TO SECURE BANK")
	fmt.Fprintln(a.out, "==================================================")

	// An initial load creates a missing ledger file and quarantines a
	// corrupted one before the first command runs.
	_, recovered, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	if recovered {
		fmt.Fprintln(a.out, "Warning: the ledger file was corrupted. The bad file was")
		fmt.Fprintln(a.out, "backed up and the store was reset to an empty table.")
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin), a.out)
	return nil
}

// printErr renders a ledger failure in user wording. Unknown errors are
// logged and shown generically so internals never leak into the console.
func (a *App) printErr(ctx context.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		fmt.Fprintln(a.out, "Account not found.")
	case errors.Is(err, ledger.ErrAccountClosed):
		fmt.Fprintln(a.out, "This account is closed.")
	case errors.Is(err, ledger.ErrAccountExists):
		fmt.Fprintln(a.out, "Username already exists. Please choose another.")
	case errors.Is(err, ledger.ErrSameAccount):
		fmt.Fprintln(a.out, "Cannot transfer money to yourself.")
	case errors.Is(err, ledger.ErrInvalidAmount):
		fmt.Fprintln(a.out, "Invalid amount for this operation.")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		fmt.Fprintln(a.out, "Insufficient funds.")
	case errors.Is(err, ledger.ErrAuthenticationFailed):
		fmt.Fprintln(a.out, "Invalid username or password.")
	default:
		a.log.Error(ctx, "operation failed", "error", err.Error())
		fmt.Fprintln(a.out, "Operation failed. Please try again.")
	}
}
