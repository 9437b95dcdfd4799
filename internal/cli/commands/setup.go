package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/contacts/internal/cli/config"
	"github.com/leapstack-labs/contacts/internal/state"
	"github.com/leapstack-labs/contacts/pkg/core"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Store  core.ContactStore
}

// NewCommandContext creates a CommandContext with an open contact store.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	store, err := openStore(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close store", slog.String("error", err.Error()))
		}
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Store:  store,
	}, cleanup, nil
}

// getConfig returns the current configuration, or the defaults when
// no configuration has been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Backend:       config.DefaultBackend,
		Database:      config.DefaultDatabase,
		LogFormat:     config.DefaultLogFormat,
		SessionSecret: config.DefaultSessionSecret,
		LoadTimeout:   config.DefaultLoadTimeout,
		ViewTTL:       config.DefaultViewTTL,
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.ContactStore, error) {
	// Ensure the SQLite directory exists
	if cfg.Backend == state.BackendSQLite && cfg.Database != "" && cfg.Database != ":memory:" {
		if dir := filepath.Dir(cfg.Database); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	store, err := state.Open(ctx, state.Options{
		Backend: cfg.Backend,
		DSN:     cfg.Database,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	return store, nil
}
