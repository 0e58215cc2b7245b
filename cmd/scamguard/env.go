package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/scamguard/internal/blocking"
	"github.com/nao1215/scamguard/internal/config"
	"github.com/nao1215/scamguard/internal/database"
	"github.com/nao1215/scamguard/internal/guard"
	"github.com/nao1215/scamguard/internal/log"
)

// env bundles the configuration, logger and database shared by subcommands.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	db     *database.GuardDB
}

// newEnv reads the global flags, applies environment overrides and loads
// the configuration file.
func newEnv(cmd *cobra.Command) (*env, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DBDir = dataDir
	}
	cfg.Verbose = getVerboseFlag(cmd)

	config.ApplyEnv(cfg)
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &env{
		cfg:    cfg,
		logger: log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose),
		out:    cmd.OutOrStdout(),
	}, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// openDB opens the database and seeds it with the lists of the
// configuration file.
func (e *env) openDB(ctx context.Context) error {
	db, err := database.Open(e.cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	added, err := db.SeedLists(ctx, e.cfg.File.Lists())
	if err != nil {
		_ = db.Close() //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("failed to seed lists from configuration: %w", err)
	}
	if added > 0 {
		e.logger.Info("seeded lists from configuration", "entries", added)
	}

	e.db = db
	e.logger.Debug("database opened", "path", db.Path())
	return nil
}

// close releases the database if it was opened.
func (e *env) close() {
	if e.db == nil {
		return
	}
	if err := e.db.Close(); err != nil {
		e.logger.Error("failed to close database", "error", err)
	}
}

// settings returns the host settings of the loaded configuration.
func (e *env) settings() config.Settings {
	return e.cfg.File.Settings
}

// keeper returns a Keeper that republishes blocking rules to the configured
// rules file after each list edit.
func (e *env) keeper() *guard.Keeper {
	opts := []guard.KeeperOption{guard.WithKeeperLogger(e.logger)}
	if path := e.settings().RulesFile; path != "" {
		updater := blocking.NewUpdater(blocking.NewFileSink(path), blocking.WithLogger(e.logger))
		opts = append(opts, guard.WithUpdater(updater))
	}
	return guard.NewKeeper(e.db, e.settings(), opts...)
}
