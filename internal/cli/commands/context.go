// Package commands implements the salescope CLI subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/leapstack-labs/salescope/internal/adapter"
	"github.com/leapstack-labs/salescope/internal/config"
	"github.com/leapstack-labs/salescope/internal/dashboard"
)

// newLogger builds the CLI logger from the verbosity setting.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// sessionConfig translates the loaded CLI config into a dashboard session
// config.
func sessionConfig(cfg *config.Config, logger *slog.Logger) dashboard.Config {
	return dashboard.Config{
		Engine: adapter.Config{
			Type: cfg.Engine,
			Path: cfg.Database,
		},
		SeedPath: cfg.Seed,
		Logger:   logger,
	}
}
