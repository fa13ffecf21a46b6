package commands

import (
	"crypto/rand"
	"encoding/hex"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/salescope/internal/config"
	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/leapstack-labs/salescope/internal/ui"
	"github.com/leapstack-labs/salescope/internal/ui/notifier"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		Long: `Start the salescope dashboard server.

A fresh embedded database is created for the run and seeded from the
configured SQL script (or the bundled sample). The dashboard is served on
the configured port until interrupted.`,
		Example: `  # Serve the bundled sample dataset
  salescope serve

  # Serve your own data on another port
  salescope serve --seed ./sales.sql --port 9000

  # Re-import the seed script whenever it changes
  salescope serve --seed ./sales.sql --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Current()
			logger := newLogger(cfg.Verbose)

			notify := notifier.New()

			sessCfg := sessionConfig(cfg, logger)
			sessCfg.OnChange = notify.Broadcast
			session := dashboard.New(sessCfg)
			defer func() { _ = session.Close() }()

			secret := cfg.SessionSecret
			if secret == "" {
				secret = randomSecret()
			}

			server := ui.NewServer(ui.Config{
				Session:       session,
				Notifier:      notify,
				Port:          cfg.Port,
				Watch:         cfg.Watch,
				SeedPath:      cfg.Seed,
				SessionSecret: secret,
				Logger:        logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx)
		},
	}
}

// randomSecret generates a per-run cookie secret. Preferences then last one
// server run, which matches the session-scoped lifecycle.
func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
