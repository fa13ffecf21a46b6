// Package ui provides the local web server for the salescope dashboard.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/leapstack-labs/salescope/internal/ui/notifier"
	"github.com/leapstack-labs/salescope/internal/ui/router"
	"golang.org/x/sync/errgroup"
)

// Server is the dashboard web server. It owns the process-wide session and
// the notifier that fans surface changes out to connected clients.
type Server struct {
	session      *dashboard.Session
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	seedPath     string
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the dashboard server.
type Config struct {
	Session       *dashboard.Session
	Notifier      *notifier.Notifier
	Port          int
	Watch         bool
	SeedPath      string
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new dashboard server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		session:      cfg.Session,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		seedPath:     cfg.SeedPath,
		logger:       logger,
		notifier:     cfg.Notifier,
	}
}

// Serve bootstraps the session, starts the HTTP server and blocks until
// the context is cancelled. A bootstrap failure does not stop the server:
// the blocking error stays on the surface for the UI to display.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting dashboard server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.session, s.sessionStore, s.notifier); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Bootstrap alongside the listener so clients see the loading state
	// instead of a connection refused.
	eg.Go(func() error {
		if err := s.session.Bootstrap(egctx); err != nil {
			s.logger.Error("session bootstrap failed", "error", err)
		}
		return nil
	})

	if s.watch && s.seedPath != "" {
		eg.Go(func() error {
			return s.watchSeed(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dashboard server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchSeed re-imports the seed script when it changes on disk and
// broadcasts the refreshed surface. Dev convenience only.
func (s *Server) watchSeed(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(s.seedPath)); err != nil {
		s.logger.Error("failed to watch seed script", "error", err)
		return nil
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.seedPath) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("seed script changed, re-importing", "file", event.Name)

				content, err := os.ReadFile(s.seedPath)
				if err != nil {
					s.logger.Error("failed to read seed script", "error", err)
					return
				}
				if err := s.session.ImportScript(ctx, string(content)); err != nil {
					s.logger.Error("seed re-import failed", "error", err)
				}
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
