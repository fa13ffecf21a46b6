// Package dashboard implements the state machine behind a salescope
// session: one embedded database handle, a metrics snapshot derived from it,
// an ad-hoc query console, drill-down details, and script import/export.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/leapstack-labs/salescope/internal/adapter"
)

// Fact and dimension tables the aggregate battery is coupled to. The
// introspector discovers whatever tables exist, but the battery assumes
// this schema; a non-matching import yields empty groups, not errors.
const (
	factTable = "orders"
	dimTable  = "products"
)

// Config holds configuration for a dashboard session.
type Config struct {
	// Engine is the embedded database configuration.
	Engine adapter.Config

	// SeedPath is a SQL script to execute at bootstrap. Empty means the
	// bundled sample dataset. Load failure is non-fatal.
	SeedPath string

	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger

	// OnChange is invoked after every state surface mutation so the UI
	// layer can push updates to subscribers (optional).
	OnChange func()
}

// Session owns the database handle and all dashboard state for one run.
// Exactly one session exists per process; the handle is created once at
// bootstrap and closed at shutdown, never replaced.
type Session struct {
	id       string
	cfg      Config
	logger   *slog.Logger
	onChange func()

	db adapter.Adapter

	bootstrapOnce sync.Once

	// detailSeq and refreshSeq tag in-flight async work; a completion
	// whose sequence is no longer current is discarded instead of
	// overwriting newer state.
	detailSeq  atomic.Uint64
	refreshSeq atomic.Uint64

	mu      sync.Mutex
	surface Surface
}

// New creates a session in the Uninitialized state. No database resources
// are acquired until Bootstrap.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	id := uuid.New().String()
	onChange := cfg.OnChange
	if onChange == nil {
		onChange = func() {}
	}

	return &Session{
		id:       id,
		cfg:      cfg,
		logger:   logger.With("session", id),
		onChange: onChange,
		surface: Surface{
			State:        StateUninitialized,
			Years:        []string{YearAll},
			SelectedYear: YearAll,
		},
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// DB returns the session's database handle. Callers may query it but must
// never close or replace it.
func (s *Session) DB() adapter.Adapter {
	return s.db
}

// Bootstrap initializes the session exactly once: it connects the engine,
// loads the seed script, and flips readiness. Re-invocations are no-ops,
// so framework-level double calls are safe. An engine connection failure
// is fatal and surfaces as a blocking error; a seed failure is not.
func (s *Session) Bootstrap(ctx context.Context) error {
	var bootErr error
	s.bootstrapOnce.Do(func() {
		bootErr = s.bootstrap(ctx)
	})
	return bootErr
}

func (s *Session) bootstrap(ctx context.Context) error {
	s.mutate(func(sf *Surface) {
		sf.State = StateBootstrapping
		sf.Loading = true
	})

	db, err := adapter.New(s.cfg.Engine)
	if err != nil {
		return s.failBootstrap(err)
	}
	if err := db.Connect(ctx, s.cfg.Engine); err != nil {
		return s.failBootstrap(err)
	}
	s.db = db

	s.logger.Debug("engine connected", "dialect", db.DialectName())

	// Seed failure leaves an empty database and a degraded but working
	// dashboard.
	if err := s.loadSeed(ctx); err != nil {
		s.logger.Warn("seed load failed, continuing with empty database", "error", err)
	}

	s.mutate(func(sf *Surface) {
		sf.State = StateReady
		sf.Ready = true
		sf.Loading = false
	})

	s.logger.Info("session ready", "engine", s.cfg.Engine.Type)

	s.refreshSchema(ctx)
	s.refreshMetrics(ctx)

	return nil
}

func (s *Session) failBootstrap(err error) error {
	wrapped := fmt.Errorf("failed to initialize database engine: %w", err)
	s.mutate(func(sf *Surface) {
		sf.Error = wrapped.Error()
		sf.Loading = false
	})
	return wrapped
}

// Close releases the database handle.
func (s *Session) Close() error {
	if s.db != nil {
		s.logger.Debug("closing session")
		return s.db.Close()
	}
	return nil
}

// Surface returns a copy of the current UI-facing state. Collections inside
// it are replaced wholesale on refresh and must not be mutated by callers.
func (s *Session) Surface() Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface
}

// Ready reports whether bootstrap completed successfully.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Ready
}

// SelectedYear returns the current year filter.
func (s *Session) SelectedYear() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.SelectedYear
}

// SetYear changes the year filter and re-runs the aggregate battery.
// The years list itself is filter-independent and is not recomputed here.
func (s *Session) SetYear(ctx context.Context, year string) {
	if year == "" {
		year = YearAll
	}
	s.mutate(func(sf *Surface) {
		sf.SelectedYear = year
	})
	s.refreshMetrics(ctx)
}

// Refresh re-runs the schema introspection and the aggregate battery.
// Called on readiness and after imports.
func (s *Session) Refresh(ctx context.Context) {
	s.refreshSchema(ctx)
	s.refreshMetrics(ctx)
}

// mutate applies fn to the surface under lock and notifies subscribers.
func (s *Session) mutate(fn func(*Surface)) {
	s.mu.Lock()
	fn(&s.surface)
	s.mu.Unlock()
	s.onChange()
}
