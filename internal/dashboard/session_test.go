package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/leapstack-labs/salescope/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSession bootstraps a session against an in-memory sqlite engine.
// An empty seedPath uses the bundled sample dataset.
func newTestSession(t *testing.T, seedPath string) *Session {
	t.Helper()

	s := New(Config{
		Engine:   adapter.Config{Type: "sqlite", Path: ":memory:"},
		SeedPath: seedPath,
	})
	require.NoError(t, s.Bootstrap(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// writeSeed writes a seed script to a temp file and returns its path.
func writeSeed(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.sql")
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))
	return path
}

const minimalSeed = `
CREATE TABLE products (
	product_id TEXT,
	product_name TEXT,
	category TEXT,
	sub_category TEXT
);
CREATE TABLE orders (
	order_id TEXT,
	order_date TEXT,
	customer_name TEXT,
	region TEXT,
	ship_mode TEXT,
	product_id TEXT,
	sales REAL,
	quantity INTEGER,
	profit REAL
);
INSERT INTO products VALUES
	('P-1', 'Stapler', 'Office Supplies', 'Fasteners'),
	('P-2', 'Desk Chair', 'Furniture', 'Chairs');
INSERT INTO orders VALUES
	('O-1', '01/15/2023', 'Alice', 'East', 'Standard', 'P-1', 100.0, 2, 20.0),
	('O-2', '02/01/2023', 'Bob', 'West', 'Express', 'P-2', 200.0, 1, 50.0),
	('O-3', '03/10/2022', 'Alice', 'East', 'Standard', 'P-1', 50.0, 1, 5.0);
`

func TestNew_Uninitialized(t *testing.T) {
	s := New(Config{Engine: adapter.Config{Type: "sqlite"}})

	surface := s.Surface()
	assert.Equal(t, StateUninitialized, surface.State)
	assert.False(t, surface.Ready)
	assert.Equal(t, []string{YearAll}, surface.Years)
	assert.Equal(t, YearAll, surface.SelectedYear)
	assert.Nil(t, surface.Snapshot)
	assert.NotEmpty(t, s.ID())
}

func TestBootstrap_BundledSeed(t *testing.T) {
	s := newTestSession(t, "")

	surface := s.Surface()
	assert.Equal(t, StateReady, surface.State)
	assert.True(t, surface.Ready)
	assert.False(t, surface.Loading)
	assert.Empty(t, surface.Error)

	assert.Contains(t, surface.Tables, "orders")
	assert.Contains(t, surface.Tables, "products")

	require.NotEmpty(t, surface.Years)
	assert.Equal(t, YearAll, surface.Years[0], "years must lead with the All sentinel")
	assert.Greater(t, len(surface.Years), 1, "bundled sample should contribute years")

	require.NotNil(t, surface.Snapshot)
	assert.Greater(t, surface.Snapshot.TotalOrders, int64(0))
}

func TestBootstrap_Idempotent(t *testing.T) {
	s := newTestSession(t, "")

	// A second call must not reconnect or reseed
	db := s.DB()
	require.NoError(t, s.Bootstrap(context.Background()))
	assert.Same(t, db, s.DB())
}

func TestBootstrap_EngineFailure(t *testing.T) {
	s := New(Config{Engine: adapter.Config{Type: "no_such_engine"}})

	err := s.Bootstrap(context.Background())
	require.Error(t, err)

	surface := s.Surface()
	assert.False(t, surface.Ready)
	assert.Contains(t, surface.Error, "failed to initialize database engine")
}

func TestBootstrap_SeedFailureIsNonFatal(t *testing.T) {
	s := New(Config{
		Engine:   adapter.Config{Type: "sqlite", Path: ":memory:"},
		SeedPath: "/nonexistent/seed.sql",
	})
	require.NoError(t, s.Bootstrap(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	surface := s.Surface()
	assert.True(t, surface.Ready, "a missing seed degrades, it does not block")
	assert.Empty(t, surface.Error)
	assert.Empty(t, surface.Tables)
	assert.Equal(t, []string{YearAll}, surface.Years)
	assert.Nil(t, surface.Snapshot, "no fact table means no snapshot")
}

func TestBootstrap_NotifiesOnChange(t *testing.T) {
	var notifications atomic.Int64

	s := New(Config{
		Engine:   adapter.Config{Type: "sqlite", Path: ":memory:"},
		OnChange: func() { notifications.Add(1) },
	})
	require.NoError(t, s.Bootstrap(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	assert.Greater(t, notifications.Load(), int64(2),
		"bootstrap should notify for state transitions, schema and metrics")
}

func TestSetYear(t *testing.T) {
	s := newTestSession(t, writeSeed(t, minimalSeed))

	s.SetYear(context.Background(), "2023")
	assert.Equal(t, "2023", s.SelectedYear())

	// Clearing falls back to the sentinel
	s.SetYear(context.Background(), "")
	assert.Equal(t, YearAll, s.SelectedYear())
}

func TestSetYear_DoesNotRecomputeYears(t *testing.T) {
	s := newTestSession(t, writeSeed(t, minimalSeed))

	before := s.Surface().Years
	s.SetYear(context.Background(), "2022")
	assert.Equal(t, before, s.Surface().Years)
}

func TestSurface_ReturnsCopy(t *testing.T) {
	s := newTestSession(t, writeSeed(t, minimalSeed))

	surface := s.Surface()
	surface.SelectedYear = "1999"
	assert.Equal(t, YearAll, s.SelectedYear(), "mutating the copy must not touch session state")
}
