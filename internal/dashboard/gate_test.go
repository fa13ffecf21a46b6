package dashboard

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leapstack-labs/salescope/internal/adapter"
	"github.com/stretchr/testify/require"
)

// queryGate parks the next Query call until released, letting tests order
// a slow in-flight load against a newer one deterministically.
type queryGate struct {
	mu        sync.Mutex
	armed     bool
	entered   chan struct{}
	releaseCh chan struct{}
	pending   []chan struct{}
}

// hold arms the gate: the next Query blocks until release. Holding again
// while a query is parked queues a second stop; release lets parked
// queries go in hold order.
func (g *queryGate) hold() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.armed = true
	g.entered = make(chan struct{}, 1)
	g.releaseCh = make(chan struct{})
	g.pending = append(g.pending, g.releaseCh)
}

// waitEntered blocks until a query is parked at the gate.
func (g *queryGate) waitEntered(t *testing.T) {
	t.Helper()
	g.mu.Lock()
	entered := g.entered
	g.mu.Unlock()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("no query reached the gate")
	}
}

// release lets the oldest parked query proceed.
func (g *queryGate) release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	close(g.pending[0])
	g.pending = g.pending[1:]
}

func (g *queryGate) maybeBlock() {
	g.mu.Lock()
	if !g.armed {
		g.mu.Unlock()
		return
	}
	g.armed = false
	g.entered <- struct{}{}
	release := g.releaseCh
	g.mu.Unlock()
	<-release
}

// gatedAdapter wraps a real adapter, routing Query calls through the gate.
type gatedAdapter struct {
	adapter.Adapter
	gate *queryGate
}

func (a *gatedAdapter) Query(ctx context.Context, sqlStr string) (*adapter.Rows, error) {
	a.gate.maybeBlock()
	return a.Adapter.Query(ctx, sqlStr)
}

// newGatedSession bootstraps a session whose adapter can park queries.
func newGatedSession(t *testing.T) (*Session, *queryGate) {
	t.Helper()

	gate := &queryGate{}
	engineType := "gated-" + strings.ToLower(t.Name())
	adapter.Register(engineType, func() adapter.Adapter {
		return &gatedAdapter{Adapter: adapter.NewSQLiteAdapter(), gate: gate}
	})

	s := New(Config{
		Engine:   adapter.Config{Type: engineType, Path: ":memory:"},
		SeedPath: writeSeed(t, minimalSeed),
	})
	require.NoError(t, s.Bootstrap(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s, gate
}
