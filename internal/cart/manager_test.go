package cart

import (
	"context"
	"testing"
	"time"

	"github.com/minithai/minithai-backend/pkg/config"
	"github.com/shopspring/decimal"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	backend := NewMemoryBackend()
	m := NewManager(ManagerParams{
		Storage: backend.Context(),
		KeyFor:  func(sessionID string) string { return "mt:cart:" + sessionID },
		Cart:    config.CartConfig{},
	})
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestManagerReturnsSameSessionForSameID(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	first := m.Session(ctx, "abc")
	second := m.Session(ctx, "abc")
	if first != second {
		t.Fatal("same session id must map to the same cart")
	}
}

func TestManagerIsolatesSessions(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	a := m.Session(ctx, "session-a")
	b := m.Session(ctx, "session-b")

	a.Store.AddItem(ctx, Candidate{ID: "7", Name: "Som Tam", Price: decimal.NewFromInt(10)})

	if !b.Store.IsEmpty() {
		t.Fatal("sessions must not share cart state")
	}
}

func TestManagerEvictsIdleSessions(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	idle := m.Session(ctx, "idle")
	active := m.Session(ctx, "active")

	// Jump past the idle window, but keep "active" touched.
	base := time.Now()
	m.now = func() time.Time { return base.Add(time.Hour) }
	m.Session(ctx, "active")
	m.evictIdle()

	m.mu.Lock()
	_, idleKept := m.sessions["idle"]
	_, activeKept := m.sessions["active"]
	m.mu.Unlock()
	if idleKept {
		t.Fatal("idle session should have been evicted")
	}
	if !activeKept {
		t.Fatal("recently touched session must survive the sweep")
	}

	// The next touch rebuilds the session from the durable document.
	rebuilt := m.Session(ctx, "idle")
	if rebuilt == nil || rebuilt == idle {
		t.Fatal("evicted session must be rebuilt fresh on next touch")
	}
	if m.Session(ctx, "active") != active {
		t.Fatal("surviving session must stay intact")
	}
}

func TestManagerEvictedSessionKeepsDurableState(t *testing.T) {
	t.Parallel()

	backend := NewMemoryBackend()
	m := NewManager(ManagerParams{
		Storage: backend.Context(),
		KeyFor:  func(sessionID string) string { return "mt:cart:" + sessionID },
		Cart:    config.CartConfig{},
	})
	t.Cleanup(func() { _ = m.Close() })
	ctx := context.Background()

	m.Session(ctx, "abc").Store.AddItem(ctx, Candidate{ID: "7", Name: "Som Tam", Price: decimal.NewFromInt(10), Quantity: 2})

	base := time.Now()
	m.now = func() time.Time { return base.Add(time.Hour) }
	m.evictIdle()

	if got := m.Session(ctx, "abc").Store.Count(); got != 2 {
		t.Fatalf("rebuilt session should load the persisted cart, got count %d", got)
	}
}

func TestManagerCloseRejectsNewSessions(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	m.Session(ctx, "abc")
	if err := m.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if sess := m.Session(ctx, "xyz"); sess != nil {
		t.Fatal("closed manager must not hand out sessions")
	}
}
