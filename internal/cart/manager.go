package cart

import (
	"context"
	"sync"
	"time"

	"github.com/minithai/minithai-backend/pkg/config"
	"github.com/minithai/minithai-backend/pkg/logger"
	"github.com/minithai/minithai-backend/pkg/metrics"
	"go.uber.org/multierr"
)

// KeyFunc maps a session id to the durable key its cart document lives
// under.
type KeyFunc func(sessionID string) string

// Session bundles the per-session cart machinery: the store, the badge
// reconciler driving its display hub, and the hub itself.
type Session struct {
	Store      *Store
	Badge      *BadgeReconciler
	DisplayHub *DisplayHub
}

type managedSession struct {
	sess      *Session
	lastTouch time.Time
}

// Manager lazily builds one Session per guest session id and tears them
// all down on Close. It replaces the page-global singleton cart: every
// session gets an isolated store, created on first touch.
//
// Sessions idle past the configured timeout are swept away, since the
// cart endpoints are public and every cookie-minting client would
// otherwise pin a watcher and a badge loop forever. The cart document
// is durable, so an evicted session rebuilds cheaply on its next touch.
type Manager struct {
	storage   Storage
	keyFor    KeyFunc
	opts      BadgeOptions
	idleAfter time.Duration
	logg      *logger.Logger
	met       *metrics.BadgeMetrics

	mu       sync.Mutex
	sessions map[string]*managedSession
	closed   bool

	stop        chan struct{}
	sweeperDone chan struct{}

	now func() time.Time
}

type ManagerParams struct {
	Storage Storage
	KeyFor  KeyFunc
	Cart    config.CartConfig
	Logger  *logger.Logger
	Metrics *metrics.BadgeMetrics
}

func NewManager(params ManagerParams) *Manager {
	idleAfter := params.Cart.SessionIdleAfter
	if idleAfter <= 0 {
		idleAfter = 30 * time.Minute
	}
	sweepEvery := params.Cart.SessionSweepEvery
	if sweepEvery <= 0 {
		sweepEvery = 5 * time.Minute
	}

	m := &Manager{
		storage: params.Storage,
		keyFor:  params.KeyFor,
		opts: BadgeOptions{
			PollInterval:  params.Cart.BadgePollInterval,
			MountDebounce: params.Cart.BadgeMountDebounce,
			HighlightFor:  params.Cart.BadgeHighlightFor,
		},
		idleAfter:   idleAfter,
		logg:        params.Logger,
		met:         params.Metrics,
		sessions:    make(map[string]*managedSession),
		stop:        make(chan struct{}),
		sweeperDone: make(chan struct{}),
		now:         time.Now,
	}
	go m.sweep(sweepEvery)
	return m
}

// Session returns the session's cart machinery, creating it on first
// use and refreshing its idle clock. Returns nil after Close.
func (m *Manager) Session(ctx context.Context, sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	if entry, ok := m.sessions[sessionID]; ok {
		entry.lastTouch = m.now()
		return entry.sess
	}

	store := NewStore(ctx, m.keyFor(sessionID), m.storage, m.logg)
	hub := NewDisplayHub()
	badge := NewBadgeReconciler(store, hub, m.opts, m.logg, m.met)
	badge.Start(ctx)

	sess := &Session{Store: store, Badge: badge, DisplayHub: hub}
	m.sessions[sessionID] = &managedSession{sess: sess, lastTouch: m.now()}
	return sess
}

func (m *Manager) sweep(every time.Duration) {
	defer close(m.sweeperDone)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

// evictIdle tears down every session untouched for the idle window.
func (m *Manager) evictIdle() {
	cutoff := m.now().Add(-m.idleAfter)

	m.mu.Lock()
	var victims []*Session
	for id, entry := range m.sessions {
		if entry.lastTouch.Before(cutoff) {
			victims = append(victims, entry.sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range victims {
		sess.Badge.Stop()
		if err := sess.Store.Close(); err != nil && m.logg != nil {
			m.logg.Error(context.Background(), "closing idle cart session failed", err)
		}
	}
}

// Close stops the sweeper and every session's reconciler and store
// watcher. Errors are aggregated; persisted cart documents are left
// intact.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	sessions := make([]*Session, 0, len(m.sessions))
	for _, entry := range m.sessions {
		sessions = append(sessions, entry.sess)
	}
	m.sessions = nil
	m.mu.Unlock()

	close(m.stop)
	<-m.sweeperDone

	var err error
	for _, sess := range sessions {
		sess.Badge.Stop()
		err = multierr.Append(err, sess.Store.Close())
	}
	return err
}
