package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/minithai/minithai-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Store owns the canonical line-item list for one guest cart. Every
// mutation rewrites the whole document under a single durable key and
// then notifies subscribers, strictly in that order. Concurrent writers
// in other processes are converged through the storage Watch signal;
// the last full write wins.
//
// Persistence failures are logged and swallowed: cart interaction keeps
// working on the in-memory state even when the durable store is down.
type Store struct {
	key     string
	storage Storage
	logg    *logger.Logger

	mu        sync.Mutex
	items     []LineItem
	listeners map[int]func()
	nextSub   int

	cancel context.CancelFunc
	done   chan struct{}

	now func() time.Time
}

// NewStore loads the persisted document (empty on absence or corrupt
// data) and starts watching for foreign writes to the same key. The
// watch subscription is registered before NewStore returns: a foreign
// write landing right after construction must not slip past an
// in-flight registration.
func NewStore(ctx context.Context, key string, storage Storage, logg *logger.Logger) *Store {
	s := &Store{
		key:       key,
		storage:   storage,
		logg:      logg,
		listeners: make(map[int]func()),
		done:      make(chan struct{}),
		now:       time.Now,
	}
	s.items = s.load(ctx)

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	ch, err := storage.Watch(watchCtx, key)
	if err != nil {
		if logg != nil {
			logg.Error(ctx, "cart watch unavailable, relying on polling consumers", err)
		}
		ch = nil
	}
	go s.watch(watchCtx, ch)

	return s
}

func (s *Store) load(ctx context.Context) []LineItem {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && s.logg != nil {
			s.logg.Error(ctx, "loading cart failed, starting empty", err)
		}
		return nil
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "corrupt cart document, starting empty", err)
		}
		return nil
	}
	return items
}

func (s *Store) watch(ctx context.Context, ch <-chan string) {
	defer close(s.done)

	if ch == nil {
		<-ctx.Done()
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			s.reload(ctx)
		}
	}
}

// reload replaces the in-memory state with the latest persisted
// document after a foreign write, then notifies subscribers.
func (s *Store) reload(ctx context.Context) {
	items := s.load(ctx)

	s.mu.Lock()
	s.items = items
	listeners := s.snapshotListenersLocked()
	s.mu.Unlock()

	s.notify(ctx, listeners)
}

// Close stops the change watcher. The persisted document stays put.
func (s *Store) Close() error {
	s.cancel()
	<-s.done
	return nil
}

// AddItem validates the candidate and merges it into the cart. Two
// lines merge only when the catalog id matches and the existing line
// has no image or the same image; removal and quantity updates match
// by id alone. The asymmetry is intentional and load-bearing for
// callers that vary image references between adds.
func (s *Store) AddItem(ctx context.Context, candidate Candidate) bool {
	if candidate.ID == "" || candidate.Name == "" || candidate.Price.Sign() <= 0 {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("rejecting invalid cart candidate id=%q name=%q", candidate.ID, candidate.Name))
		}
		return false
	}

	quantity := candidate.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ID == candidate.ID && (s.items[i].Image == "" || s.items[i].Image == candidate.Image) {
			// Loaded documents may carry lines without a quantity field;
			// they count as one unit, so they merge as one unit too.
			existing := s.items[i].Quantity
			if existing <= 0 {
				existing = 1
			}
			s.items[i].Quantity = existing + quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, LineItem{
			ID:       candidate.ID,
			Name:     candidate.Name,
			Price:    candidate.Price,
			Image:    candidate.Image,
			Quantity: quantity,
			AddedAt:  s.now(),
		})
	}
	s.persistLocked(ctx)
	listeners := s.snapshotListenersLocked()
	s.mu.Unlock()

	s.notify(ctx, listeners)
	return true
}

// RemoveItem removes the first line with the given catalog id.
func (s *Store) RemoveItem(ctx context.Context, id string) bool {
	s.mu.Lock()
	index := -1
	for i := range s.items {
		if s.items[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.persistLocked(ctx)
	listeners := s.snapshotListenersLocked()
	s.mu.Unlock()

	s.notify(ctx, listeners)
	return true
}

// UpdateQuantity sets the quantity of the first line with the given id.
// Zero or negative quantities remove the line instead. The store does
// not clamp upwards; callers enforce their own ceiling before calling.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) bool {
	if quantity <= 0 {
		return s.RemoveItem(ctx, id)
	}

	s.mu.Lock()
	index := -1
	for i := range s.items {
		if s.items[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return false
	}
	s.items[index].Quantity = quantity
	s.persistLocked(ctx)
	listeners := s.snapshotListenersLocked()
	s.mu.Unlock()

	s.notify(ctx, listeners)
	return true
}

// Clear empties the cart. Clearing an empty cart still persists and
// notifies, matching the web cart it replaces.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.persistLocked(ctx)
	listeners := s.snapshotListenersLocked()
	s.mu.Unlock()

	s.notify(ctx, listeners)
}

// Items returns a defensive copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the sum of price*quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Count is the total unit count across all lines, not the line count.
// A missing quantity on a loaded document counts as one unit.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		q := item.Quantity
		if q == 0 {
			q = 1
		}
		count += q
	}
	return count
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Subscribe registers a change listener and returns its unsubscribe
// function. A panicking listener is isolated and logged; it never
// blocks delivery to the remaining listeners.
func (s *Store) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(s.items)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "serializing cart failed, state kept in memory only", err)
		}
		return
	}
	if err := s.storage.Set(ctx, s.key, string(raw)); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "persisting cart failed, state kept in memory only", err)
		}
	}
}

func (s *Store) snapshotListenersLocked() []func() {
	if len(s.listeners) == 0 {
		return nil
	}
	// Deliver in registration order.
	out := make([]func(), 0, len(s.listeners))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (s *Store) notify(ctx context.Context, listeners []func()) {
	for _, fn := range listeners {
		s.invoke(ctx, fn)
	}
}

func (s *Store) invoke(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil && s.logg != nil {
			s.logg.Error(ctx, "cart listener panicked", fmt.Errorf("panic: %v", r))
		}
	}()
	fn()
}
