package cart

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound reports that no document exists under the requested key.
var ErrNotFound = errors.New("cart: document not found")

// Storage is the durable whole-document store backing a cart. Watch
// delivers the key name whenever a different execution context writes
// it; a context never observes its own writes on the channel, matching
// the storage-event contract the web cart was built against.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Watch(ctx context.Context, key string) (<-chan string, error)
}

// MemoryBackend is a process-local Storage backend for tests and dev.
// Each execution context obtains its own handle via Context so that
// cross-context signals can be told apart from self-writes.
type MemoryBackend struct {
	mu       sync.Mutex
	data     map[string]string
	watchers []*memoryWatcher
}

type memoryWatcher struct {
	owner *memoryStorage
	key   string
	ch    chan string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

// Context returns a Storage handle representing one execution context.
func (b *MemoryBackend) Context() Storage {
	return &memoryStorage{backend: b}
}

type memoryStorage struct {
	backend *MemoryBackend
}

func (s *memoryStorage) Get(ctx context.Context, key string) (string, error) {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	value, ok := s.backend.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *memoryStorage) Set(ctx context.Context, key, value string) error {
	s.backend.mu.Lock()
	s.backend.data[key] = value
	var notify []chan string
	for _, w := range s.backend.watchers {
		if w.owner == s || w.key != key {
			continue
		}
		notify = append(notify, w.ch)
	}
	s.backend.mu.Unlock()

	for _, ch := range notify {
		select {
		case ch <- key:
		default:
			// Slow watcher; the next signal or poll converges it.
		}
	}
	return nil
}

func (s *memoryStorage) Watch(ctx context.Context, key string) (<-chan string, error) {
	w := &memoryWatcher{owner: s, key: key, ch: make(chan string, 16)}
	s.backend.mu.Lock()
	s.backend.watchers = append(s.backend.watchers, w)
	s.backend.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.backend.mu.Lock()
		for i, cur := range s.backend.watchers {
			if cur == w {
				s.backend.watchers = append(s.backend.watchers[:i], s.backend.watchers[i+1:]...)
				break
			}
		}
		s.backend.mu.Unlock()
		close(w.ch)
	}()

	return w.ch, nil
}
