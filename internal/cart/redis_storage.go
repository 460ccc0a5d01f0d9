package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/minithai/minithai-backend/pkg/logger"
	pkgredis "github.com/minithai/minithai-backend/pkg/redis"
)

// RedisStorage persists cart documents in Redis and signals changes on
// a shared pub/sub channel. Messages are tagged with an origin id so a
// process filters out its own writes and only reacts to foreign ones.
type RedisStorage struct {
	client *pkgredis.Client
	logg   *logger.Logger
	origin string
}

func NewRedisStorage(client *pkgredis.Client, logg *logger.Logger) *RedisStorage {
	return &RedisStorage{
		client: client,
		logg:   logg,
		origin: uuid.NewString(),
	}
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0); err != nil {
		return err
	}
	// The document write already succeeded; a lost signal only delays
	// convergence until the other side's next poll.
	if err := s.client.Publish(ctx, pkgredis.CartEventsChannel, s.origin+"|"+key); err != nil && s.logg != nil {
		s.logg.Error(ctx, "cart change signal publish failed", err)
	}
	return nil
}

// Watch subscribes to the shared change channel and filters signals for
// key. The subscription is confirmed before Watch returns so callers
// never miss a write that lands right after construction.
func (s *RedisStorage) Watch(ctx context.Context, key string) (<-chan string, error) {
	sub, err := s.client.Subscribe(ctx, pkgredis.CartEventsChannel)
	if err != nil {
		return nil, err
	}
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan string, 16)
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				origin, changed, found := strings.Cut(msg.Payload, "|")
				if !found || origin == s.origin || changed != key {
					continue
				}
				select {
				case out <- changed:
				default:
				}
			}
		}
	}()

	return out, nil
}
