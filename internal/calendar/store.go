package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps the normalized event list a browsing session last posted, so
// the calendar view can be re-served without the client re-sending raw items.
type Store interface {
	// Save replaces the session's event list.
	Save(ctx context.Context, sessionID string, events []Event) error

	// List returns the session's stored events (empty when nothing posted).
	List(ctx context.Context, sessionID string) ([]Event, error)
}

var ErrInvalidArgument = errors.New("calendar: invalid argument")

// RedisStore keeps event lists in Redis with a session-scoped TTL, matching
// the selection store's lifecycle.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(sessionID string) string { return "calendar:" + sessionID }

func (s *RedisStore) Save(ctx context.Context, sessionID string, events []Event) error {
	if sessionID == "" {
		return ErrInvalidArgument
	}
	payload, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(sessionID), payload, s.ttl).Err()
}

func (s *RedisStore) List(ctx context.Context, sessionID string) ([]Event, error) {
	if sessionID == "" {
		return nil, ErrInvalidArgument
	}
	payload, err := s.rdb.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Event{}, nil
	}
	if err != nil {
		return nil, err
	}
	var events []Event
	if err := json.Unmarshal(payload, &events); err != nil {
		return nil, err
	}
	return events, nil
}
