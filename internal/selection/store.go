package selection

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists the single selected call per browsing session.
//
// Selection is a toggle by design: selecting the already-selected call
// returns the session to "no selection". Double-toggle is the identity.
type Store interface {
	// Toggle flips the selection for sessionID and returns the resulting
	// selected call id ("" means no selection).
	Toggle(ctx context.Context, sessionID, callID string) (string, error)

	// Get returns the current selection ("" means no selection).
	Get(ctx context.Context, sessionID string) (string, error)
}

var ErrInvalidArgument = errors.New("selection: invalid argument")

// RedisStore keeps selections in Redis with a session-scoped TTL, so
// abandoned sessions expire on their own.
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

func key(sessionID string) string { return "selection:" + sessionID }

func (s *RedisStore) Toggle(ctx context.Context, sessionID, callID string) (string, error) {
	if sessionID == "" || callID == "" {
		return "", ErrInvalidArgument
	}

	current, err := s.rdb.Get(ctx, key(sessionID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}

	if current == callID {
		if err := s.rdb.Del(ctx, key(sessionID)).Err(); err != nil {
			return "", err
		}
		return "", nil
	}

	if err := s.rdb.Set(ctx, key(sessionID), callID, s.ttl).Err(); err != nil {
		return "", err
	}
	return callID, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrInvalidArgument
	}
	v, err := s.rdb.Get(ctx, key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}
