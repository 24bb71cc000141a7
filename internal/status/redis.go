package status

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a marker is retained. Terminal states only matter
// until the next run; a day is generous.
const DefaultTTL = 24 * time.Hour

// RedisStore persists markers in Redis so status survives restarts and is
// shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Store backed by the given Redis client. A zero ttl
// selects DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func key(userID string) string {
	return "jobscout:scrape-status:" + userID
}

// Get returns the user's marker, or the idle marker when none is stored.
func (s *RedisStore) Get(ctx context.Context, userID string) (Status, error) {
	raw, err := s.client.Get(ctx, key(userID)).Result()
	if err == redis.Nil {
		return Idle(), nil
	}
	if err != nil {
		return Idle(), fmt.Errorf("failed to read status for %s: %w", userID, err)
	}

	var st Status
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return Idle(), fmt.Errorf("corrupt status marker for %s: %w", userID, err)
	}
	return st, nil
}

// Set overwrites the user's marker.
func (s *RedisStore) Set(ctx context.Context, userID string, st Status) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	if err := s.client.Set(ctx, key(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write status for %s: %w", userID, err)
	}
	return nil
}
