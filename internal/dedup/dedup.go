// Package dedup records request fingerprints so that redelivered queue
// messages do not trigger a second email.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dining:req:"

// Store marks request ids as dispatched, with a TTL covering the queue's
// redelivery window.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("dedup: redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("dedup: ttl must be positive")
	}
	return &Store{client: client, ttl: ttl}, nil
}

// MarkDispatched records the request id. Returns true if this is the first
// time the id was seen; false means the request was already dispatched and
// the caller should skip its side effect.
func (s *Store) MarkDispatched(ctx context.Context, requestID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+requestID, time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup: mark %s: %w", requestID, err)
	}
	return ok, nil
}

// Unmark clears a previously recorded request id so a later delivery can
// dispatch again. Called when the side effect behind the mark failed.
func (s *Store) Unmark(ctx context.Context, requestID string) error {
	if err := s.client.Del(ctx, keyPrefix+requestID).Err(); err != nil {
		return fmt.Errorf("dedup: unmark %s: %w", requestID, err)
	}
	return nil
}
