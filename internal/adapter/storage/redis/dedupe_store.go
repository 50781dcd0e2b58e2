package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DedupeStore implements ports.DedupeStore using Redis SET NX. It keeps
// a digest of every webhook payload seen within the TTL window so exact
// redeliveries are recognized.
type DedupeStore struct {
	client *goredis.Client
	prefix string
}

// NewDedupeStore creates a new Redis-backed dedupe store.
func NewDedupeStore(client *goredis.Client) *DedupeStore {
	return &DedupeStore{
		client: client,
		prefix: "webhook:",
	}
}

// MarkIfFirst atomically records a payload digest. Returns true when the
// digest was not seen before within the TTL window.
func (s *DedupeStore) MarkIfFirst(ctx context.Context, digest string, ttl time.Duration) (bool, error) {
	key := s.prefix + digest
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists, this payload was delivered before.
			return false, nil
		}
		return false, fmt.Errorf("redis webhook dedupe: %w", err)
	}
	return result == "OK", nil
}
