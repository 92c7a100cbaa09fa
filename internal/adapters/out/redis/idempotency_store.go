// Package redis keeps idempotency keys for create requests.
package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"logistics/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix       = "idempotency:"
	pendingValue    = "pending"
	completedPrefix = "done:"

	// DefaultTTL is how long a key blocks replays.
	DefaultTTL = 24 * time.Hour
)

// releaseScript deletes the key only while it is still pending, so a late
// Release cannot drop the record of a completed request.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// completeScript overwrites a pending key with the resource id and keeps
// whatever TTL is left.
var completeScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	redis.call('SET', KEYS[1], ARGV[2], 'KEEPTTL')
	return 1
end
return 0
`)

// ErrKeyNotReserved is returned by Complete for a key that is not pending.
var ErrKeyNotReserved = errors.New("idempotency key is not reserved")

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) error {
	ok, err := s.client.SetNX(ctx, keyPrefix+key, pendingValue, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ports.ErrIdempotencyKeyInUse
	}
	return nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key, resourceID string) error {
	n, err := completeScript.Run(ctx, s.client, []string{keyPrefix + key}, pendingValue, completedPrefix+resourceID).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrKeyNotReserved
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return releaseScript.Run(ctx, s.client, []string{keyPrefix + key}, pendingValue).Err()
}

// Lookup reports the resource id once the request under key has completed.
// A pending key yields ok == false.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	id, ok := strings.CutPrefix(value, completedPrefix)
	return id, ok, nil
}
