package ports

import (
	"context"
	"errors"
)

// ErrIdempotencyKeyInUse is returned by Reserve when the key was already taken.
var ErrIdempotencyKeyInUse = errors.New("idempotency key already used")

// IdempotencyStore guards against a client replaying the same create request.
type IdempotencyStore interface {
	// Reserve claims key. It fails with ErrIdempotencyKeyInUse if the key is
	// held or was completed within its retention window.
	Reserve(ctx context.Context, key string) error

	// Complete records the id of the resource created under key.
	Complete(ctx context.Context, key, resourceID string) error

	// Release frees a reserved key after the request failed, so it can be retried.
	Release(ctx context.Context, key string) error

	// Lookup returns the resource id recorded under key, if any.
	Lookup(ctx context.Context, key string) (string, bool, error)
}
