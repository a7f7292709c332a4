package cache

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache entry not found")

// Cache is the structured-data cache tier: a key/value store with
// TTL-on-write semantics. Implementations must never return an entry
// after its TTL has elapsed; expiry is the tier's responsibility, not
// the caller's.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
