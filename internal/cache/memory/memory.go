package memory

import (
	"context"
	cachepkg "github.com/naieum/omni/internal/cache"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

const defaultCleanupInterval = time.Minute

// Memory is an in-process structured-data cache tier. Entries expire at
// their per-write TTL; a janitor sweeps expired entries periodically.
type Memory struct {
	inner *gocache.Cache
}

func New() *Memory {
	return &Memory{
		inner: gocache.New(gocache.NoExpiration, defaultCleanupInterval),
	}
}

func (memory *Memory) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := memory.inner.Get(key)
	if !ok {
		return nil, cachepkg.ErrNotFound
	}

	valueBytes, ok := value.([]byte)
	if !ok {
		return nil, cachepkg.ErrNotFound
	}

	return valueBytes, nil
}

func (memory *Memory) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	memory.inner.Set(key, value, ttl)

	return nil
}
