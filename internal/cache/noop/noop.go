package noop

import (
	"context"
	cachepkg "github.com/naieum/omni/internal/cache"
	"time"
)

// NoOp is a structured-data cache tier that caches nothing: every read
// misses and every write is accepted and dropped. It keeps the serving
// path functional when no cache backend is configured.
type NoOp struct{}

func New() *NoOp {
	return &NoOp{}
}

func (noop *NoOp) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, cachepkg.ErrNotFound
}

func (noop *NoOp) Put(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}
