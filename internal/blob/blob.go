package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

// Store is the blob cache tier: a durable, content-addressed store for
// binary assets. A given key is written at most once logically, so
// concurrent writes to the same key must be safe to race.
type Store interface {
	// Exists is a cheap existence probe that doesn't read the body
	Exists(ctx context.Context, key string) (bool, error)

	// Get returns the stored bytes along with the stored content type
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)

	Put(ctx context.Context, key string, contentType string, blobReader io.Reader) error
}
