package noop_test

import (
	"context"
	"github.com/google/uuid"
	cachepkg "github.com/naieum/omni/internal/cache"
	"github.com/naieum/omni/internal/cache/noop"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	ctx := context.Background()
	key := uuid.NewString()

	noop := noop.New()

	// Retrieval from a no-op cache should return ErrNotFound
	_, err := noop.Get(ctx, key)
	require.ErrorIs(t, err, cachepkg.ErrNotFound)

	// ...even after a Put()
	require.NoError(t, noop.Put(ctx, key, []byte("Hello, World!"), time.Minute))

	_, err = noop.Get(ctx, key)
	require.ErrorIs(t, err, cachepkg.ErrNotFound)
}
