package memory_test

import (
	"context"
	"github.com/google/uuid"
	cachepkg "github.com/naieum/omni/internal/cache"
	"github.com/naieum/omni/internal/cache/memory"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestSimple(t *testing.T) {
	ctx := context.Background()
	key := uuid.NewString()

	cache := memory.New()

	// Retrieval of a non-existent key should fail
	_, err := cache.Get(ctx, key)
	require.ErrorIs(t, err, cachepkg.ErrNotFound)

	// A Put() followed by a Get() within the TTL returns the value
	contentBytes := []byte(`{"count":1}`)
	require.NoError(t, cache.Put(ctx, key, contentBytes, time.Minute))

	retrievedBytes, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, contentBytes, retrievedBytes)

	// Re-insertion overwrites the previous value
	newContentBytes := []byte(`{"count":2}`)
	require.NoError(t, cache.Put(ctx, key, newContentBytes, time.Minute))

	retrievedBytes, err = cache.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, newContentBytes, retrievedBytes)
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	key := uuid.NewString()

	cache := memory.New()

	require.NoError(t, cache.Put(ctx, key, []byte("short-lived"), 50*time.Millisecond))

	// Within the TTL the entry is present
	_, err := cache.Get(ctx, key)
	require.NoError(t, err)

	// After the TTL elapses the entry is never returned again
	time.Sleep(100 * time.Millisecond)

	_, err = cache.Get(ctx, key)
	require.ErrorIs(t, err, cachepkg.ErrNotFound)
}
