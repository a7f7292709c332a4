package s3_test

import (
	"bytes"
	"context"
	blobpkg "github.com/naieum/omni/internal/blob"
	"github.com/naieum/omni/internal/blob/s3"
	"github.com/naieum/omni/internal/testutil"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func TestSimple(t *testing.T) {
	ctx := context.Background()

	store, err := s3.NewFromConfig(ctx, testutil.S3(t))
	require.NoError(t, err)

	// Probing and retrieval of a non-existent key should fail
	exists, err := store.Exists(ctx, "music/albums/test/cover-large.jpg")
	require.NoError(t, err)
	require.False(t, exists)

	_, _, err = store.Get(ctx, "music/albums/test/cover-large.jpg")
	require.ErrorIs(t, err, blobpkg.ErrNotFound)

	// Insertion of a non-existent key should succeed
	contentBytes := []byte("Hello, World!")

	require.NoError(t, store.Put(ctx, "music/albums/test/cover-large.jpg", "image/png",
		bytes.NewReader(contentBytes)))

	// Probing and retrieval of an existent key should succeed,
	// yielding the stored bytes and the stored content type
	exists, err = store.Exists(ctx, "music/albums/test/cover-large.jpg")
	require.NoError(t, err)
	require.True(t, exists)

	retrievalReader, contentType, err := store.Get(ctx, "music/albums/test/cover-large.jpg")
	require.NoError(t, err)
	require.Equal(t, "image/png", contentType)

	retrievedContentBytes, err := io.ReadAll(retrievalReader)
	require.NoError(t, err)
	require.Equal(t, contentBytes, retrievedContentBytes)
	require.NoError(t, retrievalReader.Close())

	// Re-insertion of an existent key should be an idempotent no-op
	require.NoError(t, store.Put(ctx, "music/albums/test/cover-large.jpg", "image/png",
		bytes.NewReader(contentBytes)))

	retrievalReader, _, err = store.Get(ctx, "music/albums/test/cover-large.jpg")
	require.NoError(t, err)

	retrievedContentBytes, err = io.ReadAll(retrievalReader)
	require.NoError(t, err)
	require.Equal(t, contentBytes, retrievedContentBytes)
	require.NoError(t, retrievalReader.Close())
}
