package disk_test

import (
	"bytes"
	"context"
	blobpkg "github.com/naieum/omni/internal/blob"
	"github.com/naieum/omni/internal/blob/disk"
	"github.com/stretchr/testify/require"
	"io"
	"os"
	"testing"
)

func TestSimple(t *testing.T) {
	ctx := context.Background()

	store, err := disk.New(t.TempDir(), 1*1024*1024)
	require.NoError(t, err)

	// Probing and retrieval of a non-existent key should fail
	exists, err := store.Exists(ctx, "music/albums/test/cover-large.jpg")
	require.NoError(t, err)
	require.False(t, exists)

	_, _, err = store.Get(ctx, "music/albums/test/cover-large.jpg")
	require.ErrorIs(t, err, blobpkg.ErrNotFound)

	// Insertion of a non-existent key should succeed
	contentBytes := []byte("\xff\xd8\xff\xe0 not really a JPEG")
	require.NoError(t, store.Put(ctx, "music/albums/test/cover-large.jpg", "image/jpeg",
		bytes.NewReader(contentBytes)))

	// Probing and retrieval of an existent key should succeed,
	// yielding the stored bytes and the stored content type
	exists, err = store.Exists(ctx, "music/albums/test/cover-large.jpg")
	require.NoError(t, err)
	require.True(t, exists)

	retrievalReader, contentType, err := store.Get(ctx, "music/albums/test/cover-large.jpg")
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", contentType)

	retrievedContentBytes, err := io.ReadAll(retrievalReader)
	require.NoError(t, err)
	require.Equal(t, contentBytes, retrievedContentBytes)
	require.NoError(t, retrievalReader.Close())

	// Re-insertion of an existent key with identical content
	// should be an idempotent no-op
	require.NoError(t, store.Put(ctx, "music/albums/test/cover-large.jpg", "image/jpeg",
		bytes.NewReader(contentBytes)))

	retrievalReader, contentType, err = store.Get(ctx, "music/albums/test/cover-large.jpg")
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", contentType)

	retrievedContentBytes, err = io.ReadAll(retrievalReader)
	require.NoError(t, err)
	require.Equal(t, contentBytes, retrievedContentBytes)
	require.NoError(t, retrievalReader.Close())
}

func TestEvict(t *testing.T) {
	ctx := context.Background()

	// The ZIP container adds a fixed overhead per blob, so size the limit
	// to fit exactly two of the blobs below
	const blobPayloadSize = 4096

	store, err := disk.New(t.TempDir(), 2*(blobPayloadSize+1024))
	require.NoError(t, err)

	payload := func(filler byte) []byte {
		return bytes.Repeat([]byte{filler}, blobPayloadSize)
	}

	// Eviction shouldn't occur if blobs fit the budget
	require.NoError(t, store.Put(ctx, "first", "image/jpeg", bytes.NewReader(payload('a'))))
	require.NoError(t, store.Put(ctx, "second", "image/jpeg", bytes.NewReader(payload('b'))))

	exists, err := store.Exists(ctx, "first")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = store.Exists(ctx, "second")
	require.NoError(t, err)
	require.True(t, exists)

	// Eviction should occur for the oldest blob if the budget is violated
	require.NoError(t, store.Put(ctx, "third", "image/jpeg", bytes.NewReader(payload('c'))))

	exists, err = store.Exists(ctx, "first")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = store.Exists(ctx, "third")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestSecure(t *testing.T) {
	ctx := context.Background()

	storeDir := t.TempDir()
	store, err := disk.New(storeDir, 1*1024*1024)
	require.NoError(t, err)

	// Ensure that insecure keys are percent-encoded
	require.NoError(t, store.Put(ctx, "../../../../../etc/passwd", "text/plain",
		bytes.NewReader([]byte("doesn't matter"))))

	dirEntries, err := os.ReadDir(storeDir)
	require.NoError(t, err)

	var dirEntryNames []string

	for _, entry := range dirEntries {
		dirEntryNames = append(dirEntryNames, entry.Name())
	}

	require.Equal(t, []string{"%2e%2e%2f%2e%2e%2f%2e%2e%2f%2e%2e%2f%2e%2e%2fetc%2fpasswd"}, dirEntryNames)
}
