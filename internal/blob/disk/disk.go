package disk

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	blobpkg "github.com/naieum/omni/internal/blob"
	"github.com/naieum/omni/internal/blob/disk/percentencoding"
	"github.com/samber/lo"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

const (
	fileInfo = "info.json"
	fileBlob = "blob.bin"
)

// Disk is a blob store backed by a single directory: each blob is a ZIP
// container holding the blob's info and its bytes. When the directory
// grows past limitBytes, the least recently used blobs are evicted.
type Disk struct {
	dir        string
	limitBytes uint64
	mtx        sync.Mutex
}

func New(dir string, limitBytes uint64) (*Disk, error) {
	disk := &Disk{
		dir:        dir,
		limitBytes: limitBytes,
	}

	// Pre-create the disk's directory if not created yet
	if err := os.MkdirAll(dir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}

	return disk, nil
}

func (disk *Disk) Exists(_ context.Context, key string) (bool, error) {
	disk.mtx.Lock()
	defer disk.mtx.Unlock()

	if _, err := os.Stat(disk.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (disk *Disk) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	disk.mtx.Lock()
	defer disk.mtx.Unlock()

	blobFile, err := os.Open(disk.path(key))
	if err != nil {
		// Convert the error for consumer's convenience
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", blobpkg.ErrNotFound
		}

		return nil, "", fmt.Errorf("failed to open blob %q: %w", key, err)
	}

	// Update the access and modification times so that eviction would work correctly
	now := time.Now()

	if err := os.Chtimes(disk.path(key), now, now); err != nil {
		_ = blobFile.Close()

		if errors.Is(err, os.ErrNotExist) {
			return nil, "", blobpkg.ErrNotFound
		}

		return nil, "", fmt.Errorf("failed to set access and modification times "+
			"for the blob %q: %w", key, err)
	}

	blobReader, info, err := disk.getInner(blobFile)
	if err != nil {
		_ = blobFile.Close()

		return nil, "", fmt.Errorf("failed to read blob %q: %w", key, err)
	}

	return &Reader{
		blobFile:   blobFile,
		blobReader: blobReader,
	}, info.ContentType, nil
}

func (disk *Disk) Put(_ context.Context, key string, contentType string, blobReader io.Reader) error {
	tmpFile, err := os.CreateTemp("", "omni-blob-put-*")
	if err != nil {
		return fmt.Errorf("failed to create a temporary file for the blob %q: %w",
			key, err)
	}

	// Write the blob as a ZIP file
	zipWriter := zip.NewWriter(tmpFile)

	// Write blob's info
	if err := writeInfo(zipWriter, Info{
		Key:         key,
		ContentType: contentType,
	}); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())

		return fmt.Errorf("failed to write %q file to the blob %q: %w",
			fileInfo, key, err)
	}

	// Acquire a handle to the blob's underlying bytes
	blobWriter, err := zipWriter.CreateHeader(&zip.FileHeader{
		Name:   fileBlob,
		Method: zip.Store,
	})
	if err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())

		return fmt.Errorf("failed to write %q file to the blob %q: %w",
			fileBlob, key, err)
	}

	if _, err := io.Copy(blobWriter, blobReader); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())

		return fmt.Errorf("failed to write %q file to the blob %q: %w",
			fileBlob, key, err)
	}

	if err := zipWriter.Close(); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())

		return fmt.Errorf("failed to finalize blob %q: %w", key, err)
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name())

		return fmt.Errorf("failed to close blob %q: %w", key, err)
	}

	if err := disk.accept(key, tmpFile.Name()); err != nil {
		_ = os.Remove(tmpFile.Name())

		return fmt.Errorf("failed to accept blob %q: %w", key, err)
	}

	return nil
}

func (disk *Disk) path(key string) string {
	// Percent-encode the key so that keys containing path separators
	// (which all cover-art keys do) map to a single safe filename
	return filepath.Join(disk.dir, percentencoding.Encode(key))
}

func (disk *Disk) getInner(blobFile *os.File) (fs.File, Info, error) {
	// Open the blob as a ZIP file
	fi, err := blobFile.Stat()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, Info{}, blobpkg.ErrNotFound
		}

		return nil, Info{}, fmt.Errorf("stat(2) failed: %w", err)
	}

	zipReader, err := zip.NewReader(blobFile, fi.Size())
	if err != nil {
		return nil, Info{}, fmt.Errorf("failed to open as a ZIP file: %w", err)
	}

	// Read blob's info
	info, err := readInfo(zipReader)
	if err != nil {
		return nil, Info{}, fmt.Errorf("failed to read from ZIP file: %w", err)
	}

	// Acquire a handle to the blob's underlying bytes
	blobReader, err := zipReader.Open(fileBlob)
	if err != nil {
		return nil, Info{}, fmt.Errorf("failed to read from ZIP file: %w", err)
	}

	return blobReader, *info, nil
}

func (disk *Disk) accept(key string, path string) error {
	disk.mtx.Lock()
	defer disk.mtx.Unlock()

	// Prepare for accepting the new blob
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	if err := disk.evict(uint64(fi.Size())); err != nil {
		return err
	}

	// Accept the new blob; concurrent writes to the same key race here,
	// which is safe because rename(2) is atomic and both writers carry
	// identical content for a given key
	return os.Rename(path, disk.path(key))
}

func (disk *Disk) evict(needBytes uint64) error {
	// Does it even make sense to evict anything?
	if needBytes > disk.limitBytes {
		return fmt.Errorf("cannot accept blob as its size of %d bytes"+
			" is larger than the disk limit of %d bytes", needBytes, disk.limitBytes)
	}

	// Collect a slice of blobs, sorted by modification time, ascending order
	type Entry struct {
		Name    string
		Size    uint64
		ModTime time.Time
	}

	var entries []*Entry

	dirEntries, err := os.ReadDir(disk.dir)
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		fi, err := entry.Info()
		if err != nil {
			return err
		}

		entries = append(entries, &Entry{
			Name:    entry.Name(),
			Size:    uint64(fi.Size()),
			ModTime: fi.ModTime(),
		})
	}

	slices.SortFunc(entries, func(a, b *Entry) int {
		return a.ModTime.Compare(b.ModTime)
	})

	usedBytes := lo.SumBy(entries, func(entry *Entry) uint64 {
		return entry.Size
	})

	// Evict the oldest blobs to fit the new one
	for _, entry := range entries {
		if (usedBytes + needBytes) <= disk.limitBytes {
			return nil
		}

		if err := os.Remove(filepath.Join(disk.dir, entry.Name)); err != nil {
			return err
		}

		usedBytes -= entry.Size
	}

	return nil
}
