package noop

import (
	"context"
	blobpkg "github.com/naieum/omni/internal/blob"
	"io"
)

// NoOp is a blob store that stores nothing, turning every cover-art
// request into a pass-through fetch.
type NoOp struct{}

func New() *NoOp {
	return &NoOp{}
}

func (noop *NoOp) Exists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (noop *NoOp) Get(_ context.Context, _ string) (io.ReadCloser, string, error) {
	return nil, "", blobpkg.ErrNotFound
}

func (noop *NoOp) Put(_ context.Context, _ string, _ string, blobReader io.Reader) error {
	_, err := io.Copy(io.Discard, blobReader)

	return err
}
