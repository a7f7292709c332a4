package disk

import (
	"io/fs"
	"os"
)

// Reader keeps the underlying blob file open for as long as the caller
// reads from the entry's blob.
type Reader struct {
	blobFile   *os.File
	blobReader fs.File
}

func (reader *Reader) Read(p []byte) (int, error) {
	return reader.blobReader.Read(p)
}

func (reader *Reader) Close() error {
	if err := reader.blobReader.Close(); err != nil {
		return err
	}

	return reader.blobFile.Close()
}
