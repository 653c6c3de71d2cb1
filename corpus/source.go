package corpus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/relterm/blobstore"
)

// Source is a named, re-openable byte stream.
type Source interface {
	// Name identifies the source in errors and logs. Its suffix selects
	// the decompression format.
	Name() string
	// Open returns a fresh reader positioned at the start of the source.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// SourceError reports a failure reading a source.
type SourceError struct {
	Source string
	Line   int // 1-based; 0 if the failure is not tied to a line
	Err    error
}

func (e *SourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("corpus: %s:%d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("corpus: %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// FileSource reads a file from the local file system.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s FileSource) Name() string { return s.Path }

// Open opens the file.
func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

// BlobSource reads a blob from a store.
type BlobSource struct {
	Store blobstore.Store
	Key   string
}

// Name returns the blob key.
func (s BlobSource) Name() string { return s.Key }

// Open opens the blob. Mappable blobs are read straight from memory, all
// others through a single ranged read.
func (s BlobSource) Open(ctx context.Context) (io.ReadCloser, error) {
	blob, err := s.Store.Open(ctx, s.Key)
	if err != nil {
		return nil, err
	}

	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err == nil {
			return &blobReader{Reader: bytes.NewReader(data), blob: blob}, nil
		}
	}

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		_ = blob.Close()
		return nil, err
	}
	return &blobReader{Reader: rc, body: rc, blob: blob}, nil
}

type blobReader struct {
	io.Reader
	body io.Closer
	blob blobstore.Blob
}

func (r *blobReader) Close() error {
	var err error
	if r.body != nil {
		err = r.body.Close()
	}
	if cerr := r.blob.Close(); err == nil {
		err = cerr
	}
	return err
}
