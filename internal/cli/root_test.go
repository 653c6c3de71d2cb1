package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/hupe1980/relterm/blobstore"
	"github.com/hupe1980/relterm/compress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore keeps a copy of everything written to the blobs it creates.
type recordingStore struct {
	blobstore.Store
	blobs map[string]*recordingBlob
}

type recordingBlob struct {
	blobstore.WritableBlob
	data    bytes.Buffer
	aborted bool
}

func newRecordingStore() *recordingStore {
	return &recordingStore{Store: blobstore.NewMemoryStore(), blobs: map[string]*recordingBlob{}}
}

func (s *recordingStore) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	blob, err := s.Store.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	rb := &recordingBlob{WritableBlob: blob}
	s.blobs[name] = rb
	return rb, nil
}

func (b *recordingBlob) Write(p []byte) (int, error) {
	b.data.Write(p)
	return b.WritableBlob.Write(p)
}

func (b *recordingBlob) Abort() error {
	b.aborted = true
	return b.WritableBlob.Abort()
}

func TestWriteBlob(t *testing.T) {
	for _, name := range []string{"out.txt", "out.txt.gz", "out.txt.zst", "out.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			store := newRecordingStore()
			err := writeBlob(context.Background(), store, name, func(w io.Writer) error {
				_, err := io.WriteString(w, "cat sat\n")
				return err
			})
			require.NoError(t, err)
			assert.False(t, store.blobs[name].aborted)

			r, err := compress.NewReader(bytes.NewReader(store.blobs[name].data.Bytes()), compress.FormatOf(name))
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "cat sat\n", string(data))
		})
	}
}

func TestWriteBlob_FailureClosesCompressor(t *testing.T) {
	store := newRecordingStore()
	boom := errors.New("boom")

	err := writeBlob(context.Background(), store, "out.txt.gz", func(io.Writer) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	rb := store.blobs["out.txt.gz"]
	require.NotNil(t, rb)
	assert.True(t, rb.aborted)

	// A closed gzip writer always emits a header and trailer.
	r, err := compress.NewReader(bytes.NewReader(rb.data.Bytes()), compress.Gzip)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = store.Open(context.Background(), "out.txt.gz")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
