package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	w, err := store.Create(ctx, "run/out-001.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("a b c\n"))
	require.NoError(t, err)

	names, err := store.List(ctx, "run/")
	require.NoError(t, err)
	assert.Empty(t, names, "uncommitted blobs must not be listed")

	require.NoError(t, w.Close())

	blob, err := store.Open(ctx, "run/out-001.txt")
	require.NoError(t, err)
	rc, err := blob.ReadRange(ctx, 2, 100)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "b c\n", string(data))

	aborted, err := store.Create(ctx, "run/out-002.txt")
	require.NoError(t, err)
	_, err = aborted.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, aborted.Abort())

	names, err = store.List(ctx, "run/")
	require.NoError(t, err)
	assert.Equal(t, []string{"run/out-001.txt"}, names)

	require.NoError(t, store.Delete(ctx, "run/out-001.txt"))
	_, err = store.Open(ctx, "run/out-001.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}
