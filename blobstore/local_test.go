package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	name := "out/related-000.txt"
	data := []byte("cat sat the\nsat cat the\n")

	w, err := store.Create(ctx, name)
	require.NoError(t, err)

	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	// Not visible before commit.
	_, err = os.Stat(filepath.Join(tmpDir, "out", "related-000.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, w.Close())
	require.ErrorIs(t, w.Close(), os.ErrClosed)

	blob, err := store.Open(ctx, name)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 3)
	n, err = blob.ReadAt(ctx, buf, 4)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "sat", string(buf))

	rc, err := blob.ReadRange(ctx, 12, 3)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "sat", string(content))

	mapped, ok := blob.(Mappable)
	require.True(t, ok)
	b, err := mapped.Bytes()
	require.NoError(t, err)
	assert.Equal(t, data, b)
}

func TestLocalStore_Abort(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	w, err := store.Create(ctx, "partial.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("half a line"))
	require.NoError(t, err)
	require.NoError(t, w.Abort())

	_, err = store.Open(ctx, "partial.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStore_ListPutDelete(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "corpus/b.txt", []byte("b")))
	require.NoError(t, store.Put(ctx, "corpus/a.txt", []byte("a")))
	require.NoError(t, store.Put(ctx, "vocab.txt", []byte("1 a")))

	names, err := store.List(ctx, "corpus/")
	require.NoError(t, err)
	assert.Equal(t, []string{"corpus/a.txt", "corpus/b.txt"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, store.Delete(ctx, "corpus/a.txt"))
	require.NoError(t, store.Delete(ctx, "corpus/a.txt"))

	names, err = store.List(ctx, "corpus/")
	require.NoError(t, err)
	assert.Equal(t, []string{"corpus/b.txt"}, names)
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_OpenEmpty(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "empty.txt", nil))

	blob, err := store.Open(ctx, "empty.txt")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(0), blob.Size())

	rc, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Empty(t, content)
}
