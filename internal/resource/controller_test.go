package resource

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Defaults(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, DefaultWorkers, c.Workers())

	var nilc *Controller
	assert.Equal(t, DefaultWorkers, nilc.Workers())
}

func TestController_Workers(t *testing.T) {
	c := NewController(Config{Workers: 2})

	require.NoError(t, c.AcquireWorker(t.Context()))
	require.NoError(t, c.AcquireWorker(t.Context()))

	// Both slots busy
	assert.False(t, c.TryAcquireWorker())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireWorker(ctx), context.DeadlineExceeded)

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())
}

func TestController_NilChecks(t *testing.T) {
	var c *Controller
	assert.NoError(t, c.AcquireWorker(context.Background()))
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker() // Should not panic
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<30))
	assert.True(t, c.TryAcquireIO(1<<30))
}

func TestController_IO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 100})

	// The bucket starts full.
	assert.True(t, c.TryAcquireIO(100))
	assert.False(t, c.TryAcquireIO(100))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireIO(ctx, 100))
}

func TestController_AcquireIOLargerThanBurst(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	// Three bursts; the first is free, the rest must not error.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.AcquireIO(ctx, 3<<20))
}

func TestRateLimitedReader(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	r := NewRateLimitedReader(context.Background(), strings.NewReader("the cat sat"), c)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "the cat sat", string(data))
}

func TestRateLimitedReader_Canceled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1})
	require.True(t, c.TryAcquireIO(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRateLimitedReader(ctx, strings.NewReader("abc"), c)
	_, err := io.ReadAll(r)
	assert.Error(t, err)
}

func TestRateLimitedWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewRateLimitedWriter(context.Background(), &buf, nil)

	n, err := w.Write([]byte("cat sat the\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, "cat sat the\n", buf.String())
}
