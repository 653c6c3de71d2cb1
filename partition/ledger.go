package partition

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/relterm/blobstore"
)

// Ledger records which partitions of a run have been committed.
type Ledger interface {
	// Completed reports whether partition index of runID was committed.
	Completed(ctx context.Context, runID string, index int) (bool, error)
	// Complete records that partition index of runID was committed to output.
	Complete(ctx context.Context, runID string, index int, output string) error
}

// MemoryLedger is an in-process Ledger.
type MemoryLedger struct {
	mu   sync.Mutex
	done map[string]string
}

var _ Ledger = (*MemoryLedger)(nil)

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{done: make(map[string]string)}
}

func memoryKey(runID string, index int) string {
	return fmt.Sprintf("%s/%d", runID, index)
}

// Completed implements Ledger.
func (l *MemoryLedger) Completed(_ context.Context, runID string, index int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.done[memoryKey(runID, index)]
	return ok, nil
}

// Complete implements Ledger.
func (l *MemoryLedger) Complete(_ context.Context, runID string, index int, output string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.done[memoryKey(runID, index)] = output
	return nil
}

// StoreLedger keeps one marker blob per committed partition in a store,
// named "<prefix><runID>/<index>.done" and holding the output name.
type StoreLedger struct {
	store  blobstore.Store
	prefix string
}

var _ Ledger = (*StoreLedger)(nil)

// NewStoreLedger creates a ledger that writes markers below prefix.
func NewStoreLedger(store blobstore.Store, prefix string) *StoreLedger {
	return &StoreLedger{store: store, prefix: prefix}
}

func (l *StoreLedger) marker(runID string, index int) string {
	return fmt.Sprintf("%s%s/%03d.done", l.prefix, runID, index)
}

// Completed implements Ledger.
func (l *StoreLedger) Completed(ctx context.Context, runID string, index int) (bool, error) {
	blob, err := l.store.Open(ctx, l.marker(runID, index))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, blob.Close()
}

// Complete implements Ledger.
func (l *StoreLedger) Complete(ctx context.Context, runID string, index int, output string) error {
	return l.store.Put(ctx, l.marker(runID, index), []byte(output))
}
