package partition

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hupe1980/relterm/blobstore"
	"github.com/hupe1980/relterm/compress"
	"github.com/hupe1980/relterm/internal/resource"
	"golang.org/x/sync/errgroup"
)

// Task writes the output of one partition and returns the number of lines
// written. It should honour ctx between items.
type Task func(ctx context.Context, r Range, w io.Writer) (int, error)

// State is the outcome of one partition.
type State int

const (
	// StatePending means the partition has not finished.
	StatePending State = iota
	// StateDone means the output was committed.
	StateDone
	// StateSkipped means the ledger already recorded the partition.
	StateSkipped
	// StateFailed means the output was aborted.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateDone:
		return "done"
	case StateSkipped:
		return "skipped"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is the outcome of one partition.
type Status struct {
	Range   Range
	Output  string
	State   State
	Lines   int
	Elapsed time.Duration
	Err     error
}

// Report collects the status of every partition of a run, by index.
type Report struct {
	RunID      string
	Partitions []Status
}

// Failed returns the failed partitions in index order.
func (r Report) Failed() []Status {
	var failed []Status
	for _, s := range r.Partitions {
		if s.State == StateFailed {
			failed = append(failed, s)
		}
	}
	return failed
}

// Lines returns the total number of lines written.
func (r Report) Lines() int {
	n := 0
	for _, s := range r.Partitions {
		n += s.Lines
	}
	return n
}

// Error reports the failure of one partition.
type Error struct {
	Index  int
	Output string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("partition %d (%s): %v", e.Index, e.Output, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithController bounds the workers by the controller's worker slots.
func WithController(rc *resource.Controller) Option {
	return func(s *Scheduler) {
		s.rc = rc
	}
}

// WithLedger records committed partitions under runID and skips those
// already recorded.
func WithLedger(l Ledger, runID string) Option {
	return func(s *Scheduler) {
		s.ledger = l
		s.runID = runID
	}
}

// WithRunID tags the run. It is the ledger key and is reported in Report.
func WithRunID(runID string) Option {
	return func(s *Scheduler) {
		s.runID = runID
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// WithObserver registers fn to be called as each partition finishes.
// fn may be called concurrently.
func WithObserver(fn func(Status)) Option {
	return func(s *Scheduler) {
		s.observe = fn
	}
}

// Scheduler runs partition tasks against a store.
type Scheduler struct {
	store   blobstore.Store
	rc      *resource.Controller
	ledger  Ledger
	runID   string
	logger  *slog.Logger
	observe func(Status)
}

// NewScheduler creates a scheduler writing outputs to store. Without
// WithController it runs resource.DefaultWorkers workers at a time.
func NewScheduler(store blobstore.Store, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rc == nil {
		s.rc = resource.NewController(resource.Config{})
	}
	return s
}

// Run runs task once per range, writing to OutputName(prefix, r.Index).
// All partitions run to completion; afterwards the first error, if any, is
// returned as *Error alongside the full report.
func (s *Scheduler) Run(ctx context.Context, ranges []Range, prefix string, task Task) (Report, error) {
	report := Report{
		RunID:      s.runID,
		Partitions: make([]Status, len(ranges)),
	}

	var g errgroup.Group
	for i, r := range ranges {
		report.Partitions[i] = Status{Range: r, Output: OutputName(prefix, r.Index)}
		st := &report.Partitions[i]

		g.Go(func() error {
			start := time.Now()
			s.runOne(ctx, st, task)
			st.Elapsed = time.Since(start)

			s.logger.Debug("partition finished",
				slog.Int("partition", r.Index),
				slog.String("output", st.Output),
				slog.String("state", st.State.String()),
				slog.Int("lines", st.Lines),
				slog.Duration("elapsed", st.Elapsed))
			if s.observe != nil {
				s.observe(*st)
			}

			if st.Err != nil {
				return &Error{Index: r.Index, Output: st.Output, Err: st.Err}
			}
			return nil
		})
	}

	err := g.Wait()
	return report, err
}

func (s *Scheduler) runOne(ctx context.Context, st *Status, task Task) {
	fail := func(err error) {
		st.State = StateFailed
		st.Err = err
	}

	if err := s.rc.AcquireWorker(ctx); err != nil {
		fail(err)
		return
	}
	defer s.rc.ReleaseWorker()

	if s.ledger != nil {
		done, err := s.ledger.Completed(ctx, s.runID, st.Range.Index)
		if err != nil {
			fail(fmt.Errorf("ledger: %w", err))
			return
		}
		if done {
			st.State = StateSkipped
			return
		}
	}

	lines, err := s.write(ctx, st.Output, st.Range, task)
	if err != nil {
		fail(err)
		return
	}
	st.Lines = lines

	if s.ledger != nil {
		if err := s.ledger.Complete(ctx, s.runID, st.Range.Index, st.Output); err != nil {
			fail(fmt.Errorf("ledger: %w", err))
			return
		}
	}
	st.State = StateDone
}

// write runs task into a fresh blob and commits it, or aborts it on failure.
func (s *Scheduler) write(ctx context.Context, name string, r Range, task Task) (int, error) {
	blob, err := s.store.Create(ctx, name)
	if err != nil {
		return 0, err
	}

	lines, err := func() (int, error) {
		cw, err := compress.NewWriter(blob, compress.FormatOf(name))
		if err != nil {
			return 0, err
		}
		bw := bufio.NewWriterSize(cw, 256*1024)

		// The compressor is closed on every path so encoder goroutines
		// exit before the blob is aborted.
		lines, err := task(ctx, r, bw)
		if err == nil {
			err = bw.Flush()
		}
		if cerr := cw.Close(); err == nil {
			err = cerr
		}
		return lines, err
	}()
	if err != nil {
		_ = blob.Abort()
		return 0, err
	}

	if err := blob.Close(); err != nil {
		return 0, err
	}
	return lines, nil
}
