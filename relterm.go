package relterm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/hupe1980/relterm/blobstore"
	"github.com/hupe1980/relterm/corpus"
	"github.com/hupe1980/relterm/internal/resource"
	"github.com/hupe1980/relterm/matrix"
	"github.com/hupe1980/relterm/partition"
	"github.com/hupe1980/relterm/similarity"
	"github.com/hupe1980/relterm/vocab"
)

// ctxCheckInterval is how many base words are ranked between context checks.
const ctxCheckInterval = 256

// Engine builds co-occurrence matrices and writes related-term rankings.
type Engine struct {
	opts   options
	rc     *resource.Controller
	logger *Logger
}

// New creates an engine.
func New(opts ...Option) (*Engine, error) {
	o := applyOptions(opts)

	switch {
	case o.k <= 0:
		return nil, ErrInvalidK
	case o.radius <= 0:
		return nil, ErrInvalidRadius
	case o.workers <= 0:
		return nil, ErrInvalidWorkers
	case o.maxRank < 0:
		return nil, ErrInvalidMaxRank
	case o.partitions <= 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidPartitions, o.partitions)
	}

	return &Engine{
		opts: o,
		rc: resource.NewController(resource.Config{
			Workers:            int64(o.workers),
			IOLimitBytesPerSec: o.ioLimit,
		}),
		logger: o.logger.WithRunID(o.runID).WithPolicy(o.policy.String()),
	}, nil
}

// RunID returns the run id.
func (e *Engine) RunID() string {
	return e.opts.runID
}

// Streams opens one corpus stream per blob name, throttled by the IO limit.
func (e *Engine) Streams(store blobstore.Store, names []string) []*corpus.Stream {
	return corpus.Streams(store, names, corpus.WithController(e.rc))
}

// Build builds the matrix over v from streams, then applies the configured
// normalization and rank filter and freezes it.
func (e *Engine) Build(ctx context.Context, v *vocab.Vocabulary, streams []*corpus.Stream) (*matrix.Matrix, error) {
	e.logger.LogDiagnostics(ctx, v.Diagnostics())

	start := time.Now()
	var lines atomic.Int64
	m, err := matrix.Build(ctx, v.Words(), streams, matrix.BuildOptions{
		Workers: e.opts.workers,
		OnSource: func(name string, n int, elapsed time.Duration) {
			lines.Add(int64(n))
			e.logger.LogSource(ctx, name, n, elapsed)
		},
	})
	elapsed := time.Since(start)
	e.opts.metricsCollector.RecordPhase("build", elapsed)
	if err != nil {
		e.opts.metricsCollector.RecordBuild(len(streams), 0, 0, elapsed, err)
		e.logger.LogBuild(ctx, v.Len(), 0, 0, elapsed, err)
		return nil, err
	}

	if e.opts.normalize {
		if err := e.phase(ctx, "normalize", m.Normalize); err != nil {
			return nil, err
		}
	}
	if e.opts.maxRank > 0 {
		if err := e.phase(ctx, "filter", func() error { return m.FilterRank(e.opts.maxRank) }); err != nil {
			return nil, err
		}
	}
	m.Freeze()

	total := int(lines.Load())
	e.opts.metricsCollector.RecordBuild(len(streams), total, m.Cells(), time.Since(start), nil)
	e.logger.LogBuild(ctx, m.Len(), total, m.Cells(), time.Since(start), nil)
	return m, nil
}

func (e *Engine) phase(ctx context.Context, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	e.opts.metricsCollector.RecordPhase(name, elapsed)
	e.logger.LogPhase(ctx, name, elapsed, err)
	return err
}

// WriteRanked ranks every vocabulary word of m under the configured policy
// into w, one line per word with at least one related word, in ascending
// word order. It returns the number of lines written. m is frozen if it is
// not already.
func (e *Engine) WriteRanked(ctx context.Context, m *matrix.Matrix, w io.Writer) (int, error) {
	if !m.Frozen() {
		m.Freeze()
	}

	bw := bufio.NewWriter(w)
	var lines int
	err := e.phase(ctx, "rank", func() error {
		var err error
		lines, err = e.rankRange(ctx, m, partition.Range{Start: 0, End: m.Len()}, bw)
		if err != nil {
			return err
		}
		return bw.Flush()
	})
	return lines, err
}

// RunPartitioned splits the vocabulary of m into the configured number of
// partitions and ranks each into its own output OutputName(prefix, i) in
// store. Partitions run on the worker pool; a failing partition does not
// stop the others. The report covers every partition; if any failed, the
// error is a *PartitionError.
func (e *Engine) RunPartitioned(ctx context.Context, m *matrix.Matrix, store blobstore.Store, prefix string) (partition.Report, error) {
	if !m.Frozen() {
		m.Freeze()
	}

	ranges, err := partition.Split(m.Len(), e.opts.partitions)
	if err != nil {
		return partition.Report{}, err
	}

	opts := []partition.Option{
		partition.WithController(e.rc),
		partition.WithRunID(e.opts.runID),
		partition.WithLogger(e.logger.Logger),
		partition.WithObserver(func(st partition.Status) {
			e.opts.metricsCollector.RecordPartition(st.Range.Index, st.Lines, st.Elapsed, st.Err)
			e.logger.LogPartition(ctx, st)
		}),
	}
	if e.opts.ledger != nil {
		opts = append(opts, partition.WithLedger(e.opts.ledger, e.opts.runID))
	}

	start := time.Now()
	report, err := partition.NewScheduler(store, opts...).Run(ctx, ranges, prefix,
		func(ctx context.Context, r partition.Range, w io.Writer) (int, error) {
			return e.rankRange(ctx, m, r, w)
		})
	elapsed := time.Since(start)

	e.opts.metricsCollector.RecordPhase("partitions", elapsed)
	e.logger.LogRun(ctx, report, elapsed)
	return report, translateError(err, report)
}

// rankRange writes the ranked lines of the words with ids in r.
func (e *Engine) rankRange(ctx context.Context, m *matrix.Matrix, r partition.Range, w io.Writer) (int, error) {
	start := time.Now()
	ranker := similarity.NewRanker(m, e.opts.policy,
		similarity.WithK(e.opts.k),
		similarity.WithRadius(e.opts.radius))

	lines := 0
	for id := r.Start; id < r.End; id++ {
		if (id-r.Start)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return lines, err
			}
		}
		res, ok := ranker.RankID(uint32(id))
		if !ok {
			continue
		}
		if _, err := io.WriteString(w, res.Line()+"\n"); err != nil {
			return lines, err
		}
		lines++
	}

	e.opts.metricsCollector.RecordRank(r.Len(), lines, time.Since(start))
	return lines, nil
}
