package relterm

import (
	"github.com/google/uuid"
	"github.com/hupe1980/relterm/internal/resource"
	"github.com/hupe1980/relterm/partition"
	"github.com/hupe1980/relterm/similarity"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector

	workers    int
	ioLimit    int64
	partitions int

	policy    similarity.Policy
	k         int
	radius    int
	normalize bool
	maxRank   int

	ledger partition.Ledger
	runID  string
}

// Option configures an Engine.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		workers:          resource.DefaultWorkers,
		partitions:       resource.DefaultWorkers,
		policy:           similarity.PolicyFrequency,
		k:                similarity.DefaultK,
		radius:           similarity.DefaultRadius,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	return o
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics hook. If nil is passed, metrics
// are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithWorkers sets the worker pool size shared by sharded builds and
// partition workers. Defaults to 2.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithIOLimit throttles corpus reads to bytesPerSec. Zero means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithPartitions sets the number of word partitions of RunPartitioned.
// Defaults to the default worker count.
func WithPartitions(n int) Option {
	return func(o *options) {
		o.partitions = n
	}
}

// WithPolicy sets the similarity policy. Defaults to frequency ranking.
func WithPolicy(p similarity.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithK sets the number of related words per base word. Defaults to 10.
func WithK(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// WithRadius sets the neighborhood radius of the distance policy.
// Defaults to 2.
func WithRadius(r int) Option {
	return func(o *options) {
		o.radius = r
	}
}

// WithNormalize enables count normalization after the build.
//
// Normalization divides in integers and therefore zeroes nearly every
// cell. It is kept for parity with historical outputs.
func WithNormalize(enabled bool) Option {
	return func(o *options) {
		o.normalize = enabled
	}
}

// WithMaxRank keeps only the top maxRank cells of every row after the
// build. Zero disables the filter.
func WithMaxRank(maxRank int) Option {
	return func(o *options) {
		o.maxRank = maxRank
	}
}

// WithLedger records committed partitions so that a rerun with the same
// run id resumes where the previous one failed.
func WithLedger(l partition.Ledger) Option {
	return func(o *options) {
		o.ledger = l
	}
}

// WithRunID sets the run id. Defaults to a random UUID.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}
