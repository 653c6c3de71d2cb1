package relterm

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    phaseHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordPhase(phase string, duration time.Duration) {
//	    p.phaseHistogram.WithLabelValues(phase).Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordBuild is called after each matrix build.
	// lines is the number of corpus lines read, cells the number of stored
	// cells, err is nil if successful.
	RecordBuild(sources, lines, cells int, duration time.Duration, err error)

	// RecordPhase is called after each timed phase ("build", "normalize",
	// "filter", "rank", "partitions").
	RecordPhase(phase string, duration time.Duration)

	// RecordPartition is called as each partition finishes.
	RecordPartition(index, lines int, duration time.Duration, err error)

	// RecordRank is called after ranking a word range into one stream.
	// words is the number of base words visited, lines the number written.
	RecordRank(words, lines int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPhase(string, time.Duration)               {}
func (NoopMetricsCollector) RecordPartition(int, int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordRank(int, int, time.Duration)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildLines      atomic.Int64
	BuildTotalNanos atomic.Int64
	PhaseCount      atomic.Int64
	PhaseTotalNanos atomic.Int64
	PartitionCount  atomic.Int64
	PartitionErrors atomic.Int64
	PartitionLines  atomic.Int64
	RankCount       atomic.Int64
	RankWords       atomic.Int64
	RankLines       atomic.Int64
	RankTotalNanos  atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(sources, lines, cells int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildLines.Add(int64(lines))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordPhase implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPhase(phase string, duration time.Duration) {
	b.PhaseCount.Add(1)
	b.PhaseTotalNanos.Add(duration.Nanoseconds())
}

// RecordPartition implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPartition(index, lines int, duration time.Duration, err error) {
	b.PartitionCount.Add(1)
	b.PartitionLines.Add(int64(lines))
	if err != nil {
		b.PartitionErrors.Add(1)
	}
}

// RecordRank implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRank(words, lines int, duration time.Duration) {
	b.RankCount.Add(1)
	b.RankWords.Add(int64(words))
	b.RankLines.Add(int64(lines))
	b.RankTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:      b.BuildCount.Load(),
		BuildErrors:     b.BuildErrors.Load(),
		BuildLines:      b.BuildLines.Load(),
		BuildAvgNanos:   avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		PhaseCount:      b.PhaseCount.Load(),
		PartitionCount:  b.PartitionCount.Load(),
		PartitionErrors: b.PartitionErrors.Load(),
		PartitionLines:  b.PartitionLines.Load(),
		RankCount:       b.RankCount.Load(),
		RankWords:       b.RankWords.Load(),
		RankLines:       b.RankLines.Load(),
		RankAvgNanos:    avg(b.RankTotalNanos.Load(), b.RankCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount      int64
	BuildErrors     int64
	BuildLines      int64
	BuildAvgNanos   int64
	PhaseCount      int64
	PartitionCount  int64
	PartitionErrors int64
	PartitionLines  int64
	RankCount       int64
	RankWords       int64
	RankLines       int64
	RankAvgNanos    int64
}
