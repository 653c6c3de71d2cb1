package relterm

import (
	"errors"
	"fmt"

	"github.com/hupe1980/relterm/partition"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidRadius is returned when the neighborhood radius is not positive.
	ErrInvalidRadius = errors.New("radius must be positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("workers must be positive")

	// ErrInvalidMaxRank is returned when the rank filter bound is negative.
	ErrInvalidMaxRank = errors.New("max rank must not be negative")

	// ErrInvalidPartitions is returned when the partition count is not positive.
	ErrInvalidPartitions = partition.ErrInvalidPartitions
)

// PartitionError reports a partitioned run in which at least one partition
// failed. Index and Output name the first failure; the others are in the
// report returned alongside.
//
// The original underlying error can be accessed via errors.Unwrap.
type PartitionError struct {
	Index  int
	Output string
	Failed int
	Total  int
	cause  error
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("partition %d (%s) failed: %v (%d of %d partitions failed)",
		e.Index, e.Output, e.cause, e.Failed, e.Total)
}

func (e *PartitionError) Unwrap() error { return e.cause }

func translateError(err error, report partition.Report) error {
	if err == nil {
		return nil
	}

	var pe *partition.Error
	if errors.As(err, &pe) {
		return &PartitionError{
			Index:  pe.Index,
			Output: pe.Output,
			Failed: len(report.Failed()),
			Total:  len(report.Partitions),
			cause:  pe.Err,
		}
	}
	return err
}
