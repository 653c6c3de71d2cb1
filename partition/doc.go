// Package partition splits the vocabulary into contiguous word ranges and
// runs one worker per range.
//
// Every worker owns its output blob exclusively. The blob is committed when
// the worker's task succeeds and aborted when it fails, so a failed
// partition never leaves a partial file behind. Workers are bounded by the
// worker slots of a resource.Controller and joined by a barrier; a failing
// partition does not cancel its siblings.
//
// # Resuming
//
// With a Ledger, every committed partition is recorded under the run id.
// Running again with the same run id skips the recorded partitions:
//
//	s := partition.NewScheduler(store,
//	    partition.WithLedger(partition.NewStoreLedger(store, "_ledger/"), runID))
//	report, err := s.Run(ctx, ranges, "related.txt", task)
package partition
