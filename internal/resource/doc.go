// Package resource bounds the concurrency and IO of a run.
//
// The Controller manages two resource types:
//
//   - Workers: a weighted semaphore of worker slots shared by partition
//     workers and sharded matrix builds
//   - IO: a token bucket that throttles corpus reads
//
// # Usage
//
//	rc := resource.NewController(resource.Config{
//	    Workers:            4,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
//	reader := resource.NewRateLimitedReader(ctx, file, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully. Worker acquisition and IO
// become no-ops, so limiting stays optional without nil checks everywhere.
package resource
