// Package blobstore provides storage abstraction for corpus inputs and ranked
// outputs.
//
// Store is the interface for reading and writing named blobs.
// Implementations must be safe for concurrent use; a single WritableBlob is
// owned by exactly one writer.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap reads and atomic rename-on-close writes
//   - MemoryStore: In-memory store for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible object stores
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
