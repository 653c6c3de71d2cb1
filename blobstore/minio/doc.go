// Package minio provides a blobstore.Store backed by MinIO or any other
// S3-compatible service reachable through the MinIO client (Ceph, SeaweedFS,
// Garage). It is the self-hosted alternative to the s3 package for reading
// corpora and writing partition outputs.
//
// # Basic Usage
//
//	store, err := minio.Connect(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	}, "corpora", minio.WithPrefix("metaoptimize/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := eng.RunPartitioned(ctx, m, store, "related.txt.gz")
//
// Outputs are streamed as multipart uploads and labeled with a content type
// derived from their compression suffix.
package minio
