// Package s3 provides an S3 implementation of the blobstore.Store interface
// and a DynamoDB-backed partition ledger.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("runs/2010-11/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	ledger := s3.NewDDBLedger(dynamodb.NewFromConfig(cfg), "relterm-partitions")
//
// # Features
//
//   - Range reads for streaming corpus files
//   - Multipart uploads for partition outputs
//   - Automatic pagination for listing
//   - Conditional writes for idempotent partition completion records
package s3
