// Package relterm finds related terms in a text corpus.
//
// Relterm builds a word co-occurrence matrix over a vocabulary and ranks,
// for every vocabulary word, the words most related to it. Relatedness is
// chosen by a similarity policy:
//
//   - Frequency ranks the words co-occurring most often with the base word.
//   - Distance ranks the words in the base word's co-occurrence neighborhood
//     by euclidean distance between their rows.
//   - DotProduct ranks every other word by the dot product of the rows.
//
// # Quick Start
//
//	ctx := context.Background()
//	v, _ := vocab.LoadFile("vocab.txt")
//	store := blobstore.NewLocalStore("./corpus")
//
//	eng, _ := relterm.New(relterm.WithPolicy(similarity.PolicyDistance))
//	m, _ := eng.Build(ctx, v, eng.Streams(store, []string{"part-0.gz", "part-1.gz"}))
//
//	// One output per partition: related-000.txt, related-001.txt, ...
//	report, err := eng.RunPartitioned(ctx, m, blobstore.NewLocalStore("./out"), "related.txt")
//
// # Output
//
// Each output line is the base word followed by its related words, best
// first, separated by single spaces. Words without related words produce no
// line.
//
// # Partitioned Runs
//
// RunPartitioned splits the vocabulary into contiguous ranges and ranks each
// on the engine's worker pool. A failed partition does not stop the others;
// its output is discarded and the run returns a *PartitionError. With a
// ledger configured, rerunning with the same run id skips the partitions
// that already committed.
//
// # Storage
//
// Corpora and outputs live in a blobstore.Store:
//
//	blobstore.NewLocalStore(dir) // local filesystem
//	s3.New(ctx, bucket)          // Amazon S3
//	minio.Connect(...)           // MinIO or other S3-compatible services
//
// Compressed corpora (.gz, .zst, .lz4) are decompressed transparently.
package relterm
