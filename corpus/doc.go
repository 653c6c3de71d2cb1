// Package corpus reads whitespace-tokenized corpus files line by line.
//
// A corpus is one or more sources. Each source is a blob in a
// blobstore.Store (a local directory, S3 or MinIO) or a plain file. Sources
// whose name ends in ".gz", ".zst" or ".lz4" are decompressed transparently.
//
// # Usage
//
//	store := blobstore.NewLocalStore("/data/metaoptimize")
//	names, err := corpus.Discover(ctx, store, "", []string{"*.txt.gz"}, nil)
//	if err != nil {
//	    return err
//	}
//	for _, s := range corpus.Streams(store, names) {
//	    lines, err := s.Each(ctx, func(tokens []string) error {
//	        return m.AddLine(tokens)
//	    })
//	    ...
//	}
//
// Local blobs are memory mapped and advised for sequential access, so a
// multi-gigabyte corpus is paged in by the kernel rather than copied.
package corpus
