// Package testutil provides testing utilities for relterm.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random generator, synthetic vocabularies and corpora,
// and a brute-force co-occurrence oracle.
//
// # Random Corpus Generation
//
//	rng := testutil.NewRNG(seed)
//	words := rng.Words(50)
//	lines := rng.Corpus(words, 200, 12, 0.2)
//
// # Ground Truth
//
//	want := testutil.BruteCooccurrence(words, lines)
package testutil
