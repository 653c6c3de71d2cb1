package matrix

import "errors"

var (
	// ErrFrozen is returned by every mutator of a frozen matrix.
	ErrFrozen = errors.New("matrix: frozen")

	// ErrInvalidRank is returned by FilterRank for a non-positive rank.
	ErrInvalidRank = errors.New("matrix: max rank must be positive")

	// ErrVocabularyMismatch is returned when merging matrices built over
	// different vocabularies.
	ErrVocabularyMismatch = errors.New("matrix: vocabulary mismatch")

	// ErrNoMatrices is returned by Merge without arguments.
	ErrNoMatrices = errors.New("matrix: nothing to merge")
)
