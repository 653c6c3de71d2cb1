// Package matrix implements the sparse word co-occurrence matrix.
//
// Every word and co-occurring token is interned once in a Dict. Vocabulary
// words own the ids [0, V) in ascending lexicographic order, so a row exists
// exactly for ids below V; every other token is interned on demand with an
// id of V or more. Rows are sparse maps from token id to count.
//
// # Lifecycle
//
//	m := matrix.New(vocab.Words())
//	for _, s := range streams {
//	    if _, err := m.AddStream(ctx, s); err != nil {
//	        return err
//	    }
//	}
//	_ = m.Normalize()     // optional
//	_ = m.FilterRank(100) // optional
//	m.Freeze()
//
// A frozen matrix rejects every mutation with ErrFrozen and may be read by
// any number of goroutines without locking.
//
// # Co-occurrence
//
// The window is the whole line: for each position i holding a vocabulary
// word W and every other position j whose token U differs from W,
// row(W)[U] is incremented. A row never contains its own word.
package matrix
