package matrix

// Normalize replaces every cell c(W,U) by c / max(1, totalOut(W)+totalOut(U))
// using integer division. Totals are taken before any cell changes, and
// totalOut(U) is zero for tokens without a row. Cells that become zero are
// removed.
//
// Integer division truncates almost every cell to zero: a cell survives
// only if it holds the whole row total and U owns no counts.
func (m *Matrix) Normalize() error {
	if m.frozen {
		return ErrFrozen
	}

	totals := make([]int64, len(m.rows))
	for i := range m.rows {
		totals[i] = m.TotalOut(uint32(i))
	}

	for i, row := range m.rows {
		for u, c := range row {
			d := totals[i]
			if m.HasRow(u) {
				d += totals[u]
			}
			if d < 1 {
				d = 1
			}
			if n := c / d; n > 0 {
				row[u] = n
			} else {
				delete(row, u)
			}
		}
	}
	return nil
}

// FilterRank keeps the top maxRank cells of every row, ordered by count
// descending with ties broken by ascending word.
func (m *Matrix) FilterRank(maxRank int) error {
	if m.frozen {
		return ErrFrozen
	}
	if maxRank <= 0 {
		return ErrInvalidRank
	}

	for i, row := range m.rows {
		if len(row) <= maxRank {
			continue
		}
		entries := m.ranked(uint32(i))
		kept := make(map[uint32]int64, maxRank)
		for _, e := range entries[:maxRank] {
			kept[m.dict.ids[e.Word]] = e.Count
		}
		m.rows[i] = kept
	}
	return nil
}

// MergeFrom adds every cell of o to m. Both matrices must share the same
// vocabulary; other tokens are translated through their words.
func (m *Matrix) MergeFrom(o *Matrix) error {
	if m.frozen {
		return ErrFrozen
	}
	if !m.sameVocabulary(o) {
		return ErrVocabularyMismatch
	}

	// Translate each foreign id once.
	xlat := make([]uint32, len(o.dict.words))
	for id, w := range o.dict.words {
		xlat[id] = m.dict.intern(w)
	}

	for i, orow := range o.rows {
		row := m.rows[i]
		for u, c := range orow {
			row[xlat[u]] += c
		}
	}
	return nil
}

// Merge returns a new matrix holding the cell-wise sum of ms.
func Merge(ms ...*Matrix) (*Matrix, error) {
	if len(ms) == 0 {
		return nil, ErrNoMatrices
	}
	out := New(ms[0].Words())
	for _, m := range ms {
		if err := out.MergeFrom(m); err != nil {
			return nil, err
		}
	}
	return out, nil
}
