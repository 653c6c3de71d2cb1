package matrix

import (
	"cmp"
	"context"
	"slices"
	"sort"

	"github.com/hupe1980/relterm/corpus"
)

// Matrix is a sparse word×word co-occurrence count matrix.
//
// A Matrix is not safe for concurrent mutation. After Freeze it is safe
// for concurrent reads.
type Matrix struct {
	dict   *Dict
	rows   []map[uint32]int64 // len(rows) == V
	frozen bool

	// scratch for AddLine
	ids    []uint32
	counts map[uint32]int64
}

// New creates a matrix with one empty row per distinct word.
func New(words []string) *Matrix {
	sorted := slices.Clone(words)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	m := &Matrix{
		dict:   newDict(len(sorted)),
		rows:   make([]map[uint32]int64, len(sorted)),
		counts: make(map[uint32]int64),
	}
	for i, w := range sorted {
		m.dict.intern(w)
		m.rows[i] = make(map[uint32]int64)
	}
	return m
}

// Dict returns the word dictionary.
func (m *Matrix) Dict() *Dict {
	return m.dict
}

// Len returns the number of rows, which is the vocabulary size.
func (m *Matrix) Len() int {
	return len(m.rows)
}

// Words returns the vocabulary words in ascending order.
// The returned slice must not be modified. Its capacity is capped, so
// appending to it copies.
func (m *Matrix) Words() []string {
	n := len(m.rows)
	return m.dict.words[:n:n]
}

// Freeze makes the matrix immutable.
func (m *Matrix) Freeze() {
	m.frozen = true
	m.ids = nil
	m.counts = nil
}

// Frozen reports whether Freeze was called.
func (m *Matrix) Frozen() bool {
	return m.frozen
}

// AddLine accumulates the co-occurrences of one tokenized line.
func (m *Matrix) AddLine(tokens []string) error {
	if m.frozen {
		return ErrFrozen
	}

	v := uint32(len(m.rows))
	hasRow := false
	for _, t := range tokens {
		if id, ok := m.dict.ids[t]; ok && id < v {
			hasRow = true
			break
		}
	}
	if !hasRow {
		return nil
	}

	// Each occurrence of W pairs with every occurrence of every other
	// token, so per-token multiplicities give the same sums as the
	// pairwise loop.
	m.ids = m.ids[:0]
	clear(m.counts)
	for _, t := range tokens {
		id := m.dict.intern(t)
		m.ids = append(m.ids, id)
		m.counts[id]++
	}

	for _, w := range m.ids {
		if w >= v {
			continue
		}
		row := m.rows[w]
		for u, c := range m.counts {
			if u != w {
				row[u] += c
			}
		}
	}
	return nil
}

// AddStream accumulates every line of s and returns the number of lines read.
func (m *Matrix) AddStream(ctx context.Context, s *corpus.Stream) (int, error) {
	if m.frozen {
		return 0, ErrFrozen
	}
	return s.Each(ctx, m.AddLine)
}

// ID returns the id of w.
func (m *Matrix) ID(w string) (uint32, bool) {
	return m.dict.ID(w)
}

// Word returns the word of id.
func (m *Matrix) Word(id uint32) string {
	return m.dict.Word(id)
}

// HasRow reports whether id is a vocabulary word.
func (m *Matrix) HasRow(id uint32) bool {
	return int(id) < len(m.rows)
}

// RowByID returns the row of id, or nil if id owns no row.
// The returned map must not be modified.
func (m *Matrix) RowByID(id uint32) map[uint32]int64 {
	if !m.HasRow(id) {
		return nil
	}
	return m.rows[id]
}

// Each calls fn for every non-zero cell of row id.
func (m *Matrix) Each(id uint32, fn func(u uint32, count int64)) {
	for u, c := range m.RowByID(id) {
		fn(u, c)
	}
}

// Get returns the count of (w, u). Missing cells count zero.
func (m *Matrix) Get(w, u string) int64 {
	wid, ok := m.dict.ID(w)
	if !ok || !m.HasRow(wid) {
		return 0
	}
	uid, ok := m.dict.ID(u)
	if !ok {
		return 0
	}
	return m.rows[wid][uid]
}

// Row returns a copy of the row of w keyed by word, or nil if w owns no row.
func (m *Matrix) Row(w string) map[string]int64 {
	id, ok := m.dict.ID(w)
	if !ok || !m.HasRow(id) {
		return nil
	}
	row := make(map[string]int64, len(m.rows[id]))
	for u, c := range m.rows[id] {
		row[m.dict.words[u]] = c
	}
	return row
}

// TotalOut returns the sum of row id, or 0 if id owns no row.
func (m *Matrix) TotalOut(id uint32) int64 {
	var total int64
	for _, c := range m.RowByID(id) {
		total += c
	}
	return total
}

// Cells returns the number of stored cells.
func (m *Matrix) Cells() int {
	n := 0
	for _, row := range m.rows {
		n += len(row)
	}
	return n
}

// Entry is one cell of a row.
type Entry struct {
	Word  string
	Count int64
}

// Ranked returns the cells of row w ordered by count descending, ties
// broken by ascending word.
func (m *Matrix) Ranked(w string) []Entry {
	id, ok := m.dict.ID(w)
	if !ok {
		return nil
	}
	return m.ranked(id)
}

func (m *Matrix) ranked(id uint32) []Entry {
	row := m.RowByID(id)
	entries := make([]Entry, 0, len(row))
	for u, c := range row {
		entries = append(entries, Entry{Word: m.dict.words[u], Count: c})
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
}

// Equal reports whether m and o hold the same vocabulary and the same
// cells. Token ids may differ.
func (m *Matrix) Equal(o *Matrix) bool {
	if !m.sameVocabulary(o) {
		return false
	}
	for i, row := range m.rows {
		orow := o.rows[i]
		if len(row) != len(orow) {
			return false
		}
		for u, c := range row {
			oid, ok := o.dict.ids[m.dict.words[u]]
			if !ok || orow[oid] != c {
				return false
			}
		}
	}
	return true
}

func (m *Matrix) sameVocabulary(o *Matrix) bool {
	return slices.Equal(m.Words(), o.Words())
}

// Triples calls fn for every cell in ascending (word, candidate) order and
// stops at the first error.
func (m *Matrix) Triples(fn func(word, candidate string, count int64) error) error {
	for id, row := range m.rows {
		w := m.dict.words[id]
		cands := make([]string, 0, len(row))
		for u := range row {
			cands = append(cands, m.dict.words[u])
		}
		sort.Strings(cands)
		for _, u := range cands {
			if err := fn(w, u, row[m.dict.ids[u]]); err != nil {
				return err
			}
		}
	}
	return nil
}
