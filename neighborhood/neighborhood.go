// Package neighborhood collects the words reachable from a word within a
// bounded number of hops in the co-occurrence graph.
//
// Nodes are word ids and every stored cell row(W)[U] is an edge W→U. Only
// words that own a row are expanded; other tokens are leaves.
package neighborhood

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/relterm/internal/visited"
	"github.com/hupe1980/relterm/matrix"
)

// Graph is the read view a walk needs. *matrix.Matrix implements it.
type Graph interface {
	HasRow(id uint32) bool
	RowByID(id uint32) map[uint32]int64
}

var _ Graph = (*matrix.Matrix)(nil)

// Walker runs breadth-first walks and reuses its buffers between them.
// A Walker is not safe for concurrent use; give each worker its own.
type Walker struct {
	expanded *visited.Set
	frontier []uint32
	next     []uint32
}

// NewWalker creates a walker sized for capacity ids.
func NewWalker(capacity int) *Walker {
	return &Walker{expanded: visited.New(capacity)}
}

// Collect returns every id reachable from start in 1..radius hops.
// A radius below 1 or a start without a row yields an empty set. The start
// itself is included when a path leads back to it.
func (w *Walker) Collect(g Graph, start uint32, radius int) *roaring.Bitmap {
	result := roaring.New()
	if radius < 1 || !g.HasRow(start) {
		return result
	}

	w.expanded.Reset()
	w.expanded.Visit(start)
	w.frontier = append(w.frontier[:0], start)

	for depth := 1; depth <= radius && len(w.frontier) > 0; depth++ {
		w.next = w.next[:0]
		for _, n := range w.frontier {
			for u, c := range g.RowByID(n) {
				if c == 0 {
					continue
				}
				result.Add(u)
				if depth < radius && g.HasRow(u) && w.expanded.Visit(u) {
					w.next = append(w.next, u)
				}
			}
		}
		w.frontier, w.next = w.next, w.frontier
	}
	return result
}

// Words returns the words within radius hops of word in ascending order.
func Words(m *matrix.Matrix, word string, radius int) []string {
	id, ok := m.ID(word)
	if !ok {
		return nil
	}
	set := NewWalker(m.Dict().Len()).Collect(m, id, radius)

	words := make([]string, 0, set.GetCardinality())
	it := set.Iterator()
	for it.HasNext() {
		words = append(words, m.Word(it.Next()))
	}
	slices.Sort(words)
	return words
}
