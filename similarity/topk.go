package similarity

import "slices"

// topK is a bounded heap holding the best k candidates. The worst kept
// candidate sits at the root so it can be replaced in O(log k).
type topK struct {
	ascending bool
	k         int
	items     []Candidate
}

func newTopK(k int, ascending bool) *topK {
	return &topK{
		ascending: ascending,
		k:         k,
		items:     make([]Candidate, 0, k),
	}
}

func (h *topK) reset() {
	h.items = h.items[:0]
}

// better reports whether a ranks before b.
func (h *topK) better(a, b Candidate) bool {
	if a.Score != b.Score {
		if h.ascending {
			return a.Score < b.Score
		}
		return a.Score > b.Score
	}
	return a.Word < b.Word
}

// push offers c. If the heap is full, c replaces the root only if it is better.
func (h *topK) push(c Candidate) {
	if h.k <= 0 {
		return
	}
	if len(h.items) < h.k {
		h.items = append(h.items, c)
		h.siftUp(len(h.items) - 1)
		return
	}
	if h.better(c, h.items[0]) {
		h.items[0] = c
		h.siftDown(0)
	}
}

// sorted returns the kept candidates best first and empties the heap.
func (h *topK) sorted() []Candidate {
	out := slices.Clone(h.items)
	slices.SortFunc(out, func(a, b Candidate) int {
		switch {
		case h.better(a, b):
			return -1
		case h.better(b, a):
			return 1
		default:
			return 0
		}
	})
	h.reset()
	return out
}

// less orders the heap worst first.
func (h *topK) less(i, j int) bool {
	return h.better(h.items[j], h.items[i])
}

func (h *topK) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *topK) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		smallest := left
		if right := left + 1; right < n && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
