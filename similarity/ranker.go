package similarity

import (
	"strings"

	"github.com/hupe1980/relterm/matrix"
	"github.com/hupe1980/relterm/neighborhood"
)

const (
	// DefaultK is the number of candidates kept per base word.
	DefaultK = 10
	// DefaultRadius is the neighborhood radius of PolicyDistance.
	DefaultRadius = 2
)

// Candidate is a ranked word.
type Candidate struct {
	Word  string
	Score float64
}

// Result holds the ranked candidates of one base word, best first.
type Result struct {
	Word       string
	Candidates []Candidate
}

// Words returns the candidate words in rank order.
func (r Result) Words() []string {
	words := make([]string, len(r.Candidates))
	for i, c := range r.Candidates {
		words[i] = c.Word
	}
	return words
}

// Line formats the result as "<base> <c1> ... <cK>" without a trailing
// separator or newline.
func (r Result) Line() string {
	var sb strings.Builder
	sb.WriteString(r.Word)
	for _, c := range r.Candidates {
		sb.WriteByte(' ')
		sb.WriteString(c.Word)
	}
	return sb.String()
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithK sets the number of candidates kept per base word.
func WithK(k int) Option {
	return func(r *Ranker) {
		r.k = k
	}
}

// WithRadius sets the neighborhood radius of PolicyDistance.
func WithRadius(radius int) Option {
	return func(r *Ranker) {
		r.radius = radius
	}
}

// Ranker ranks base words of a frozen matrix under one policy.
// A Ranker is not safe for concurrent use; give each worker its own.
type Ranker struct {
	m      *matrix.Matrix
	policy Policy
	k      int
	radius int

	walker *neighborhood.Walker
	heap   *topK
}

// NewRanker creates a ranker over m.
func NewRanker(m *matrix.Matrix, policy Policy, opts ...Option) *Ranker {
	r := &Ranker{
		m:      m,
		policy: policy,
		k:      DefaultK,
		radius: DefaultRadius,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.heap = newTopK(r.k, policy.Ascending())
	if policy == PolicyDistance {
		r.walker = neighborhood.NewWalker(m.Dict().Len())
	}
	return r
}

// Policy returns the ranking policy.
func (r *Ranker) Policy() Policy {
	return r.policy
}

// Rank ranks word. It reports false if word owns no row or has no
// candidates, in which case no output line is due.
func (r *Ranker) Rank(word string) (Result, bool) {
	id, ok := r.m.ID(word)
	if !ok {
		return Result{}, false
	}
	return r.RankID(id)
}

// RankID ranks the word with the given id.
func (r *Ranker) RankID(id uint32) (Result, bool) {
	if !r.m.HasRow(id) {
		return Result{}, false
	}
	row := r.m.RowByID(id)

	r.heap.reset()
	switch r.policy {
	case PolicyFrequency:
		for u, c := range row {
			r.heap.push(Candidate{Word: r.m.Word(u), Score: float64(c)})
		}

	case PolicyDistance:
		set := r.walker.Collect(r.m, id, r.radius)
		it := set.Iterator()
		for it.HasNext() {
			u := it.Next()
			if u == id || !r.m.HasRow(u) {
				continue
			}
			r.heap.push(Candidate{Word: r.m.Word(u), Score: Distance(row, r.m.RowByID(u))})
		}

	case PolicyDotProduct:
		if len(row) == 0 {
			break
		}
		for u := range uint32(r.m.Len()) {
			if u == id {
				continue
			}
			if s := Dot(row, r.m.RowByID(u)); s != 0 {
				r.heap.push(Candidate{Word: r.m.Word(u), Score: s})
			}
		}
	}

	cands := r.heap.sorted()
	if len(cands) == 0 {
		return Result{}, false
	}
	return Result{Word: r.m.Word(id), Candidates: cands}, true
}
