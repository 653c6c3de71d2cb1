package similarity

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/hupe1980/relterm/corpus"
	"github.com/hupe1980/relterm/matrix"
	"github.com/hupe1980/relterm/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, words []string, lines ...string) *matrix.Matrix {
	t.Helper()
	m := matrix.New(words)
	for _, l := range lines {
		require.NoError(t, m.AddLine(corpus.Tokenize(l)))
	}
	m.Freeze()
	return m
}

func TestDot(t *testing.T) {
	a := map[string]int64{"x": 2, "y": 3}
	b := map[string]int64{"y": 4, "z": 5}

	assert.Equal(t, 12.0, Dot(a, b))
	assert.Equal(t, Dot(a, b), Dot(b, a))
	assert.Zero(t, Dot(a, map[string]int64{}))
	assert.Equal(t, 0.5, Dot(map[uint32]float64{1: 0.5}, map[uint32]float64{1: 1}))
}

func TestDistance(t *testing.T) {
	a := map[string]int64{"x": 1, "y": 2}
	b := map[string]int64{"y": 2, "z": 2}

	assert.InDelta(t, math.Sqrt(5), Distance(a, b), 1e-12)
	assert.Equal(t, Distance(a, b), Distance(b, a))
	assert.Zero(t, Distance(a, a))
	assert.Zero(t, Distance(map[string]int64{}, nil))
}

func TestPolicy(t *testing.T) {
	for _, p := range []Policy{PolicyFrequency, PolicyDistance, PolicyDotProduct} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePolicy("cosine")
	assert.Error(t, err)

	assert.True(t, PolicyDistance.Ascending())
	assert.False(t, PolicyDotProduct.Ascending())
	assert.Equal(t, "Unknown(9)", Policy(9).String())
}

func TestTopK(t *testing.T) {
	h := newTopK(3, false)
	for i, s := range []float64{5, 1, 9, 3, 7, 9} {
		h.push(Candidate{Word: fmt.Sprintf("w%d", i), Score: s})
	}
	assert.Equal(t, []Candidate{{"w2", 9}, {"w5", 9}, {"w4", 7}}, h.sorted())
	assert.Empty(t, h.sorted())

	asc := newTopK(2, true)
	for i, s := range []float64{5, 1, 9, 1} {
		asc.push(Candidate{Word: fmt.Sprintf("w%d", i), Score: s})
	}
	assert.Equal(t, []Candidate{{"w1", 1}, {"w3", 1}}, asc.sorted())

	none := newTopK(0, false)
	none.push(Candidate{Word: "a", Score: 1})
	assert.Empty(t, none.sorted())
}

func TestTopK_MatchesSort(t *testing.T) {
	rng := testutil.NewRNG(3)
	for _, k := range []int{1, 5, 10, 50} {
		cands := make([]Candidate, 200)
		for i := range cands {
			cands[i] = Candidate{Word: fmt.Sprintf("w%03d", i), Score: float64(rng.Intn(20))}
		}

		h := newTopK(k, false)
		for _, c := range cands {
			h.push(c)
		}

		want := append([]Candidate(nil), cands...)
		sort.Slice(want, func(i, j int) bool {
			if want[i].Score != want[j].Score {
				return want[i].Score > want[j].Score
			}
			return want[i].Word < want[j].Word
		})
		assert.Equal(t, want[:k], h.sorted(), "k=%d", k)
	}
}

func TestRanker_Frequency(t *testing.T) {
	m := build(t, []string{"the", "cat", "sat"}, "the cat sat")
	r := NewRanker(m, PolicyFrequency)

	res, ok := r.Rank("cat")
	require.True(t, ok)
	assert.Equal(t, "cat sat the", res.Line())
	assert.Equal(t, []string{"sat", "the"}, res.Words())
}

func TestRanker_FrequencyOrderAndTruncation(t *testing.T) {
	m := build(t, []string{"a"}, "a b b b c c d e", "a e")
	r := NewRanker(m, PolicyFrequency, WithK(3))

	res, ok := r.Rank("a")
	require.True(t, ok)
	assert.Equal(t, []Candidate{{"b", 3}, {"c", 2}, {"e", 2}}, res.Candidates)
}

func TestRanker_Distance(t *testing.T) {
	m := build(t, []string{"a", "b", "c"}, "a b", "a c")
	r := NewRanker(m, PolicyDistance)

	// row(b) = row(c) = {a:1}, row(a) = {b:1, c:1}
	res, ok := r.Rank("b")
	require.True(t, ok)
	assert.Equal(t, "b c a", res.Line())
	assert.Equal(t, 0.0, res.Candidates[0].Score)
	assert.InDelta(t, math.Sqrt(3), res.Candidates[1].Score, 1e-12)

	res, ok = r.Rank("a")
	require.True(t, ok)
	// Both neighbors are at distance sqrt(3); ties by word.
	assert.Equal(t, "a b c", res.Line())
}

func TestRanker_DistanceSkipsWordsWithoutRow(t *testing.T) {
	m := build(t, []string{"a", "b"}, "a b x")
	r := NewRanker(m, PolicyDistance)

	res, ok := r.Rank("a")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, res.Words())
}

func TestRanker_DotProduct(t *testing.T) {
	m := build(t, []string{"a", "b", "c", "d"}, "a x y", "b x", "c y y", "d z")
	r := NewRanker(m, PolicyDotProduct)

	// row(a)={x:1,y:1}, row(b)={x:1}, row(c)={y:2}, row(d)={z:1}
	res, ok := r.Rank("a")
	require.True(t, ok)
	assert.Equal(t, []Candidate{{"c", 2}, {"b", 1}}, res.Candidates)

	// Only zero scores: no line.
	_, ok = r.Rank("d")
	assert.False(t, ok)
}

func TestRanker_NoData(t *testing.T) {
	m := build(t, []string{"a", "lonely"}, "a b")

	for _, p := range []Policy{PolicyFrequency, PolicyDistance, PolicyDotProduct} {
		r := NewRanker(m, p)
		_, ok := r.Rank("lonely")
		assert.False(t, ok, p.String())
		_, ok = r.Rank("missing")
		assert.False(t, ok, p.String())
		_, ok = r.Rank("b") // token without a row
		assert.False(t, ok, p.String())
	}
}

func TestRanker_DefaultKBound(t *testing.T) {
	rng := testutil.NewRNG(21)
	words := rng.Words(30)
	m := build(t, words, rng.Corpus(words, 200, 15, 0)...)

	for _, p := range []Policy{PolicyFrequency, PolicyDistance, PolicyDotProduct} {
		r := NewRanker(m, p)
		assert.Equal(t, p, r.Policy())
		for _, w := range words {
			res, ok := r.Rank(w)
			if !ok {
				continue
			}
			assert.LessOrEqual(t, len(res.Candidates), DefaultK)
			assert.NotContains(t, res.Words(), w)
			for i := 1; i < len(res.Candidates); i++ {
				prev, cur := res.Candidates[i-1], res.Candidates[i]
				if p.Ascending() {
					assert.LessOrEqual(t, prev.Score, cur.Score)
				} else {
					assert.GreaterOrEqual(t, prev.Score, cur.Score)
				}
			}
		}
	}
}
