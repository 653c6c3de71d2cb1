package neighborhood

import (
	"fmt"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
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

func TestWords_Chain(t *testing.T) {
	m := build(t, []string{"a", "b", "c", "d"}, "a b", "b c", "c d")

	tests := []struct {
		radius int
		want   []string
	}{
		{-1, []string{}},
		{0, []string{}},
		{1, []string{"b"}},
		{2, []string{"a", "b", "c"}},
		{3, []string{"a", "b", "c", "d"}},
		{10, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("r=%d", tt.radius), func(t *testing.T) {
			assert.Equal(t, tt.want, Words(m, "a", tt.radius))
		})
	}
}

func TestWords_LeavesAreNotExpanded(t *testing.T) {
	// x owns no row, so nothing is reachable through it.
	m := build(t, []string{"a", "b"}, "a x", "x b")

	assert.Equal(t, []string{"x"}, Words(m, "a", 3))
}

func TestWords_MissingStart(t *testing.T) {
	m := build(t, []string{"a"}, "a x")

	assert.Nil(t, Words(m, "unknown", 2))
	assert.Empty(t, Words(m, "x", 2))
}

func TestWalker_Reuse(t *testing.T) {
	m := build(t, []string{"a", "b", "c", "d"}, "a b", "c d")
	w := NewWalker(m.Dict().Len())

	a, _ := m.ID("a")
	c, _ := m.ID("c")
	b, _ := m.ID("b")
	d, _ := m.ID("d")

	first := w.Collect(m, a, 2)
	assert.True(t, first.Contains(b))
	assert.False(t, first.Contains(d))

	// State from the first walk must not leak into the second.
	second := w.Collect(m, c, 2)
	assert.True(t, second.Contains(d))
	assert.True(t, second.Contains(c))
	assert.False(t, second.Contains(b))
}

func TestWalker_RadiusMonotonic(t *testing.T) {
	rng := testutil.NewRNG(11)
	words := rng.Words(40)
	lines := rng.Corpus(words, 60, 4, 0.3)

	m := matrix.New(words)
	for _, l := range lines {
		require.NoError(t, m.AddLine(corpus.Tokenize(l)))
	}
	require.NoError(t, m.FilterRank(3))
	m.Freeze()
	w := NewWalker(m.Dict().Len())

	for id := range uint32(m.Len()) {
		prev := w.Collect(m, id, 1)
		for r := 2; r <= 4; r++ {
			cur := w.Collect(m, id, r)
			assert.True(t, roaring.AndNot(prev, cur).IsEmpty(), "word %s radius %d", m.Word(id), r)
			prev = cur
		}
	}
}
