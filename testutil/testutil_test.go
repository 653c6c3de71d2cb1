package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	rng := NewRNG(4711)

	words := rng.Words(12)
	assert.Len(t, words, 12)
	assert.Equal(t, "w000", words[0])
	assert.Equal(t, "w011", words[11])
}

func TestCorpus(t *testing.T) {
	rng := NewRNG(4711)
	words := rng.Words(5)

	lines := rng.Corpus(words, 20, 6, 0)
	assert.Len(t, lines, 20)
	for _, l := range lines {
		n := len(strings.Fields(l))
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 6)
		assert.NotContains(t, l, "oov")
	}

	rng.Reset()
	assert.Equal(t, lines, rng.Corpus(words, 20, 6, 0))
}

func TestBruteCooccurrence(t *testing.T) {
	rows := BruteCooccurrence([]string{"cat", "dog"}, []string{"the cat sat", "cat cat dog"})

	assert.Equal(t, map[string]int64{"the": 1, "sat": 1, "dog": 2}, rows["cat"])
	assert.Equal(t, map[string]int64{"cat": 2}, rows["dog"])
}

func TestCorpusText(t *testing.T) {
	assert.Equal(t, "", CorpusText(nil))
	assert.Equal(t, "a\nb\n", CorpusText([]string{"a", "b"}))
}
