package testutil

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Shuffle pseudo-randomizes the order of elements.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(n, swap)
}

// Words returns n distinct synthetic words ("w000", "w001", ...).
func (r *RNG) Words(n int) []string {
	width := len(fmt.Sprint(n))
	if width < 3 {
		width = 3
	}
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%0*d", width, i)
	}
	return words
}

// Corpus generates lines of 1..maxLen tokens drawn from words. With
// probability noise a token is replaced by an out-of-vocabulary word.
func (r *RNG) Corpus(words []string, lines, maxLen int, noise float64) []string {
	out := make([]string, lines)
	var sb strings.Builder
	for i := range out {
		sb.Reset()
		n := 1 + r.Intn(maxLen)
		for j := 0; j < n; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if r.Float64() < noise {
				fmt.Fprintf(&sb, "oov%d", r.Intn(len(words)+1))
				continue
			}
			sb.WriteString(words[r.Intn(len(words))])
		}
		out[i] = sb.String()
	}
	return out
}

// CorpusText joins lines into newline-terminated text.
func CorpusText(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// BruteCooccurrence counts co-occurrences by the quadratic definition:
// for every position i holding a vocabulary word and every j != i whose
// token differs, row(tokens[i])[tokens[j]] is incremented.
func BruteCooccurrence(words []string, lines []string) map[string]map[string]int64 {
	rows := make(map[string]map[string]int64, len(words))
	for _, w := range words {
		rows[w] = make(map[string]int64)
	}
	for _, line := range lines {
		tokens := strings.Fields(line)
		for i, w := range tokens {
			row, ok := rows[w]
			if !ok {
				continue
			}
			for j, u := range tokens {
				if i == j || u == w {
					continue
				}
				row[u]++
			}
		}
	}
	return rows
}
