package score

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type pair struct {
	a, b string
}

func makePair(a, b string) pair {
	if b < a {
		a, b = b, a
	}
	return pair{a, b}
}

// PairOracle is an Oracle backed by a precomputed table of symmetric word
// pair similarities. Pairs missing from the table score zero.
type PairOracle struct {
	known map[string]struct{}
	pairs map[pair]float64
}

var _ Oracle = (*PairOracle)(nil)

// NewPairOracle creates an empty oracle.
func NewPairOracle() *PairOracle {
	return &PairOracle{
		known: make(map[string]struct{}),
		pairs: make(map[pair]float64),
	}
}

// Add records the similarity of a and b. Words are lower-cased.
func (o *PairOracle) Add(a, b string, score float64) {
	a, b = strings.ToLower(a), strings.ToLower(b)
	o.known[a] = struct{}{}
	o.known[b] = struct{}{}
	o.pairs[makePair(a, b)] = score
}

// Known implements Oracle.
func (o *PairOracle) Known(w string) bool {
	_, ok := o.known[w]
	return ok
}

// Similarity implements Oracle. A word is fully similar to itself.
func (o *PairOracle) Similarity(a, b string) float64 {
	if a == b && o.Known(a) {
		return 1
	}
	return o.pairs[makePair(a, b)]
}

// Len returns the number of stored pairs.
func (o *PairOracle) Len() int {
	return len(o.pairs)
}

// LoadPairOracle reads "<word> <word> <score>" lines. Blank lines and lines
// starting with '#' are skipped.
func LoadPairOracle(r io.Reader) (*PairOracle, error) {
	o := NewPairOracle()

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("score: line %d: expected \"<word> <word> <score>\": %q", line, text)
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("score: line %d: %w", line, err)
		}
		o.Add(fields[0], fields[1], v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("score: read pairs: %w", err)
	}
	return o, nil
}

// LoadPairOracleFile reads a pair table from the named file.
func LoadPairOracleFile(path string) (*PairOracle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	defer func() { _ = f.Close() }()

	o, err := LoadPairOracle(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}
