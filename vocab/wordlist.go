package vocab

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// WordSet is a set of words.
type WordSet map[string]struct{}

// Contains reports whether w is in the set. A nil set contains nothing.
func (s WordSet) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// LoadWordList reads one word per line. Surrounding whitespace is trimmed
// and blank lines are skipped.
func LoadWordList(r io.Reader) (WordSet, error) {
	set := make(WordSet)

	err := eachLine(r, func(_ int, text string) {
		if w := strings.TrimSpace(text); w != "" {
			set[w] = struct{}{}
		}
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// LoadWordListFile reads a word list from the named file.
func LoadWordListFile(path string) (WordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: %w", err)
	}
	defer func() { _ = f.Close() }()

	set, err := LoadWordList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
