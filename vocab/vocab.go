// Package vocab loads the vocabulary that restricts which words own a row in
// the co-occurrence matrix.
//
// A vocabulary file holds one "<count> <word>" pair per line. Malformed lines
// never abort a load; they are collected as diagnostics.
package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrMalformedLine is returned for a line that does not hold exactly two fields.
	ErrMalformedLine = errors.New("vocab: expected \"<count> <word>\"")

	// ErrInvalidCount is returned for a count that is not a non-negative integer.
	ErrInvalidCount = errors.New("vocab: invalid count")
)

// readBufferSize is the read-ahead buffer of Load and LoadWordList. Lines
// may be longer.
const readBufferSize = 64 * 1024

// LineError records a malformed vocabulary line.
type LineError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Vocabulary is an immutable word to count mapping.
type Vocabulary struct {
	counts map[string]int64
	words  []string
	diags  []*LineError
}

// New creates a vocabulary from a word to count mapping.
func New(counts map[string]int64) *Vocabulary {
	v := &Vocabulary{counts: make(map[string]int64, len(counts))}
	for w, c := range counts {
		v.counts[w] = c
	}
	v.seal()
	return v
}

// FromWords creates a vocabulary in which every word has count zero.
func FromWords(words []string) *Vocabulary {
	v := &Vocabulary{counts: make(map[string]int64, len(words))}
	for _, w := range words {
		v.counts[w] = 0
	}
	v.seal()
	return v
}

func (v *Vocabulary) seal() {
	v.words = make([]string, 0, len(v.counts))
	for w := range v.counts {
		v.words = append(v.words, w)
	}
	sort.Strings(v.words)
}

// Load reads a vocabulary from r. A later line for the same word replaces
// the earlier count. Only read errors are returned; malformed lines end up
// in Diagnostics.
func Load(r io.Reader) (*Vocabulary, error) {
	v := &Vocabulary{counts: make(map[string]int64)}

	err := eachLine(r, func(line int, text string) {
		fields := strings.Fields(text)
		if len(fields) == 0 {
			return
		}
		if len(fields) != 2 {
			v.diags = append(v.diags, &LineError{Line: line, Text: text, Err: ErrMalformedLine})
			return
		}
		count, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil || count < 0 {
			v.diags = append(v.diags, &LineError{Line: line, Text: text, Err: ErrInvalidCount})
			return
		}
		v.counts[fields[1]] = count
	})
	if err != nil {
		return nil, err
	}

	v.seal()
	return v, nil
}

// eachLine calls fn with every line of r, without its line terminator.
// Lines have no length limit.
func eachLine(r io.Reader, fn func(line int, text string)) error {
	br := bufio.NewReaderSize(r, readBufferSize)
	line := 0
	for {
		text, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("vocab: read line %d: %w", line+1, err)
		}
		if text == "" && err != nil {
			return nil
		}

		line++
		text = strings.TrimSuffix(text, "\n")
		fn(line, strings.TrimSuffix(text, "\r"))

		if err != nil {
			return nil
		}
	}
}

// LoadFile reads a vocabulary from the named file.
func LoadFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: %w", err)
	}
	defer func() { _ = f.Close() }()

	v, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Diagnostics returns the malformed lines seen during Load, in file order.
func (v *Vocabulary) Diagnostics() []*LineError {
	return v.diags
}

// Contains reports whether w is a vocabulary word.
func (v *Vocabulary) Contains(w string) bool {
	_, ok := v.counts[w]
	return ok
}

// Count returns the count of w.
func (v *Vocabulary) Count(w string) (int64, bool) {
	c, ok := v.counts[w]
	return c, ok
}

// Words returns the vocabulary words in ascending order.
// The returned slice must not be modified.
func (v *Vocabulary) Words() []string {
	return v.words
}

// Len returns the number of words.
func (v *Vocabulary) Len() int {
	return len(v.words)
}
