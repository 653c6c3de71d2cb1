// Package export writes diagnostic dumps of a co-occurrence matrix, either as
// tab-separated "word candidate count" triples or into a SQLite database.
package export

import (
	"bufio"
	"io"
	"strconv"

	"github.com/hupe1980/relterm/matrix"
)

// WriteTriples writes one "word\tcandidate\tcount" line per cell in
// ascending (word, candidate) order and returns the number of lines.
func WriteTriples(w io.Writer, m *matrix.Matrix) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	buf := make([]byte, 0, 64)
	err := m.Triples(func(word, cand string, count int64) error {
		buf = append(buf[:0], word...)
		buf = append(buf, '\t')
		buf = append(buf, cand...)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, count, 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, err
	}
	return n, bw.Flush()
}
