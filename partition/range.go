package partition

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/hupe1980/relterm/compress"
)

// ErrInvalidPartitions is returned by Split for a non-positive partition
// count or a negative item count.
var ErrInvalidPartitions = errors.New("partition: invalid partition count")

// Range is the half-open item range [Start, End) of one partition.
type Range struct {
	Index int
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Split divides n items into parts contiguous ranges of ceil(n/parts)
// items. Ranges are clamped to n, so trailing ranges may be empty. The
// ranges cover [0, n) exactly once.
func Split(n, parts int) ([]Range, error) {
	if parts <= 0 || n < 0 {
		return nil, fmt.Errorf("%w: %d items into %d partitions", ErrInvalidPartitions, n, parts)
	}

	size := (n + parts - 1) / parts
	ranges := make([]Range, parts)
	for i := range ranges {
		start := min(i*size, n)
		end := min(start+size, n)
		ranges[i] = Range{Index: i, Start: start, End: end}
	}
	return ranges, nil
}

// OutputName derives the output name of partition index from prefix:
// "related.txt" becomes "related-003.txt", "related" becomes
// "related-003.txt", and "out/related.txt.gz" becomes "out/related-003.txt.gz".
func OutputName(prefix string, index int) string {
	stem, suffix := compress.SplitExt(prefix)
	ext := path.Ext(stem)
	base := strings.TrimSuffix(stem, ext)
	if ext == "" {
		ext = ".txt"
	}
	return fmt.Sprintf("%s-%03d%s%s", base, index, ext, suffix)
}
