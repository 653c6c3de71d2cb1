package partition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	ranges, err := Split(10, 3)
	require.NoError(t, err)
	assert.Equal(t, []Range{
		{Index: 0, Start: 0, End: 4},
		{Index: 1, Start: 4, End: 8},
		{Index: 2, Start: 8, End: 10},
	}, ranges)

	// More partitions than items leaves trailing ranges empty.
	ranges, err = Split(2, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 0, 0}, []int{ranges[0].Len(), ranges[1].Len(), ranges[2].Len(), ranges[3].Len()})

	ranges, err = Split(0, 2)
	require.NoError(t, err)
	assert.Zero(t, ranges[0].Len())
	assert.Zero(t, ranges[1].Len())
}

func TestSplit_Invalid(t *testing.T) {
	_, err := Split(10, 0)
	assert.ErrorIs(t, err, ErrInvalidPartitions)

	_, err = Split(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidPartitions)
}

func TestSplit_Coverage(t *testing.T) {
	for n := 0; n <= 40; n++ {
		for parts := 1; parts <= 12; parts++ {
			t.Run(fmt.Sprintf("n=%d/parts=%d", n, parts), func(t *testing.T) {
				ranges, err := Split(n, parts)
				require.NoError(t, err)
				require.Len(t, ranges, parts)

				seen := make([]int, n)
				next := 0
				for i, r := range ranges {
					assert.Equal(t, i, r.Index)
					assert.Equal(t, next, r.Start, "contiguous")
					assert.GreaterOrEqual(t, r.Len(), 0)
					for j := r.Start; j < r.End; j++ {
						seen[j]++
					}
					next = r.End
				}
				assert.Equal(t, n, next)
				for j, c := range seen {
					assert.Equal(t, 1, c, "item %d", j)
				}
			})
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		prefix string
		index  int
		want   string
	}{
		{"related.txt", 0, "related-000.txt"},
		{"related.txt", 7, "related-007.txt"},
		{"related", 12, "related-012.txt"},
		{"out/related.csv", 3, "out/related-003.csv"},
		{"out/related.txt.gz", 3, "out/related-003.txt.gz"},
		{"related.zst", 1, "related-001.txt.zst"},
		{"runs.v2/related", 1, "runs.v2/related-001.txt"},
		{"related.txt", 1234, "related-1234.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.prefix, tt.index))
		})
	}
}
