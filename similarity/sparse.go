package similarity

import "math"

// Number is the set of cell value types.
type Number interface {
	~int | ~int32 | ~int64 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Dot returns the dot product of two sparse vectors over the intersection
// of their keys.
func Dot[K comparable, V Number](a, b map[K]V) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for k, av := range a {
		if bv, ok := b[k]; ok {
			sum += float64(av) * float64(bv)
		}
	}
	return sum
}

// Distance returns the Euclidean distance of two sparse vectors over the
// union of their keys. Missing keys count zero.
func Distance[K comparable, V Number](a, b map[K]V) float64 {
	var sum float64
	for k, av := range a {
		d := float64(av) - float64(b[k])
		sum += d * d
	}
	for k, bv := range b {
		if _, ok := a[k]; ok {
			continue
		}
		d := float64(bv)
		sum += d * d
	}
	return math.Sqrt(sum)
}
