package similarity

import (
	"fmt"
	"strings"
)

// Policy selects how candidates are gathered and scored.
type Policy int

const (
	// PolicyFrequency ranks the base word's row by count.
	PolicyFrequency Policy = iota
	// PolicyDistance ranks the two-hop neighborhood by row distance.
	PolicyDistance
	// PolicyDotProduct ranks the whole vocabulary by row dot product.
	PolicyDotProduct
)

func (p Policy) String() string {
	switch p {
	case PolicyFrequency:
		return "frequency"
	case PolicyDistance:
		return "distance"
	case PolicyDotProduct:
		return "dot"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Ascending reports whether lower scores rank first.
func (p Policy) Ascending() bool {
	return p == PolicyDistance
}

// ParsePolicy parses a policy name as returned by String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "frequency", "freq":
		return PolicyFrequency, nil
	case "distance":
		return PolicyDistance, nil
	case "dot", "dotproduct", "dot-product":
		return PolicyDotProduct, nil
	default:
		return 0, fmt.Errorf("similarity: unknown policy %q", s)
	}
}
