// Package visited provides a reusable set of word ids for graph walks.
package visited

// Set tracks visited ids using a bitset and a dirty list, so Reset costs
// only as much as the previous walk touched.
type Set struct {
	bits  []uint64
	dirty []uint32
}

// New creates a set sized for ids below capacity. Larger ids grow it.
func New(capacity int) *Set {
	return &Set{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]uint32, 0, 128),
	}
}

// Visit marks id as visited and reports whether it was new.
func (s *Set) Visit(id uint32) bool {
	wordIdx := int(id >> 6)
	bitMask := uint64(1) << (id & 63)

	if wordIdx >= len(s.bits) {
		s.grow(wordIdx + 1)
	}

	if s.bits[wordIdx]&bitMask != 0 {
		return false
	}
	s.bits[wordIdx] |= bitMask
	s.dirty = append(s.dirty, id)
	return true
}

// Visited reports whether id has been visited since the last Reset.
func (s *Set) Visited(id uint32) bool {
	wordIdx := int(id >> 6)
	if wordIdx >= len(s.bits) {
		return false
	}
	return s.bits[wordIdx]&(uint64(1)<<(id&63)) != 0
}

// Len returns the number of visited ids.
func (s *Set) Len() int {
	return len(s.dirty)
}

// Reset clears every id visited since the last Reset.
func (s *Set) Reset() {
	for _, id := range s.dirty {
		s.bits[id>>6] &^= uint64(1) << (id & 63)
	}
	s.dirty = s.dirty[:0]
}

func (s *Set) grow(newLen int) {
	newCap := len(s.bits) * 2
	if newCap < newLen {
		newCap = newLen
	}

	newBits := make([]uint64, newCap)
	copy(newBits, s.bits)
	s.bits = newBits
}
