package matrix

// Dict interns words to dense uint32 ids.
type Dict struct {
	ids   map[string]uint32
	words []string
}

func newDict(capacity int) *Dict {
	return &Dict{
		ids:   make(map[string]uint32, capacity),
		words: make([]string, 0, capacity),
	}
}

// ID returns the id of w.
func (d *Dict) ID(w string) (uint32, bool) {
	id, ok := d.ids[w]
	return id, ok
}

// Word returns the word of id. Unknown ids yield "".
func (d *Dict) Word(id uint32) string {
	if int(id) >= len(d.words) {
		return ""
	}
	return d.words[id]
}

// Len returns the number of interned words.
func (d *Dict) Len() int {
	return len(d.words)
}

func (d *Dict) intern(w string) uint32 {
	if id, ok := d.ids[w]; ok {
		return id
	}
	id := uint32(len(d.words))
	d.ids[w] = id
	d.words = append(d.words, w)
	return id
}
