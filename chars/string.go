package chars

// String pairs a text with the Category of each of its runes.
// It is the unit the chunker walks: rune-indexed categories on one side,
// byte offsets back into the original text on the other.
type String struct {
	text string
	cats []Category
	offs []int // byte offset of rune i; offs[len(cats)] == len(text)
}

// NewString classifies every rune of s.
func NewString(s string) *String {
	cats := make([]Category, 0, len(s))
	offs := make([]int, 0, len(s)+1)
	for i, r := range s {
		cats = append(cats, Classify(r))
		offs = append(offs, i)
	}
	offs = append(offs, len(s))
	return &String{text: s, cats: cats, offs: offs}
}

// Text returns the underlying text.
func (s *String) Text() string { return s.text }

// Len returns the number of runes.
func (s *String) Len() int { return len(s.cats) }

// Category returns the category of rune i. Out-of-range indices come
// back as Other.
func (s *String) Category(i int) Category {
	if i < 0 || i >= len(s.cats) {
		return Other
	}
	return s.cats[i]
}

// ByteOffset returns the byte offset of rune i in the text.
// i may equal Len(), in which case the total byte length is returned.
func (s *String) ByteOffset(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(s.offs) {
		return len(s.text)
	}
	return s.offs[i]
}

// Slice returns the text of the rune range [start, end).
func (s *String) Slice(start, end int) string {
	return s.text[s.ByteOffset(start):s.ByteOffset(end)]
}
