// Package chunker segments text into typed chunks: one chunk per Tibetan
// syllable, with punctuation, numbers, symbols and foreign-script runs
// kept as maximal runs. Chunk byte spans always partition the input
// exactly, so concatenating them reconstructs it.
package chunker

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/OpenPecha/botok-go/chars"
)

// ChunkType is the coarse category of a chunk.
type ChunkType int

const (
	// Text is a Tibetan syllable.
	Text ChunkType = iota
	// Punct is a punctuation run.
	Punct
	// Num is a run of Tibetan digits.
	Num
	// Sym is a run of symbols.
	Sym
	// Latin is a run of Latin-range text, ASCII digits included.
	Latin
	// Cjk is a run of CJK text.
	Cjk
	// Space is a whitespace run with no preceding chunk to attach to.
	Space
	// Other is a single rune outside every known range.
	Other
)

var chunkTypeNames = map[ChunkType]string{
	Text:  "TEXT",
	Punct: "PUNCT",
	Num:   "NUM",
	Sym:   "SYM",
	Latin: "LATIN",
	Cjk:   "CJK",
	Space: "SPACE",
	Other: "OTHER",
}

func (t ChunkType) String() string {
	if name, ok := chunkTypeNames[t]; ok {
		return name
	}
	return "OTHER"
}

// MarshalJSON encodes the type as its name, e.g. "TEXT".
func (t ChunkType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a type name back into its value.
func (t *ChunkType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for typ, n := range chunkTypeNames {
		if n == name {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown chunk type %q", name)
}

// Chunk is one segment of the input.
//
// For Text chunks, Syllable holds the cleaned syllable: the syllable
// runes only, without the trailing tsek or any absorbed whitespace.
// The byte span still covers those, so spans stay contiguous.
type Chunk struct {
	Syllable string    `json:"syllable,omitempty"`
	Type     ChunkType `json:"type"`
	Start    int       `json:"start"` // byte offset into the input
	Len      int       `json:"len"`   // byte length
}

// Chunker splits text into chunks. The zero value uses the default
// behavior; use New with options to change it.
type Chunker struct {
	spacesAsPunct bool
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithSpacesAsPunct makes whitespace runs their own punctuation chunks
// instead of attaching to the preceding chunk. Syllables then break at
// spaces.
func WithSpacesAsPunct() Option {
	return func(c *Chunker) { c.spacesAsPunct = true }
}

// New returns a Chunker with the given options applied.
func New(opts ...Option) *Chunker {
	c := &Chunker{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Split chunks text with default behavior.
func Split(text string) []Chunk {
	return New().Split(text)
}

// Split chunks text into a contiguous sequence of typed chunks.
func (c *Chunker) Split(text string) []Chunk {
	s := chars.NewString(text)
	if s.Len() == 0 {
		return nil
	}

	var chunks []Chunk
	i := 0
	for i < s.Len() {
		cat := s.Category(i)

		if cat == chars.Transparent {
			if c.spacesAsPunct {
				chunk, next := c.readRun(s, i, Punct, isPunctCategory)
				chunks = append(chunks, chunk)
				i = next
				continue
			}
			if len(chunks) > 0 {
				// Whitespace extends whatever came before it.
				chunks[len(chunks)-1].Len += s.ByteOffset(i+1) - s.ByteOffset(i)
				i++
				continue
			}
			// Nothing before it: emit the run as a Space chunk so the
			// spans still cover the whole input.
			chunk, next := c.readSpace(s, i)
			chunks = append(chunks, chunk)
			i = next
			continue
		}

		switch {
		case cat.IsSyllablePart():
			chunk, next := c.readSyllable(s, i)
			chunks = append(chunks, chunk)
			i = next
		case cat == chars.Tsek:
			// A tsek with no syllable in progress stands alone.
			chunks = append(chunks, Chunk{
				Type:  Punct,
				Start: s.ByteOffset(i),
				Len:   s.ByteOffset(i+1) - s.ByteOffset(i),
			})
			i++
		case isPunctCategory(cat):
			chunk, next := c.readRun(s, i, Punct, isPunctCategory)
			chunks = append(chunks, chunk)
			i = next
		case cat == chars.Numeral:
			chunk, next := c.readRun(s, i, Num, isNumeralCategory)
			chunks = append(chunks, chunk)
			i = next
		case cat == chars.Symbol:
			chunk, next := c.readRun(s, i, Sym, isSymbolCategory)
			chunks = append(chunks, chunk)
			i = next
		case cat == chars.Latin:
			chunk, next := c.readRun(s, i, Latin, isLatinCategory)
			chunks = append(chunks, chunk)
			i = next
		case cat == chars.Cjk:
			chunk, next := c.readRun(s, i, Cjk, isCjkCategory)
			chunks = append(chunks, chunk)
			i = next
		default:
			chunks = append(chunks, Chunk{
				Type:  Other,
				Start: s.ByteOffset(i),
				Len:   s.ByteOffset(i+1) - s.ByteOffset(i),
			})
			i++
		}
	}

	return chunks
}

// readSyllable consumes one syllable starting at rune start. A closing
// tsek is consumed into the chunk span but left out of the cleaned
// syllable text. A single space continues the syllable when more
// syllable text follows it.
func (c *Chunker) readSyllable(s *chars.String, start int) (Chunk, int) {
	var syl strings.Builder
	i := start

scan:
	for i < s.Len() {
		cat := s.Category(i)
		switch {
		case cat.IsSyllablePart():
			syl.WriteString(s.Slice(i, i+1))
			i++
		case cat == chars.Tsek:
			i++
			break scan
		case cat == chars.Transparent && !c.spacesAsPunct:
			i++
			if i < s.Len() && s.Category(i).IsSyllablePart() {
				continue
			}
			break scan
		default:
			break scan
		}
	}

	return Chunk{
		Syllable: syl.String(),
		Type:     Text,
		Start:    s.ByteOffset(start),
		Len:      s.ByteOffset(i) - s.ByteOffset(start),
	}, i
}

// readRun consumes a maximal run of runes accepted by include.
// Whitespace joins the run, except in spaces-as-punct mode where it
// only joins punctuation runs.
func (c *Chunker) readRun(s *chars.String, start int, typ ChunkType, include func(chars.Category) bool) (Chunk, int) {
	i := start
	for i < s.Len() {
		cat := s.Category(i)
		if include(cat) || (cat == chars.Transparent && (!c.spacesAsPunct || typ == Punct)) {
			i++
			continue
		}
		break
	}
	return Chunk{
		Type:  typ,
		Start: s.ByteOffset(start),
		Len:   s.ByteOffset(i) - s.ByteOffset(start),
	}, i
}

// readSpace consumes a maximal whitespace run.
func (c *Chunker) readSpace(s *chars.String, start int) (Chunk, int) {
	i := start
	for i < s.Len() && s.Category(i) == chars.Transparent {
		i++
	}
	return Chunk{
		Type:  Space,
		Start: s.ByteOffset(start),
		Len:   s.ByteOffset(i) - s.ByteOffset(start),
	}, i
}

func isPunctCategory(cat chars.Category) bool {
	return cat == chars.NormalPunct || cat == chars.SpecialPunct
}

func isNumeralCategory(cat chars.Category) bool { return cat == chars.Numeral }

func isSymbolCategory(cat chars.Category) bool { return cat == chars.Symbol }

func isLatinCategory(cat chars.Category) bool { return cat == chars.Latin }

func isCjkCategory(cat chars.Category) bool { return cat == chars.Cjk }
