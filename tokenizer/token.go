package tokenizer

import (
	"strings"

	"github.com/OpenPecha/botok-go/chars"
	"github.com/OpenPecha/botok-go/chunker"
	"github.com/OpenPecha/botok-go/trie"
)

// Token is one unit of tokenized output. Its byte span always covers a
// contiguous slice of the tokenized text; concatenating the Text of
// every token reassembles that text exactly.
type Token struct {
	// Text is the raw slice of the input covered by the token.
	Text string `json:"text"`
	// Start is the byte offset of Text in the input.
	Start int `json:"start"`
	// Len is the byte length of Text.
	Len int `json:"len"`
	// Type is the coarse category of the chunk the token came from.
	Type chunker.ChunkType `json:"chunk_type"`

	// POS, Lemma and Freq come from the selected dictionary reading.
	// Empty string or nil means the dictionary gave no value.
	POS   string  `json:"pos,omitempty"`
	Lemma string  `json:"lemma,omitempty"`
	Freq  *uint32 `json:"freq,omitempty"`

	// Syls are the cleaned constituent syllables of a word token.
	Syls []string `json:"syls,omitempty"`

	// Senses holds every dictionary reading of the matched form, in
	// insertion order unless reordered by PickSenses.
	Senses []trie.Entry `json:"senses,omitempty"`

	// Affixation is set when the matched form carries an attached
	// particle.
	Affixation *trie.Affixation `json:"affixation,omitempty"`

	// IsAffix marks a particle token produced by SplitAffixed.
	IsAffix bool `json:"is_affix,omitempty"`
	// IsAffixHost marks the word a particle was split from.
	IsAffixHost bool `json:"is_affix_host,omitempty"`
	// IsSkrt marks transliterated Sanskrit vocabulary.
	IsSkrt bool `json:"is_skrt,omitempty"`
	// HasMergedDagdra is set when a pa/po/ba/bo particle was merged
	// into the token.
	HasMergedDagdra bool `json:"has_merged_dagdra,omitempty"`
}

// CleanedText returns the syllables joined by tsek, with a trailing
// tsek unless the token is an affix host (the split-off particle
// carries the tsek instead). Non-word tokens return "".
func (t *Token) CleanedText() string {
	if len(t.Syls) == 0 {
		return ""
	}
	cleaned := strings.Join(t.Syls, string(chars.TsekRune))
	if t.IsAffixHost && !t.IsAffix {
		return cleaned
	}
	return cleaned + string(chars.TsekRune)
}

// IsWord reports whether the token is Tibetan text with at least one
// syllable.
func (t *Token) IsWord() bool {
	return t.Type == chunker.Text && len(t.Syls) > 0
}

// IsPunct reports whether the token is punctuation.
func (t *Token) IsPunct() bool {
	return t.Type == chunker.Punct
}

// Map returns the token as a generic key-value view using the JSON
// field names. Absent optional fields are left out.
func (t *Token) Map() map[string]any {
	m := map[string]any{
		"text":       t.Text,
		"start":      t.Start,
		"len":        t.Len,
		"chunk_type": t.Type.String(),
	}
	if t.POS != "" {
		m["pos"] = t.POS
	}
	if t.Lemma != "" {
		m["lemma"] = t.Lemma
	}
	if t.Freq != nil {
		m["freq"] = *t.Freq
	}
	if len(t.Syls) > 0 {
		m["syls"] = t.Syls
	}
	if t.IsAffix {
		m["is_affix"] = true
	}
	if t.IsAffixHost {
		m["is_affix_host"] = true
	}
	if t.IsSkrt {
		m["is_skrt"] = true
	}
	if t.HasMergedDagdra {
		m["has_merged_dagdra"] = true
	}
	return m
}

// String formats the token as text/POS for debug output.
func (t *Token) String() string {
	if t.POS == "" {
		return t.Text
	}
	return t.Text + "/" + t.POS
}
