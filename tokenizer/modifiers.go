package tokenizer

import (
	"sort"
	"unicode/utf8"

	"github.com/OpenPecha/botok-go/chars"
	"github.com/OpenPecha/botok-go/chunker"
	"github.com/OpenPecha/botok-go/syllable"
)

// SplitAffixed splits every token that matched an inflected dictionary
// form into a host token and a particle token. The split point is the
// particle's first rune inside the original token text, so the two
// spans reassemble the token's bytes exactly and the overall partition
// survives.
func SplitAffixed(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		host, particle, ok := splitAffix(tok)
		if !ok {
			out = append(out, tok)
			continue
		}
		out = append(out, host, particle)
	}
	return out
}

// splitAffix splits tok when it unambiguously carries an attached
// particle: affixation info present, every dictionary reading is an
// inflection, and the host keeps at least one syllable.
func splitAffix(tok Token) (Token, Token, bool) {
	if tok.Affixation == nil || len(tok.Syls) < 2 {
		return Token{}, Token{}, false
	}
	for _, s := range tok.Senses {
		if !s.Affixed {
			// Some reading is a plain word; leave the token whole.
			return Token{}, Token{}, false
		}
	}

	affixLen := tok.Affixation.Len
	lastSyl := []rune(tok.Syls[len(tok.Syls)-1])
	if len(lastSyl) < affixLen {
		return Token{}, Token{}, false
	}

	split, ok := affixByteOffset(tok.Text, affixLen)
	if !ok {
		return Token{}, Token{}, false
	}

	hostSyls := make([]string, 0, len(tok.Syls))
	hostSyls = append(hostSyls, tok.Syls[:len(tok.Syls)-1]...)
	if rest := string(lastSyl[:len(lastSyl)-affixLen]); rest != "" {
		hostSyls = append(hostSyls, rest)
	}

	host := Token{
		Text:        tok.Text[:split],
		Start:       tok.Start,
		Len:         split,
		Type:        chunker.Text,
		POS:         tok.POS,
		Lemma:       tok.Lemma,
		Freq:        tok.Freq,
		Syls:        hostSyls,
		Senses:      tok.Senses,
		IsSkrt:      tok.IsSkrt,
		IsAffixHost: true,
	}
	particle := Token{
		Text:    tok.Text[split:],
		Start:   tok.Start + split,
		Len:     tok.Len - split,
		Type:    chunker.Text,
		POS:     "PART",
		Syls:    []string{string(lastSyl[len(lastSyl)-affixLen:])},
		IsAffix: true,
	}
	return host, particle, true
}

// affixByteOffset returns the byte offset of the n-th syllable-part
// rune counted from the end of text. Trailing tseks and whitespace
// absorbed into the token are skipped, so the offset lands on the
// particle's first rune.
func affixByteOffset(text string, n int) (int, bool) {
	count := 0
	for i := len(text); i > 0; {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		i -= size
		if chars.Classify(r).IsSyllablePart() {
			count++
			if count == n {
				return i, true
			}
		}
	}
	return 0, false
}

// MergeDagdra merges pa/po/ba/bo particle tokens into the preceding
// word token. A merged token is checked again, so chains of particles
// collapse into one word. The merged span is the union of the two
// spans.
func MergeDagdra(tokens []Token) []Token {
	if len(tokens) <= 1 {
		return tokens
	}
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if len(out) > 0 {
			prev := &out[len(out)-1]
			if prev.Type == chunker.Text && tok.Type == chunker.Text &&
				syllable.IsDagdra(tok.CleanedText()) {
				*prev = mergeTokens(*prev, tok)
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

// mergeTokens folds the dagdra particle into the preceding word. The
// merged token keeps the word's POS and freq and takes its cleaned
// text as lemma.
func mergeTokens(first, second Token) Token {
	merged := Token{
		Text:            first.Text + second.Text,
		Start:           first.Start,
		Len:             first.Len + second.Len,
		Type:            chunker.Text,
		POS:             first.POS,
		Freq:            first.Freq,
		Syls:            append(append([]string(nil), first.Syls...), second.Syls...),
		HasMergedDagdra: true,
	}
	merged.Lemma = merged.CleanedText()
	return merged
}

// FillLemmas gives every word token without a lemma its cleaned text.
func FillLemmas(tokens []Token) {
	for i := range tokens {
		if tokens[i].Lemma == "" && len(tokens[i].Syls) > 0 {
			tokens[i].Lemma = tokens[i].CleanedText()
		}
	}
}

// PickSenses orders each token's senses by descending frequency,
// keeping insertion order among equals, and fills a missing POS from
// the best sense.
func PickSenses(tokens []Token) {
	for i := range tokens {
		tok := &tokens[i]
		if len(tok.Senses) <= 1 {
			continue
		}
		sort.SliceStable(tok.Senses, func(a, b int) bool {
			return freqOrZero(tok.Senses[a].Freq) > freqOrZero(tok.Senses[b].Freq)
		})
		if tok.POS == "" {
			tok.POS = tok.Senses[0].POS
		}
	}
}

func freqOrZero(f *uint32) uint32 {
	if f == nil {
		return 0
	}
	return *f
}
