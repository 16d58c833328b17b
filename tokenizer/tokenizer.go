// Package tokenizer implements dictionary-backed longest-match
// tokenization of Tibetan text.
//
// The engine walks the syllable stream produced by the chunker against
// a trie of dictionary forms, always taking the deepest match and
// falling back to single syllables where no word starts. Token byte
// spans partition the tokenized text exactly.
package tokenizer

import (
	"sync/atomic"

	"golang.org/x/text/unicode/norm"

	"github.com/OpenPecha/botok-go/chunker"
	"github.com/OpenPecha/botok-go/trie"
)

// Options control normalization, chunking and post-processing around
// the core longest-match pass.
type Options struct {
	// SplitAffixes splits tokens that matched an inflected form into
	// a host token and a particle token.
	SplitAffixes bool
	// MergeDagdra merges pa/po/ba/bo particle tokens into the
	// preceding word.
	MergeDagdra bool
	// FillLemmas gives word tokens without a lemma their cleaned text.
	FillLemmas bool
	// PickSenses orders each token's senses by frequency and fills a
	// missing POS from the best sense.
	PickSenses bool
	// SpacesAsPunct chunks whitespace runs as punctuation and breaks
	// syllables at spaces.
	SpacesAsPunct bool
	// Normalize applies Unicode NFC normalization before chunking.
	// Byte offsets then refer to the normalized text, not the input.
	Normalize bool
}

// DefaultOptions is the full post-processing configuration:
// everything on except SpacesAsPunct.
func DefaultOptions() Options {
	return Options{
		SplitAffixes: true,
		MergeDagdra:  true,
		FillLemmas:   true,
		PickSenses:   true,
		Normalize:    true,
	}
}

// Tokenizer segments text against a dictionary index. It is safe for
// concurrent use: the index is an immutable snapshot behind an atomic
// pointer, and AddWord publishes a new snapshot without disturbing
// tokenize calls already running.
type Tokenizer struct {
	index atomic.Pointer[trie.Trie]
}

// New returns a tokenizer backed by idx. A nil index is an empty
// dictionary: every syllable falls back to a single-syllable token, as
// SimpleTokenize would produce.
func New(idx *trie.Trie) *Tokenizer {
	t := &Tokenizer{}
	t.index.Store(idx)
	return t
}

// Index returns the current dictionary snapshot.
func (t *Tokenizer) Index() *trie.Trie {
	return t.index.Load()
}

// AddWord inserts a word into the dictionary at runtime. The updated
// index is published atomically; in-flight tokenize calls keep the
// snapshot they started with.
func (t *Tokenizer) AddWord(e trie.Entry) error {
	for {
		old := t.index.Load()
		next, err := old.AddWord(e)
		if err != nil {
			return err
		}
		if t.index.CompareAndSwap(old, next) {
			return nil
		}
	}
}

// Tokenize segments text with the current dictionary and no
// post-processing. Token spans partition the input bytes exactly and
// concatenating token texts reconstructs the input.
func (t *Tokenizer) Tokenize(text string) []Token {
	return t.tokenizeChunks(chunker.Split(text), text)
}

// TokenizeWithOptions segments text and applies the requested
// normalization and post-processing.
func (t *Tokenizer) TokenizeWithOptions(text string, opts Options) []Token {
	if opts.Normalize {
		text = norm.NFC.String(text)
	}

	var chunks []chunker.Chunk
	if opts.SpacesAsPunct {
		chunks = chunker.New(chunker.WithSpacesAsPunct()).Split(text)
	} else {
		chunks = chunker.Split(text)
	}

	tokens := t.tokenizeChunks(chunks, text)

	if opts.SplitAffixes {
		tokens = SplitAffixed(tokens)
	}
	if opts.MergeDagdra {
		tokens = MergeDagdra(tokens)
	}
	if opts.FillLemmas {
		FillLemmas(tokens)
	}
	if opts.PickSenses {
		PickSenses(tokens)
	}
	return tokens
}

// tokenizeChunks runs the longest-match pass over the chunk sequence.
// Non-syllable chunks pass through verbatim; runs of adjacent syllable
// chunks are matched against the index.
func (t *Tokenizer) tokenizeChunks(chunks []chunker.Chunk, text string) []Token {
	idx := t.index.Load()

	tokens := make([]Token, 0, len(chunks))
	for i := 0; i < len(chunks); {
		if chunks[i].Syllable == "" {
			tokens = append(tokens, chunkToken(text, chunks[i]))
			i++
			continue
		}

		// Maximal run of syllable chunks; matches never cross into a
		// non-syllable chunk.
		j := i
		for j < len(chunks) && chunks[j].Syllable != "" {
			j++
		}
		run := chunks[i:j]
		syls := make([]string, len(run))
		for k, c := range run {
			syls[k] = c.Syllable
		}

		for k := 0; k < len(run); {
			depth, entries := idx.WalkPrefix(syls, k)
			if depth == 0 {
				tokens = append(tokens, fallbackToken(text, run[k]))
				k++
				continue
			}
			tokens = append(tokens, matchToken(text, run[k:k+depth], syls[k:k+depth], entries))
			k += depth
		}
		i = j
	}
	return tokens
}

// chunkToken passes a non-syllable chunk through verbatim.
func chunkToken(text string, c chunker.Chunk) Token {
	return Token{
		Text:  text[c.Start : c.Start+c.Len],
		Start: c.Start,
		Len:   c.Len,
		Type:  c.Type,
	}
}

// fallbackToken wraps a single syllable that no dictionary word starts
// at. POS, lemma and freq stay absent.
func fallbackToken(text string, c chunker.Chunk) Token {
	return Token{
		Text:  text[c.Start : c.Start+c.Len],
		Start: c.Start,
		Len:   c.Len,
		Type:  chunker.Text,
		Syls:  []string{c.Syllable},
	}
}

// matchToken builds the token for a dictionary match spanning the
// given chunks. The span is the union of the chunk spans, so trailing
// tseks and absorbed whitespace stay inside the token.
func matchToken(text string, matched []chunker.Chunk, syls []string, entries []trie.Entry) Token {
	first, last := matched[0], matched[len(matched)-1]
	start := first.Start
	end := last.Start + last.Len

	tok := Token{
		Text:   text[start:end],
		Start:  start,
		Len:    end - start,
		Type:   chunker.Text,
		Syls:   append([]string(nil), syls...),
		Senses: append([]trie.Entry(nil), entries...),
	}
	if best, ok := trie.Select(entries); ok {
		tok.POS = best.POS
		tok.Lemma = best.Lemma
		tok.Freq = best.Freq
		tok.IsSkrt = best.Skrt
		tok.Affixation = best.Affixation
	}
	return tok
}

// SimpleTokenize segments text without any dictionary: one token per
// chunk, carrying only spans, types and syllables.
func SimpleTokenize(text string) []Token {
	chunks := chunker.Split(text)
	tokens := make([]Token, 0, len(chunks))
	for _, c := range chunks {
		tok := chunkToken(text, c)
		if c.Syllable != "" {
			tok.Syls = []string{c.Syllable}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
