// Package trie implements the syllable-keyed dictionary index used for
// longest-match tokenization. A built Trie is immutable: lookups never
// touch node state, so one index can be shared across goroutines
// without locking, and AddWord publishes a new snapshot instead of
// editing nodes in place.
package trie

import (
	"errors"
	"strings"

	"github.com/OpenPecha/botok-go/chars"
)

// ErrEmptyForm reports an entry whose form has no syllables.
var ErrEmptyForm = errors.New("trie: entry form is empty")

// Affixation describes the particle attached to a generated inflected
// form.
type Affixation struct {
	// Len is the particle length in runes.
	Len int `json:"len"`
	// Aa records that a final འ was dropped from the host syllable
	// before the particle was attached.
	Aa bool `json:"aa"`
}

// Entry is one dictionary payload. A form with several readings stores
// one Entry per reading, in insertion order. An empty string or a nil
// Freq means the source gave no value for that field.
type Entry struct {
	// Form is the word as an ordered sequence of cleaned syllables.
	Form []string `json:"-"`

	POS   string `json:"pos,omitempty"`
	Lemma string `json:"lemma,omitempty"`
	Sense string `json:"sense,omitempty"`

	// Freq is the corpus frequency used to rank homonyms.
	Freq *uint32 `json:"freq,omitempty"`

	// Skrt marks transliterated Sanskrit vocabulary.
	Skrt bool `json:"skrt,omitempty"`

	// Affixed marks an inflected variant generated from a base entry
	// rather than read from a source row.
	Affixed bool `json:"affixed,omitempty"`

	// Affixation is set on inflected variants.
	Affixation *Affixation `json:"-"`
}

// Freq returns a pointer to v, for building entries inline.
func Freq(v uint32) *uint32 {
	return &v
}

type node struct {
	children map[string]*node
	entries  []Entry
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// clone copies the node one level deep: the children map and the entry
// slice are copied so the clone can be rewired, while the child nodes
// themselves stay shared with the original.
func (n *node) clone() *node {
	c := &node{
		children: make(map[string]*node, len(n.children)),
		entries:  append([]Entry(nil), n.entries...),
	}
	for syl, child := range n.children {
		c.children[syl] = child
	}
	return c
}

// insert adds e below root, creating nodes as needed, and reports
// whether the terminal node became a word for the first time.
func insert(root *node, e Entry) bool {
	n := root
	for _, syl := range e.Form {
		child, ok := n.children[syl]
		if !ok {
			child = newNode()
			n.children[syl] = child
		}
		n = child
	}
	wasWord := len(n.entries) > 0
	n.entries = append(n.entries, e)
	return !wasWord
}

// Trie is the dictionary index. Obtain one through Build or a Builder.
type Trie struct {
	root *node
	size int
}

// Build constructs an index from entries. Entries with an empty form
// are skipped and counted in the report rather than failing the build,
// so a partially valid dictionary still yields a usable index.
func Build(entries []Entry) (*Trie, LoadReport) {
	var rep LoadReport
	root := newNode()
	size := 0
	for _, e := range entries {
		if len(e.Form) == 0 {
			rep.Skipped++
			continue
		}
		if insert(root, e) {
			size++
		}
		rep.Loaded++
	}
	return &Trie{root: root, size: size}, rep
}

// Len returns the number of distinct word forms in the index.
func (t *Trie) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Contains reports whether the exact syllable sequence is a word.
func (t *Trie) Contains(form []string) bool {
	return len(t.Entries(form)) > 0
}

// Entries returns the payloads stored for the exact form, in insertion
// order, or nil when the form is not a word. The returned slice is
// shared with the index and must not be modified.
func (t *Trie) Entries(form []string) []Entry {
	if t == nil || t.root == nil || len(form) == 0 {
		return nil
	}
	n := t.root
	for _, syl := range form {
		child, ok := n.children[syl]
		if !ok {
			return nil
		}
		n = child
	}
	return n.entries
}

// WalkPrefix matches the longest dictionary word starting at
// syls[start]. It returns the match length in syllables and the
// payloads of the deepest terminal node reached; a depth of zero means
// no word starts there. The walk stops as soon as no edge matches the
// next syllable, so its cost is bounded by the longest form in the
// index. The returned slice is shared and must not be modified.
func (t *Trie) WalkPrefix(syls []string, start int) (int, []Entry) {
	if t == nil || t.root == nil || start < 0 || start >= len(syls) {
		return 0, nil
	}

	n := t.root
	depth := 0
	var entries []Entry
	for i := start; i < len(syls); i++ {
		child, ok := n.children[syls[i]]
		if !ok {
			break
		}
		n = child
		if len(child.entries) > 0 {
			depth = i - start + 1
			entries = child.entries
		}
	}
	return depth, entries
}

// AddWord returns a new index that also contains e. The receiver is
// never modified: nodes along the new word's path are cloned and every
// other branch is shared, so lookups running against the old snapshot
// are unaffected.
func (t *Trie) AddWord(e Entry) (*Trie, error) {
	if len(e.Form) == 0 {
		return nil, ErrEmptyForm
	}

	var root *node
	if t == nil || t.root == nil {
		root = newNode()
	} else {
		root = t.root.clone()
	}

	n := root
	for _, syl := range e.Form {
		child, ok := n.children[syl]
		if ok {
			child = child.clone()
		} else {
			child = newNode()
		}
		n.children[syl] = child
		n = child
	}

	size := t.Len()
	if len(n.entries) == 0 {
		size++
	}
	n.entries = append(n.entries, e)

	return &Trie{root: root, size: size}, nil
}

// Select picks the winning payload among homonyms: highest frequency
// wins, a missing frequency counts as zero, and ties keep the entry
// that was inserted first.
func Select(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if freqValue(e.Freq) > freqValue(best.Freq) {
			best = e
		}
	}
	return best, true
}

func freqValue(f *uint32) uint32 {
	if f == nil {
		return 0
	}
	return *f
}

// ParseForm splits a written form into its cleaned syllables, dropping
// the empty segments left by doubled or trailing tseks.
func ParseForm(form string) []string {
	parts := strings.Split(form, string(chars.TsekRune))
	syls := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			syls = append(syls, p)
		}
	}
	return syls
}
