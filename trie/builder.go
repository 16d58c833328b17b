package trie

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/OpenPecha/botok-go/syllable"
)

// LoadReport summarizes a dictionary load: how many source rows became
// entries and how many were skipped as malformed.
type LoadReport struct {
	Loaded  int
	Skipped int
}

// Builder accumulates dictionary entries and produces an immutable
// Trie. The zero value is ready to use. A Builder is not safe for
// concurrent use; build first, then share the Trie.
type Builder struct {
	root    *node
	size    int
	inflect bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithInflection makes the builder insert every affixed variant of
// each added form alongside the base form, so inflected words in
// running text match without their own dictionary rows.
func WithInflection() BuilderOption {
	return func(b *Builder) { b.inflect = true }
}

// NewBuilder returns an empty Builder with the given options applied.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{root: newNode()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Len returns the number of distinct word forms added so far.
func (b *Builder) Len() int {
	return b.size
}

// Add inserts one entry, plus its inflected variants when the builder
// was created WithInflection.
func (b *Builder) Add(e Entry) error {
	if len(e.Form) == 0 {
		return ErrEmptyForm
	}
	if b.root == nil {
		b.root = newNode()
	}

	b.insert(e)
	if b.inflect {
		b.addInflected(e)
	}
	return nil
}

func (b *Builder) insert(e Entry) {
	if insert(b.root, e) {
		b.size++
	}
}

// addInflected inserts one variant of e per affix particle, attached
// to the last syllable of the form.
func (b *Builder) addInflected(e Entry) {
	last := e.Form[len(e.Form)-1]
	for _, af := range syllable.AllAffixed(last) {
		form := make([]string, len(e.Form))
		copy(form, e.Form)
		form[len(form)-1] = af.Form

		variant := e
		variant.Form = form
		variant.Affixed = true
		variant.Affixation = &Affixation{Len: af.Len, Aa: af.DroppedAa}
		b.insert(variant)
	}
}

// LoadTSV reads dictionary rows from r. Each row is
// form<TAB>pos<TAB>lemma<TAB>sense<TAB>freq, with every column after
// the form optional and an unparseable freq treated as absent. Lines
// starting with # and blank lines are skipped silently; rows whose
// form has no syllables are skipped and counted. The returned error
// reports read failures only, never row content.
func (b *Builder) LoadTSV(r io.Reader) (LoadReport, error) {
	entries, rep, err := ParseTSV(r)
	if err != nil {
		return rep, err
	}
	for _, e := range entries {
		if err := b.Add(e); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// ParseTSV reads dictionary rows from r into entries, in row order,
// without inserting them anywhere. Row format and skip rules match
// LoadTSV. Callers that parse many files concurrently use this and
// feed the results into one Builder afterwards.
func ParseTSV(r io.Reader) ([]Entry, LoadReport, error) {
	var (
		entries []Entry
		rep     LoadReport
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		e, ok := parseRow(line)
		if !ok {
			rep.Skipped++
			continue
		}
		entries = append(entries, e)
		rep.Loaded++
	}
	if err := sc.Err(); err != nil {
		return entries, rep, fmt.Errorf("read dictionary: %w", err)
	}
	return entries, rep, nil
}

// parseRow parses one dictionary row into an Entry.
func parseRow(line string) (Entry, bool) {
	fields := strings.Split(line, "\t")

	form := ParseForm(strings.TrimSpace(fields[0]))
	if len(form) == 0 {
		return Entry{}, false
	}

	e := Entry{Form: form}
	if len(fields) > 1 {
		e.POS = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		e.Lemma = strings.TrimSpace(fields[2])
	}
	if len(fields) > 3 {
		e.Sense = strings.TrimSpace(fields[3])
	}
	if len(fields) > 4 {
		if v, err := strconv.ParseUint(strings.TrimSpace(fields[4]), 10, 32); err == nil {
			f := uint32(v)
			e.Freq = &f
		}
	}
	return e, true
}

// Deactivate removes every payload stored at the exact form, so the
// form stops matching as a word. Longer words passing through the same
// node keep working. It reports whether a word was removed.
func (b *Builder) Deactivate(form []string) bool {
	if b.root == nil || len(form) == 0 {
		return false
	}
	n := b.root
	for _, syl := range form {
		child, ok := n.children[syl]
		if !ok {
			return false
		}
		n = child
	}
	if len(n.entries) == 0 {
		return false
	}
	n.entries = nil
	b.size--
	return true
}

// Build returns the accumulated index and resets the builder to empty.
// The returned Trie never changes afterwards; anything added to the
// builder later goes into a fresh index.
func (b *Builder) Build() *Trie {
	if b.root == nil {
		b.root = newNode()
	}
	t := &Trie{root: b.root, size: b.size}
	b.root = newNode()
	b.size = 0
	return t
}
