// Package syllable provides the particle affix tables used to generate
// inflected word forms and to recognize affixed particles in tokens.
package syllable

import (
	"strings"

	"github.com/OpenPecha/botok-go/chars"
)

// Affix is a particle that can attach to the last syllable of a word.
type Affix struct {
	// Text is the particle as written.
	Text string
	// Len is the particle length in runes.
	Len int
	// Kind is the grammatical reading of the particle.
	Kind string
}

// Affixes lists every attachable particle. The order is fixed so that
// generated inflections are deterministic.
var Affixes = []Affix{
	{Text: "ར", Len: 1, Kind: "la"},
	{Text: "ས", Len: 1, Kind: "gis"},
	{Text: "འི", Len: 2, Kind: "gi"},
	{Text: "འམ", Len: 2, Kind: "am"},
	{Text: "འང", Len: 2, Kind: "ang"},
	{Text: "འོ", Len: 2, Kind: "o"},
	{Text: "འིའོ", Len: 4, Kind: "gi+o"},
	{Text: "འིའམ", Len: 4, Kind: "gi+am"},
	{Text: "འིའང", Len: 4, Kind: "gi+ang"},
	{Text: "འོའམ", Len: 4, Kind: "o+am"},
	{Text: "འོའང", Len: 4, Kind: "o+ang"},
}

// nonAffixableEndings are closing suffixes after which no particle can
// attach. A syllable consisting of nothing but the ending itself does
// not count.
var nonAffixableEndings = []string{"ར", "ས", "འི", "འོ", "མ", "ང"}

// dagdra are the pa/po/ba/bo particles, in their tsek-terminated form.
var dagdra = []string{"པ་", "པོ་", "བ་", "བོ་"}

// Affixable reports whether a particle may attach to syl.
func Affixable(syl string) bool {
	for _, ending := range nonAffixableEndings {
		if len(syl) > len(ending) && strings.HasSuffix(syl, ending) {
			return false
		}
	}
	return true
}

// Affixed is one generated inflection of a syllable.
type Affixed struct {
	// Form is the inflected syllable text.
	Form string
	// Len is the affix length in runes.
	Len int
	// Kind is the grammatical reading of the attached particle.
	Kind string
	// DroppedAa records that a final འ was removed before attaching.
	DroppedAa bool
}

// AllAffixed generates every inflected form of syl, one per entry in
// Affixes. A trailing འ is dropped before attaching (the particle
// carries it instead), which is recorded in DroppedAa.
func AllAffixed(syl string) []Affixed {
	base := syl
	droppedAa := false
	if r := []rune(syl); len(r) > 1 && r[len(r)-1] == 'འ' {
		base = string(r[:len(r)-1])
		droppedAa = true
	}

	forms := make([]Affixed, 0, len(Affixes))
	for _, a := range Affixes {
		forms = append(forms, Affixed{
			Form:      base + a.Text,
			Len:       a.Len,
			Kind:      a.Kind,
			DroppedAa: droppedAa,
		})
	}
	return forms
}

// IsDagdra reports whether text is one of the pa/po/ba/bo particles.
// A missing trailing tsek is tolerated.
func IsDagdra(text string) bool {
	if !strings.HasSuffix(text, string(chars.TsekRune)) {
		text += string(chars.TsekRune)
	}
	for _, d := range dagdra {
		if text == d {
			return true
		}
	}
	return false
}
