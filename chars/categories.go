// Package chars classifies runes of Tibetan text into the categories
// the chunker and tokenizer operate on. Classification is total: every
// rune maps to exactly one Category.
package chars

// Category identifies the role a rune plays in Tibetan text.
type Category int

const (
	// Other is any rune not covered by a more specific category.
	Other Category = iota
	// Cons is a Tibetan consonant.
	Cons
	// SubCons is a subjoined consonant, stacked below another consonant.
	SubCons
	// Vow is a Tibetan vowel sign.
	Vow
	// Tsek is the syllable separator (་ or its non-breaking form).
	Tsek
	// NormalPunct is regular punctuation such as the shad (།).
	NormalPunct
	// SpecialPunct covers head marks and other ornamental punctuation.
	SpecialPunct
	// Numeral is a Tibetan digit.
	Numeral
	// Symbol covers astrological and other standalone signs.
	Symbol
	// InSylMark is a mark that occurs inside a syllable (anusvara etc.).
	InSylMark
	// SkrtCons is a consonant used only for transliterating Sanskrit.
	SkrtCons
	// SkrtSubCons is a subjoined Sanskrit consonant.
	SkrtSubCons
	// SkrtVow is a Sanskrit vowel sign.
	SkrtVow
	// SkrtLongVow is the visarga (ཿ).
	SkrtLongVow
	// Nfc is a precomposed codepoint that NFC normalization decomposes.
	Nfc
	// NonBoNonSkrt is a Tibetan-block rune transliterating a sound that
	// is neither Tibetan nor Sanskrit.
	NonBoNonSkrt
	// Transparent is whitespace, ignored inside syllables.
	Transparent
	// Latin is a rune from the Latin ranges (includes ASCII digits).
	Latin
	// Cjk is a rune from the common CJK blocks.
	Cjk
)

var categoryNames = map[Category]string{
	Other:        "OTHER",
	Cons:         "CONS",
	SubCons:      "SUB_CONS",
	Vow:          "VOW",
	Tsek:         "TSEK",
	NormalPunct:  "NORMAL_PUNCT",
	SpecialPunct: "SPECIAL_PUNCT",
	Numeral:      "NUMERAL",
	Symbol:       "SYMBOL",
	InSylMark:    "IN_SYL_MARK",
	SkrtCons:     "SKRT_CONS",
	SkrtSubCons:  "SKRT_SUB_CONS",
	SkrtVow:      "SKRT_VOW",
	SkrtLongVow:  "SKRT_LONG_VOW",
	Nfc:          "NFC",
	NonBoNonSkrt: "NON_BO_NON_SKRT",
	Transparent:  "TRANSPARENT",
	Latin:        "LATIN",
	Cjk:          "CJK",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "OTHER"
}

// IsSyllablePart reports whether a rune of this category belongs to the
// body of a syllable.
func (c Category) IsSyllablePart() bool {
	switch c {
	case Cons, SubCons, Vow, SkrtVow, SkrtCons, SkrtSubCons, SkrtLongVow,
		InSylMark, Nfc, NonBoNonSkrt:
		return true
	}
	return false
}

// IsTibetan reports whether the category belongs to the Tibetan script
// (everything except Latin, CJK and Other).
func (c Category) IsTibetan() bool {
	switch c {
	case Latin, Cjk, Other:
		return false
	}
	return true
}

// TsekRune is the intersyllabic tsek (U+0F0B).
const TsekRune = '་'

// Classify returns the Category of a single rune.
//
// Whitespace is checked first, then the Tibetan block (U+0F00..U+0FFF),
// then the Latin and CJK ranges. Anything left is Other.
func Classify(r rune) Category {
	if isTransparent(r) {
		return Transparent
	}
	if r >= 0x0F00 && r <= 0x0FFF {
		return classifyTibetan(r)
	}
	// Basic Latin through Combining Diacritical Marks, plus Latin
	// Extended Additional through the currency/letterlike blocks.
	// ASCII digits land here on purpose.
	if (r >= 0x0020 && r <= 0x036F) || (r >= 0x1E00 && r <= 0x20CF) {
		return Latin
	}
	if (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // Extension A
		(r >= 0x2E80 && r <= 0x2EFF) || // Radicals Supplement
		(r >= 0x3000 && r <= 0x303F) { // CJK Symbols and Punctuation
		return Cjk
	}
	return Other
}

// isTransparent reports whether r is a space-like rune that attaches to
// whatever chunk precedes it.
func isTransparent(r rune) bool {
	if r >= 0x2000 && r <= 0x200B {
		return true
	}
	switch r {
	case ' ', '\t', '\n', '\r',
		' ', // no-break space
		' ', // ogham space mark
		' ', // narrow no-break space
		' ', // medium mathematical space
		'　', // ideographic space
		'\uFEFF': // zero width no-break space
		return true
	}
	return false
}

// classifyTibetan maps a rune of the Tibetan block to its category.
// Unassigned codepoints come back as Other.
func classifyTibetan(r rune) Category {
	switch {
	case r == 0x0F00:
		// ༀ decomposes to ཨོཾ under NFKC.
		return Nfc
	case r <= 0x0F0A:
		return SpecialPunct
	case r <= 0x0F0C:
		// ་ and its non-breaking variant ༌.
		return Tsek
	case r <= 0x0F12:
		// Shad family: ། ༎ ༏ ༐ ༑ ༒.
		return NormalPunct
	case r == 0x0F14:
		// Gter tsheg ༔.
		return NormalPunct
	case r <= 0x0F1F:
		return Symbol
	case r <= 0x0F33:
		// Digits ༠..༩ and the half-digit signs.
		return Numeral
	case r == 0x0F35, r == 0x0F37, r == 0x0F39:
		// Combining marks that attach inside a syllable, including the
		// tsa-phru ༹ used for foreign sounds.
		return InSylMark
	case r <= 0x0F39:
		return Symbol
	case r <= 0x0F3D:
		// Paired brackets ༺ ༻ ༼ ༽.
		return NormalPunct
	case r <= 0x0F3F:
		return Symbol
	case r <= 0x0F6C:
		return classifyConsonant(r)
	case r < 0x0F71:
		return Other // unassigned
	case r <= 0x0FBC:
		return classifyVowelOrSubjoined(r)
	case r == 0x0FBD:
		return Other // unassigned
	case r <= 0x0FCF && r != 0x0FCD:
		return Symbol
	case r >= 0x0FD0 && r <= 0x0FD4:
		return SpecialPunct
	case r >= 0x0FD5 && r <= 0x0FD8:
		return Symbol
	case r == 0x0FD9 || r == 0x0FDA:
		// Annotation (mchan rtags) delimiters.
		return SpecialPunct
	}
	return Other
}

// classifyConsonant handles U+0F40..U+0F6C, the consonant run.
func classifyConsonant(r rune) Category {
	switch r {
	case 0x0F43, 0x0F4D, 0x0F52, 0x0F57, 0x0F5C, 0x0F69:
		// Precomposed gha, ddha, dha, bha, dzha, kssa.
		return Nfc
	case 0x0F4A, 0x0F4B, 0x0F4C, 0x0F4E, 0x0F65:
		// Retroflex series and ssa, Sanskrit only.
		return SkrtCons
	case 0x0F48:
		return Other // unassigned
	case 0x0F6B, 0x0F6C:
		// kka and rra, used for foreign loans.
		return NonBoNonSkrt
	}
	return Cons
}

// classifyVowelOrSubjoined handles U+0F71..U+0FBC: vowel signs, syllable
// marks and the subjoined consonant run.
func classifyVowelOrSubjoined(r rune) Category {
	switch {
	case r == 0x0F71:
		// Long a (achung), Sanskrit length mark.
		return SkrtVow
	case r == 0x0F72, r == 0x0F74, r == 0x0F7A, r == 0x0F7C:
		// The four Tibetan vowel signs i, u, e, o.
		return Vow
	case r == 0x0F73, r >= 0x0F75 && r <= 0x0F79:
		// Precomposed long and vocalic vowels.
		return Nfc
	case r == 0x0F7B, r == 0x0F7D, r == 0x0F80:
		// ai, au and the reversed i.
		return SkrtVow
	case r == 0x0F7E:
		// Anusvara ཾ.
		return InSylMark
	case r == 0x0F7F:
		// Visarga ཿ.
		return SkrtLongVow
	case r == 0x0F81:
		return Nfc
	case r >= 0x0F82 && r <= 0x0F87:
		// Candrabindu variants, halanta, paluta, yang/lci rtags.
		return InSylMark
	case r <= 0x0F8F:
		// Transliteration signs and their subjoined forms.
		return NonBoNonSkrt
	case r <= 0x0FB8:
		return classifySubjoined(r)
	case r == 0x0FB9:
		// Precomposed subjoined kssa.
		return Nfc
	default:
		// Fixed-form subjoined wa, ya, ra.
		return SkrtSubCons
	}
}

// classifySubjoined handles U+0F90..U+0FB8, the subjoined consonant run.
func classifySubjoined(r rune) Category {
	switch r {
	case 0x0F93, 0x0F9D, 0x0FA2, 0x0FA7, 0x0FAC:
		// Precomposed subjoined gha, ddha, dha, bha, dzha.
		return Nfc
	case 0x0F9A, 0x0F9B, 0x0F9C, 0x0F9E:
		// Subjoined retroflex series.
		return SkrtSubCons
	case 0x0FB0, 0x0FB5, 0x0FB8:
		// Subjoined achung, ssa and a.
		return SkrtSubCons
	case 0x0F98:
		return Other // unassigned
	}
	return SubCons
}
