// Package runtime provides the character classifier, rune streams and
// prefilters used by the upat matcher.
package runtime

import "unicode"

// EOF is the rune reported for end of input. It is never a member of
// any class.
const EOF rune = -1

// IsEOF reports whether r is the end-of-input marker.
func IsEOF(r rune) bool { return r == EOF }

// IsAlpha reports whether r is alphabetic: a letter or a combining mark.
func IsAlpha(r rune) bool { return unicode.IsLetter(r) || unicode.IsMark(r) }

// IsLetter reports whether r is a Unicode letter.
func IsLetter(r rune) bool { return unicode.IsLetter(r) }

// IsDigit reports whether r is a decimal digit.
func IsDigit(r rune) bool { return unicode.IsDigit(r) }

// IsUpper reports whether r is an upper case letter.
func IsUpper(r rune) bool { return unicode.IsUpper(r) }

// IsLower reports whether r is a lower case letter.
func IsLower(r rune) bool { return unicode.IsLower(r) }

// IsHex reports whether r is an ASCII hexadecimal digit.
func IsHex(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

// IsBlank reports whether r is a space or a tab.
func IsBlank(r rune) bool { return r == ' ' || r == '\t' }

// IsNewline reports whether r is a line feed or carriage return.
func IsNewline(r rune) bool { return r == '\n' || r == '\r' }

// IsWordChar reports whether r is a letter, a digit or '_'.
func IsWordChar(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

// IsIdentifierChar reports whether r may appear inside an identifier:
// word characters, non-spacing and spacing marks, connector punctuation.
func IsIdentifierChar(r rune) bool {
	return IsWordChar(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
}

// IsCombining reports whether r is a combining mark.
func IsCombining(r rune) bool { return unicode.IsMark(r) }

// IsBracket reports whether r is one of ()[]{}<>.
func IsBracket(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', '<', '>':
		return true
	}
	return false
}

// classBitmap is a 256-bit membership table for Latin-1 runes.
// Each bit represents one rune value (0-255).
type classBitmap [4]uint64

func (b *classBitmap) contains(r rune) bool {
	return (b[r>>6] & (1 << (r & 63))) != 0
}

func (b *classBitmap) set(r rune) {
	b[r>>6] |= 1 << (r & 63)
}

// metaClass describes one meta-class letter.
type metaClass struct {
	name  string
	pred  func(rune) bool
	latin classBitmap // Pre-computed membership for r < 256
	// re2 is the class body in RE2 bracket syntax, exact for the
	// predicate above. Used to translate patterns for coregex.
	re2 string
}

var classes = map[rune]*metaClass{
	'a': {name: "alpha", pred: IsAlpha, re2: `\p{L}\p{M}`},
	'L': {name: "letter", pred: IsLetter, re2: `\p{L}`},
	'd': {name: "digit", pred: IsDigit, re2: `\p{Nd}`},
	'u': {name: "upper", pred: IsUpper, re2: `\p{Lu}`},
	'l': {name: "lower", pred: IsLower, re2: `\p{Ll}`},
	'x': {name: "hex", pred: IsHex, re2: `0-9A-Fa-f`},
	's': {name: "blank", pred: IsBlank, re2: ` \t`},
	'n': {name: "newline", pred: IsNewline, re2: `\n\r`},
	'w': {name: "word", pred: IsWordChar, re2: `\p{L}\p{Nd}_`},
	'i': {name: "identifier", pred: IsIdentifierChar, re2: `\p{L}\p{Nd}\p{Mn}\p{Mc}\p{Pc}`},
	'c': {name: "combining", pred: IsCombining, re2: `\p{M}`},
	'b': {name: "bracket", pred: IsBracket, re2: `()\[\]{}<>`},
}

func init() {
	for _, c := range classes {
		for r := rune(0); r < 256; r++ {
			if c.pred(r) {
				c.latin.set(r)
			}
		}
	}
}

// IsClassLetter reports whether letter names a meta-class.
func IsClassLetter(letter rune) bool {
	_, ok := classes[letter]
	return ok
}

// ClassName returns the descriptive name of a meta-class letter,
// or "" if the letter is unknown.
func ClassName(letter rune) string {
	if c, ok := classes[letter]; ok {
		return c.name
	}
	return ""
}

// Classify reports whether r belongs to the meta-class named by letter.
// Unknown letters and EOF never match.
func Classify(letter, r rune) bool {
	c, ok := classes[letter]
	if !ok || r < 0 {
		return false
	}
	if r < 256 {
		return c.latin.contains(r)
	}
	return c.pred(r)
}

// classRE2 returns the RE2 bracket body of a meta-class.
func classRE2(letter rune) (string, bool) {
	c, ok := classes[letter]
	if !ok {
		return "", false
	}
	return c.re2, true
}
