// Package unicodelib provides small Unicode inspection helpers used by the
// REPL's :uni command: code point formatting, character names with code
// point labels, classification predicates, and normalization.
package unicodelib

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

// MaxRune is the highest valid Unicode code point.
const MaxRune = 0x10FFFF

// Planes holds the ordinal value of the first code point in each of the 17
// Unicode planes: U+0000, U+10000, U+20000, ... U+100000.
var Planes = planes()

func planes() [17]rune {
	var p [17]rune
	for i := range p {
		p[i] = rune(i) << 16
	}
	return p
}

// Codepoint formats r in the conventional U+XXXX notation.
//
//	Codepoint('z') == "U+007A"
//	Codepoint(' ') == "U+0020"
func Codepoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

// IsSurrogate reports whether r is a surrogate code point. Surrogates are
// not valid in UTF-8 encoded strings.
func IsSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDFFF
}

// IsNoncharacter reports whether r is one of the 66 Unicode noncharacters:
// the contiguous block U+FDD0..U+FDEF plus the last two code points of each
// of the 17 planes. Noncharacters are valid in Unicode strings.
func IsNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	return r >= 0 && r <= MaxRune && (r&0xFFFF == 0xFFFE || r&0xFFFF == 0xFFFF)
}

// IsValid reports whether s consists entirely of valid UTF-8. Surrogate
// code points cannot be encoded in valid UTF-8, so a valid string contains
// none.
func IsValid(s string) bool {
	return utf8.ValidString(s)
}

// Name returns the Unicode character name of r, or a Code Point Label of
// the form <kind-XXXX> for characters with no name (controls,
// noncharacters, reserved, private-use and surrogate code points).
func Name(r rune) string {
	name := runenames.Name(r)
	if name != "" && !strings.HasPrefix(name, "<") {
		return name
	}
	var kind string
	switch {
	case unicode.Is(unicode.Cc, r):
		kind = "control"
	case unicode.Is(unicode.Co, r):
		kind = "private-use"
	case IsSurrogate(r):
		kind = "surrogate"
	case IsNoncharacter(r):
		kind = "noncharacter"
	default:
		kind = "reserved"
	}
	return fmt.Sprintf("<%s-%04X>", kind, r)
}

// Characterise classifies s by the widest code point it contains:
// "empty", "ascii", "latin1", "narrow" (BMP) or "wide".
func Characterise(s string) string {
	if s == "" {
		return "empty"
	}
	var max rune
	for _, r := range s {
		if r > max {
			max = r
		}
	}
	switch {
	case max <= 0x7F:
		return "ascii"
	case max <= 0xFF:
		return "latin1"
	case max <= 0xFFFF:
		return "narrow"
	default:
		return "wide"
	}
}

// StringAsHex renders the code points of s as space-separated 4-digit hex.
//
//	StringAsHex("a-z") == "0061 002D 007A"
func StringAsHex(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("%04X", r))
	}
	return strings.Join(parts, " ")
}

// BytesAsHex renders the bytes of b as space-separated 2-digit hex.
//
//	BytesAsHex([]byte("a-z")) == "61 2D 7A"
func BytesAsHex(b []byte) string {
	parts := make([]string, 0, len(b))
	for _, c := range b {
		parts = append(parts, fmt.Sprintf("%02X", c))
	}
	return strings.Join(parts, " ")
}

// Compose returns s with its characters composed: NFKC when compat is true,
// NFC otherwise.
func Compose(s string, compat bool) string {
	if compat {
		return norm.NFKC.String(s)
	}
	return norm.NFC.String(s)
}

// Decompose returns s with its characters decomposed: NFKD when compat is
// true, NFD otherwise.
func Decompose(s string, compat bool) string {
	if compat {
		return norm.NFKD.String(s)
	}
	return norm.NFD.String(s)
}
