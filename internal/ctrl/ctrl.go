// Package ctrl is a small registry of the C0 and C1 terminal control codes,
// with lookup by ordinal, caret/ESC code, or acronym.
//
// Descriptions are mostly taken from the UnicodeData.txt file:
//
//	http://www.unicode.org/Public/UNIDATA/UnicodeData.txt
//
// and the Wikipedia page on C0 and C1 control codes, with a few minor
// adjustments. Acronyms are taken from the Wikipedia page.
package ctrl

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned by the lookup functions when no control code
// matches the given key.
var ErrNotFound = errors.New("control code not found")

// Code describes a single control code.
type Code struct {
	Acronym     string
	Ordinal     int
	Code        string // caret notation for C0, ESC- notation for C1
	Description string
}

// Symbol returns the Unicode control picture for the code, or an empty
// string when none exists.
func (c Code) Symbol() string {
	switch {
	case c.Ordinal >= 0 && c.Ordinal <= 32:
		return string(rune(0x2400 + c.Ordinal))
	case c.Ordinal == 127:
		return string(rune(0x2421))
	}
	return ""
}

// Char returns the raw control character.
func (c Code) Char() string {
	return string(rune(c.Ordinal))
}

// CaretCode returns the conventional notation for ordinal n: caret notation
// for C0 codes, ESC- notation for C1 codes, and an empty string otherwise.
func CaretCode(n int) string {
	switch {
	case n >= 0 && n <= 31:
		return fmt.Sprintf("^%c", rune('@'+n))
	case n >= 128 && n <= 159:
		return fmt.Sprintf("ESC-%c", rune('@'+n-128))
	case n == 127:
		return "^?"
	}
	return ""
}

// C0 holds the C0 control codes keyed by acronym. SP (32) and DEL (127) are
// not strictly part of the C0 standard but are commonly included.
var C0 = codeMap([]Code{
	{"NUL", 0, "^@", "Null"},
	{"SOH", 1, "^A", "Start of Heading"},
	{"STX", 2, "^B", "Start of Text"},
	{"ETX", 3, "^C", "End of Text"},
	{"EOT", 4, "^D", "End of Transmission"},
	{"ENQ", 5, "^E", "Enquiry"},
	{"ACK", 6, "^F", "Acknowledge"},
	{"BEL", 7, "^G", "Bell"},
	{"BS", 8, "^H", "Backspace"},
	{"HT", 9, "^I", "Horizontal Tab (Character Tabulation)"},
	{"LF", 10, "^J", "Linefeed (LF) (Newline)"},
	{"VT", 11, "^K", "Vertical Tab (Line Tabulation)"},
	{"FF", 12, "^L", "Formfeed (FF)"},
	{"CR", 13, "^M", "Carriage Return (CR)"},
	{"SO", 14, "^N", "Shift Out"},
	{"SI", 15, "^O", "Shift In"},
	{"DLE", 16, "^P", "Data Link Escape"},
	{"DC1", 17, "^Q", "Device Control 1 (XON)"},
	{"DC2", 18, "^R", "Device Control 2"},
	{"DC3", 19, "^S", "Device Control 3 (XOFF)"},
	{"DC4", 20, "^T", "Device Control 4"},
	{"NAK", 21, "^U", "Negative Acknowledge"},
	{"SYN", 22, "^V", "Synchronous Idle"},
	{"ETB", 23, "^W", "End of Transmission Block"},
	{"CAN", 24, "^X", "Cancel"},
	{"EM", 25, "^Y", "End of Medium"},
	{"SUB", 26, "^Z", "Substitute"},
	{"ESC", 27, "^[", "Escape"},
	{"FS", 28, "^\\", "File Separator"},
	{"GS", 29, "^]", "Group Separator"},
	{"RS", 30, "^^", "Record Separator"},
	{"US", 31, "^_", "Unit Separator"},
	{"SP", 32, "", "Space"},
	{"DEL", 127, "^?", "Delete (Rubout)"},
})

// C1 holds the C1 control codes keyed by acronym.
var C1 = codeMap([]Code{
	{"PAD", 128, "ESC-@", "Padding Character"},
	{"HOP", 129, "ESC-A", "High Octet Preset"},
	{"BPH", 130, "ESC-B", "Break Permitted Here"},
	{"NBH", 131, "ESC-C", "No Break Here"},
	{"IND", 132, "ESC-D", "Index"},
	{"NEL", 133, "ESC-E", "Next Line (NEL)"},
	{"SSA", 134, "ESC-F", "Start of Selected Area"},
	{"ESA", 135, "ESC-G", "End of Selected Area"},
	{"HTS", 136, "ESC-H", "Character Tabulation Set"},
	{"HTJ", 137, "ESC-I", "Horizontal (Character) Tabulation With Justification"},
	{"VTS", 138, "ESC-J", "Vertical (Line) Tabulation Set"},
	{"PLD", 139, "ESC-K", "Partial Line Down (Forward)"},
	{"PLU", 140, "ESC-L", "Partial Line Up (Backward)"},
	{"RI", 141, "ESC-M", "Reverse Line Feed"},
	{"SS2", 142, "ESC-N", "Single-Shift 2"},
	{"SS3", 143, "ESC-O", "Single-Shift 3"},
	{"DCS", 144, "ESC-P", "Device Control String"},
	{"PU1", 145, "ESC-Q", "Private Use 1"},
	{"PU2", 146, "ESC-R", "Private Use 2"},
	{"STS", 147, "ESC-S", "Set Transmit State"},
	{"CCH", 148, "ESC-T", "Cancel Character"},
	{"MW", 149, "ESC-U", "Message Waiting"},
	{"SPA", 150, "ESC-V", "Start of Protected Area"},
	{"EPA", 151, "ESC-W", "End of Protected Area"},
	{"SOS", 152, "ESC-X", "Start of String"},
	// SGCI is the only four-character acronym.
	{"SGCI", 153, "ESC-Y", "Single Graphic Character Introducer"},
	{"SCI", 154, "ESC-Z", "Single Character Introducer"},
	{"CSI", 155, "ESC-[", "Control Sequence Introducer"},
	{"ST", 156, "ESC-\\", "String Terminator"},
	{"OSC", 157, "ESC-]", "Operating System Command"},
	{"PM", 158, "ESC-^", "Privacy Message"},
	{"APC", 159, "ESC-_", "Application Program Command"},
})

func codeMap(codes []Code) map[string]Code {
	m := make(map[string]Code, len(codes))
	for _, c := range codes {
		m[c.Acronym] = c
	}
	return m
}

// LookupOrdinal finds the control code with the given ordinal value.
func LookupOrdinal(n int) (Code, error) {
	for _, m := range []map[string]Code{C0, C1} {
		for _, c := range m {
			if c.Ordinal == n {
				return c, nil
			}
		}
	}
	return Code{}, fmt.Errorf("%w: ordinal %d", ErrNotFound, n)
}

// Lookup finds a control code by acronym or caret/ESC code,
// case-insensitively. An exact acronym wins over code matching, so
// "ESC" names the escape character itself while "ESC-[" is still read
// as a code. The empty string resolves to SP.
func Lookup(key string) (Code, error) {
	if key == "" {
		return C0["SP"], nil
	}
	key = strings.ToUpper(key)
	for _, m := range []map[string]Code{C0, C1} {
		if c, ok := m[key]; ok {
			return c, nil
		}
	}
	for _, m := range []map[string]Code{C0, C1} {
		for _, c := range m {
			if c.Code == key {
				return c, nil
			}
		}
	}
	return Code{}, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// All returns every registered control code ordered by ordinal.
func All() []Code {
	codes := make([]Code, 0, len(C0)+len(C1))
	for _, c := range C0 {
		codes = append(codes, c)
	}
	for _, c := range C1 {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		return codes[i].Ordinal < codes[j].Ordinal
	})
	return codes
}
