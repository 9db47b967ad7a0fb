package unicodelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanes(t *testing.T) {
	assert.Len(t, Planes, 17)
	assert.EqualValues(t, 0, Planes[0])
	assert.EqualValues(t, 0x10000, Planes[1])
	assert.EqualValues(t, 0x100000, Planes[16])
	for _, p := range Planes {
		assert.EqualValues(t, 0, p&0xFFFF)
	}
}

func TestCodepoint(t *testing.T) {
	assert.Equal(t, "U+007A", Codepoint('z'))
	assert.Equal(t, "U+0020", Codepoint(' '))
	assert.Equal(t, "U+0000", Codepoint(0))
	assert.Equal(t, "U+10FFFF", Codepoint(MaxRune))
}

func TestIsSurrogate(t *testing.T) {
	assert.True(t, IsSurrogate(0xD800))
	assert.True(t, IsSurrogate(0xDFFF))
	assert.False(t, IsSurrogate(0xD7FF))
	assert.False(t, IsSurrogate(0xE000))
	assert.False(t, IsSurrogate('a'))
}

func TestIsNoncharacter(t *testing.T) {
	// The contiguous BMP block.
	assert.True(t, IsNoncharacter(0xFDD0))
	assert.True(t, IsNoncharacter(0xFDEF))
	assert.False(t, IsNoncharacter(0xFDCF))
	assert.False(t, IsNoncharacter(0xFDF0))

	// The last two code points of every plane.
	count := 0
	for r := rune(0); r <= MaxRune; r++ {
		if IsNoncharacter(r) {
			count++
		}
	}
	assert.Equal(t, 66, count)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("hello"))
	assert.True(t, IsValid("héllo"))
	assert.True(t, IsValid(""))
	assert.False(t, IsValid(string([]byte{0xff, 0xfe})))
}

func TestName(t *testing.T) {
	tests := []struct {
		r        rune
		expected string
	}{
		{'a', "LATIN SMALL LETTER A"},
		{' ', "SPACE"},
		{0x07, "<control-0007>"},
		{0xFDD0, "<noncharacter-FDD0>"},
		{0xFFFE, "<noncharacter-FFFE>"},
		{0xE000, "<private-use-E000>"},
		{0xD800, "<surrogate-D800>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Name(tt.r))
	}
}

func TestCharacterise(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		expected string
	}{
		{"empty", "", "empty"},
		{"ascii", "hello", "ascii"},
		{"latin1", "héllo", "latin1"},
		{"narrow", "héllo☃", "narrow"},
		{"wide", "hi \U0001F600", "wide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Characterise(tt.s))
		})
	}
}

func TestStringAsHex(t *testing.T) {
	assert.Equal(t, "0061 002D 007A", StringAsHex("a-z"))
	assert.Equal(t, "", StringAsHex(""))
	assert.Equal(t, "2603", StringAsHex("☃"))
}

func TestBytesAsHex(t *testing.T) {
	assert.Equal(t, "61 2D 7A", BytesAsHex([]byte("a-z")))
	assert.Equal(t, "", BytesAsHex(nil))
	assert.Equal(t, "E2 98 83", BytesAsHex([]byte("☃")))
}

func TestComposeDecompose(t *testing.T) {
	// e + combining acute accent.
	decomposed := "e\u0301"
	composed := "\u00e9"

	assert.Equal(t, composed, Compose(decomposed, false))
	assert.Equal(t, decomposed, Decompose(composed, false))

	// Compatibility forms fold the ligature fi.
	assert.Equal(t, "fi", Compose("ﬁ", true))
	assert.Equal(t, "fi", Decompose("ﬁ", true))
	assert.Equal(t, "ﬁ", Compose("ﬁ", false))
}

func TestComposeDecomposeRoundTrip(t *testing.T) {
	s := "Crème brûlée"
	assert.Equal(t, Compose(s, false), Compose(Decompose(s, false), false))
}
