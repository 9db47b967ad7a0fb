package edir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct {
	Alpha  int
	Beta   string
	Bravo  bool
	hidden int
}

func (thing) Greet() string { return "hi" }

func (*thing) Rename(string) {}

func TestNamesStruct(t *testing.T) {
	l := New()
	names := l.Names(thing{})
	assert.Equal(t, []string{"Alpha", "Beta", "Bravo", "Greet", "Rename"}, names)
}

func TestNamesPointerReceiverMethodsOnValue(t *testing.T) {
	l := New()
	// The pointer receiver set is listed even when given a value.
	assert.Contains(t, l.Names(thing{}), "Rename")
	assert.Contains(t, l.Names(&thing{}), "Rename")
	assert.Contains(t, l.Names(&thing{}), "Greet")
}

func TestNamesUnexported(t *testing.T) {
	l := New()
	assert.NotContains(t, l.Names(thing{}), "hidden")

	l.Unexported = true
	assert.Contains(t, l.Names(thing{}), "hidden")
}

func TestNamesMapKeys(t *testing.T) {
	l := New()
	m := map[string]int{"Spam": 1, "Eggs": 2, "ham": 3}
	assert.Equal(t, []string{"Eggs", "Spam"}, l.Names(m))

	l.Unexported = true
	assert.Equal(t, []string{"Eggs", "Spam", "ham"}, l.Names(m))
}

func TestNamesNil(t *testing.T) {
	l := New()
	assert.Empty(t, l.Names(nil))
}

func TestNamesMeta(t *testing.T) {
	l := New()
	l.Meta = true
	names := l.Names(thing{})
	assert.Contains(t, names, "NumMethod")
	assert.Contains(t, names, "Kind")
	assert.Contains(t, names, "Greet")
}

func TestListGlob(t *testing.T) {
	l := New()

	names, err := l.List(thing{}, "b*")
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Bravo"}, names)
}

func TestMatch(t *testing.T) {
	names := []string{"Alpha", "Beta", "Bravo", "Greet"}

	tests := []struct {
		name     string
		glob     string
		expected []string
	}{
		{"empty glob returns all", "", names},
		{"wildcard", "b*", []string{"Beta", "Bravo"}},
		{"question mark", "bet?", []string{"Beta"}},
		{"character set", "[ab]*a", []string{"Alpha", "Beta"}},
		{"negated set", "[!ab]*", []string{"Greet"}},
		{"substring when no metacharacters", "re", []string{"Greet"}},
		{"substring case-insensitive", "AL", []string{"Alpha"}},
		{"invert", "!b*", []string{"Alpha", "Greet"}},
		{"case-sensitive suffix", "B*=", []string{"Beta", "Bravo"}},
		{"case-sensitive no match", "b*=", []string{}},
		{"case-sensitive substring", "Gre=", []string{"Greet"}},
		{"invert and case-sensitive", "!B*=", []string{"Alpha", "Greet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(names, tt.glob)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMatchInvalidGlob(t *testing.T) {
	_, err := Match([]string{"a"}, "[z-a]")
	assert.Error(t, err)
}

func TestMatchUnterminatedClassIsLiteral(t *testing.T) {
	got, err := Match([]string{"a[b", "ab"}, "a[b*")
	require.NoError(t, err)
	assert.Equal(t, []string{"a[b"}, got)
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		glob     string
		expected string
	}{
		{"b*", "^b.*$"},
		{"a?c", "^a.c$"},
		{"[abc]", "^[abc]$"},
		{"[!abc]", "^[^abc]$"},
		{"a.b", `^a\.b$`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, translate(tt.glob))
	}
}
