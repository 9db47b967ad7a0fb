// Package completion produces tab-completion candidates for the REPL
// line editor. Candidates come from three sources: registered colon
// commands, Go keywords and predeclared identifiers, and the live
// evaluation session (top-level names, imported packages and their
// exported members).
package completion

import (
	"sort"
	"strings"
	"unicode"

	gopath "path"

	"github.com/samber/lo"

	"replkit/internal/evaluate"
)

// Session is the slice of the evaluation session the provider needs.
type Session interface {
	// Globals returns the names defined at the top level of the session.
	Globals() []string
	// Imports returns the session's imported package paths.
	Imports() []string
}

var goKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer",
	"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return", "select", "struct",
	"switch", "type", "var",
}

var goPredeclared = []string{
	"any", "append", "bool", "byte", "cap", "clear", "close", "comparable",
	"complex", "complex64", "complex128", "copy", "delete", "error",
	"false", "float32", "float64", "imag", "int", "int8", "int16",
	"int32", "int64", "iota", "len", "make", "max", "min", "new", "nil",
	"panic", "print", "println", "real", "recover", "rune", "string",
	"true", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
}

// Provider implements the CompletionProvider interface for the REPL
// input component.
type Provider struct {
	session  Session
	commands map[string]string
	limit    int
}

// NewProvider creates a completion Provider over an evaluation session.
// limit caps how many candidates a single request returns; zero or
// negative means unlimited.
func NewProvider(session Session, limit int) *Provider {
	return &Provider{
		session:  session,
		commands: make(map[string]string),
		limit:    limit,
	}
}

// RegisterCommand adds a colon command with a one-line help text so it
// participates in completion and inline help.
func (p *Provider) RegisterCommand(name string, help string) {
	p.commands[name] = help
}

// Commands returns the registered colon command names, sorted.
func (p *Provider) Commands() []string {
	names := lo.Keys(p.commands)
	sort.Strings(names)
	return names
}

// CommandHelp returns the registered help text for a colon command, or
// the empty string.
func (p *Provider) CommandHelp(name string) string {
	return p.commands[strings.TrimPrefix(name, ":")]
}

// GetCompletions returns completion candidates for the word ending at
// the cursor. pos is a rune offset, matching the line editor's cursor.
// Each candidate is a full replacement for that word.
func (p *Provider) GetCompletions(line string, pos int) []string {
	runes := []rune(line)
	start, _ := wordBoundary(runes, pos)
	if start < 0 {
		return []string{}
	}
	word := string(runes[start:pos])
	if word == "" {
		return []string{}
	}

	// Colon commands complete only at the start of the line.
	if strings.HasPrefix(word, ":") {
		if start != 0 {
			return []string{}
		}
		return p.cap(p.commandCompletions(word))
	}

	if idx := strings.LastIndex(word, "."); idx >= 0 {
		return p.cap(p.memberCompletions(word[:idx], word[idx+1:]))
	}

	return p.cap(p.identifierCompletions(word))
}

// GetHelpInfo returns a one-line help text when the cursor is on a
// registered colon command, otherwise the empty string.
func (p *Provider) GetHelpInfo(line string, pos int) string {
	runes := []rune(line)
	start, end := wordBoundary(runes, pos)
	if start != 0 || end < 0 {
		return ""
	}
	word := string(runes[start:end])
	if !strings.HasPrefix(word, ":") {
		return ""
	}
	return p.CommandHelp(word)
}

// commandCompletions matches registered colon commands against a word
// that includes the leading colon.
func (p *Provider) commandCompletions(word string) []string {
	prefix := strings.TrimPrefix(word, ":")
	matches := lo.Filter(lo.Keys(p.commands), func(name string, _ int) bool {
		return strings.HasPrefix(name, prefix)
	})
	sort.Strings(matches)
	return lo.Map(matches, func(name string, _ int) string {
		return ":" + name
	})
}

// memberCompletions completes the selector after a dot when the
// qualifier is an imported package.
func (p *Provider) memberCompletions(qualifier, member string) []string {
	var importPath string
	for _, path := range p.session.Imports() {
		if gopath.Base(path) == qualifier {
			importPath = path
			break
		}
	}
	if importPath == "" {
		return []string{}
	}

	matches := lo.Filter(evaluate.PackageMembers(importPath), func(name string, _ int) bool {
		return strings.HasPrefix(name, member)
	})
	return lo.Map(matches, func(name string, _ int) string {
		return qualifier + "." + name
	})
}

// identifierCompletions matches keywords, predeclared identifiers,
// session globals and imported package names.
func (p *Provider) identifierCompletions(word string) []string {
	candidates := make([]string, 0, len(goKeywords)+len(goPredeclared))
	candidates = append(candidates, goKeywords...)
	candidates = append(candidates, goPredeclared...)
	candidates = append(candidates, p.session.Globals()...)
	for _, path := range p.session.Imports() {
		candidates = append(candidates, gopath.Base(path))
	}

	matches := lo.Filter(candidates, func(name string, _ int) bool {
		return strings.HasPrefix(name, word)
	})
	matches = lo.Uniq(matches)
	sort.Strings(matches)
	return matches
}

func (p *Provider) cap(candidates []string) []string {
	if p.limit > 0 && len(candidates) > p.limit {
		return candidates[:p.limit]
	}
	return candidates
}

// wordBoundary finds the start and end of the word at the cursor, all
// in rune offsets. Word characters are identifier characters plus '.'
// and the ':' of colon commands.
func wordBoundary(runes []rune, pos int) (int, int) {
	if pos < 0 || pos > len(runes) {
		return -1, -1
	}

	isWordRune := func(r rune) bool {
		return r == '.' || r == ':' || r == '_' ||
			unicode.IsLetter(r) || unicode.IsDigit(r)
	}

	start := pos
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := pos
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return start, end
}
