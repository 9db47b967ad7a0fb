package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSession struct {
	globals []string
	imports []string
}

func (s *fakeSession) Globals() []string { return s.globals }
func (s *fakeSession) Imports() []string { return s.imports }

func newTestProvider(limit int) *Provider {
	provider := NewProvider(&fakeSession{
		globals: []string{"x", "myValue", "Tau"},
		imports: []string{"fmt", "net/http"},
	}, limit)
	provider.RegisterCommand("help", "list available commands")
	provider.RegisterCommand("history", "show or manage input history")
	provider.RegisterCommand("time", "time a piece of code")
	return provider
}

func TestCommandCompletions(t *testing.T) {
	provider := newTestProvider(0)

	t.Run("prefix match", func(t *testing.T) {
		line := ":hi"
		assert.Equal(t, []string{":history"}, provider.GetCompletions(line, len(line)))
	})

	t.Run("shared prefix", func(t *testing.T) {
		line := ":h"
		assert.Equal(t, []string{":help", ":history"}, provider.GetCompletions(line, len(line)))
	})

	t.Run("bare colon lists everything", func(t *testing.T) {
		assert.Equal(t, []string{":help", ":history", ":time"}, provider.GetCompletions(":", 1))
	})

	t.Run("not at line start", func(t *testing.T) {
		line := "x :hi"
		assert.Empty(t, provider.GetCompletions(line, len(line)))
	})
}

func TestMemberCompletions(t *testing.T) {
	provider := newTestProvider(0)

	t.Run("stdlib member", func(t *testing.T) {
		line := "fmt.Prin"
		assert.Contains(t, provider.GetCompletions(line, len(line)), "fmt.Println")
	})

	t.Run("package matched by base name", func(t *testing.T) {
		line := "http.Ge"
		assert.Contains(t, provider.GetCompletions(line, len(line)), "http.Get")
	})

	t.Run("mid expression", func(t *testing.T) {
		line := "x + fmt.Sprin"
		got := provider.GetCompletions(line, len(line))
		assert.Contains(t, got, "fmt.Sprintf")
		assert.Contains(t, got, "fmt.Sprintln")
	})

	t.Run("unknown qualifier", func(t *testing.T) {
		line := "nosuch.Thing"
		assert.Empty(t, provider.GetCompletions(line, len(line)))
	})
}

func TestIdentifierCompletions(t *testing.T) {
	provider := newTestProvider(0)

	t.Run("keyword", func(t *testing.T) {
		assert.Equal(t, []string{"func"}, provider.GetCompletions("fun", 3))
	})

	t.Run("predeclared", func(t *testing.T) {
		got := provider.GetCompletions("le", 2)
		assert.Equal(t, []string{"len"}, got)
	})

	t.Run("session global", func(t *testing.T) {
		assert.Equal(t, []string{"myValue"}, provider.GetCompletions("myV", 3))
	})

	t.Run("imported package name", func(t *testing.T) {
		got := provider.GetCompletions("fm", 2)
		assert.Equal(t, []string{"fmt"}, got)
	})

	t.Run("sorted and deduplicated", func(t *testing.T) {
		got := provider.GetCompletions("f", 1)
		assert.Equal(t, []string{"fallthrough", "false", "float32", "float64", "fmt", "for", "func"}, got)
	})

	t.Run("empty word", func(t *testing.T) {
		assert.Empty(t, provider.GetCompletions("x ", 2))
	})

	t.Run("after non-ascii text", func(t *testing.T) {
		// The cursor position is a rune offset, so multi-byte runes
		// earlier in the line must not shift the word boundary.
		line := "héllo fm"
		assert.Equal(t, []string{"fmt"}, provider.GetCompletions(line, 8))
	})
}

func TestCompletionLimit(t *testing.T) {
	provider := newTestProvider(2)

	got := provider.GetCompletions("f", 1)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"fallthrough", "false"}, got)
}

func TestGetHelpInfo(t *testing.T) {
	provider := newTestProvider(0)

	assert.Equal(t, "show or manage input history", provider.GetHelpInfo(":history", 8))
	assert.Empty(t, provider.GetHelpInfo("fmt.Println", 4))
	assert.Empty(t, provider.GetHelpInfo("x :history", 10))
}

func TestCommands(t *testing.T) {
	provider := newTestProvider(0)

	assert.Equal(t, []string{"help", "history", "time"}, provider.Commands())
	assert.Equal(t, "time a piece of code", provider.CommandHelp(":time"))
	assert.Equal(t, "time a piece of code", provider.CommandHelp("time"))
}
