package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistorySearchLifecycle(t *testing.T) {
	s := NewHistorySearchState()
	assert.False(t, s.IsActive())

	s.Start("current input")
	assert.True(t, s.IsActive())
	assert.Empty(t, s.Query())

	s.AddChar('s')
	s.AddChar('q')
	assert.Equal(t, "sq", s.Query())

	s.SetMatches([]string{"math.Sqrt(2)", "math.Sqrt(9)"})
	assert.Equal(t, "math.Sqrt(2)", s.CurrentMatch())
	assert.Equal(t, 2, s.MatchCount())
}

func TestHistorySearchNextMatch(t *testing.T) {
	s := NewHistorySearchState()
	s.Start("")
	s.SetMatches([]string{"first", "second"})

	assert.True(t, s.NextMatch())
	assert.Equal(t, "second", s.CurrentMatch())
	assert.False(t, s.NextMatch(), "stops at the last match")

	// A query change resets the selection.
	s.AddChar('x')
	s.SetMatches([]string{"first", "second"})
	assert.Equal(t, "first", s.CurrentMatch())
}

func TestHistorySearchDeleteChar(t *testing.T) {
	s := NewHistorySearchState()
	s.Start("")
	s.AddChar('a')
	s.AddChar('b')

	assert.True(t, s.DeleteChar())
	assert.Equal(t, "a", s.Query())
	assert.True(t, s.DeleteChar())
	assert.False(t, s.DeleteChar())
}

func TestHistorySearchCancelRestores(t *testing.T) {
	s := NewHistorySearchState()
	s.Start("keep me")
	s.AddChar('q')
	s.SetMatches([]string{"something"})

	assert.Equal(t, "keep me", s.Cancel())
	assert.False(t, s.IsActive())
}

func TestHistorySearchAccept(t *testing.T) {
	t.Run("with match", func(t *testing.T) {
		s := NewHistorySearchState()
		s.Start("orig")
		s.SetMatches([]string{"picked"})
		assert.Equal(t, "picked", s.Accept())
		assert.False(t, s.IsActive())
	})

	t.Run("without match", func(t *testing.T) {
		s := NewHistorySearchState()
		s.Start("orig")
		assert.Equal(t, "orig", s.Accept())
	})
}
