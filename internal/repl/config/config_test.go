package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "go> ", cfg.Prompt)
	assert.Equal(t, "... ", cfg.ContinuationPrompt)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, IndentTabs, cfg.Indent)
	assert.Equal(t, 4, cfg.IndentWidth)
	assert.Equal(t, 30, cfg.CompletionLimit)
	assert.Equal(t, 500, cfg.HistoryLimit)
	assert.Equal(t, []string{"fmt", "math", "os", "strings", "time"}, cfg.Imports)
	assert.Equal(t, 1, cfg.TimerCutoffMs)
	assert.False(t, cfg.HideWelcome)
	assert.NotNil(t, cfg.Bindings)
	assert.Empty(t, cfg.Bindings)
}

func TestIndentText(t *testing.T) {
	t.Run("tabs", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, "\t", cfg.IndentText())
	})

	t.Run("spaces", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Indent = IndentSpaces
		cfg.IndentWidth = 2
		assert.Equal(t, "  ", cfg.IndentText())
	})

	t.Run("spaces with bad width falls back", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Indent = IndentSpaces
		cfg.IndentWidth = 0
		assert.Equal(t, "    ", cfg.IndentText())
	})
}

func TestTimerCutoff(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Millisecond, cfg.TimerCutoff())

	cfg.TimerCutoffMs = 250
	assert.Equal(t, 250*time.Millisecond, cfg.TimerCutoff())

	cfg.TimerCutoffMs = -1
	assert.Equal(t, time.Duration(-1), cfg.TimerCutoff())
}
