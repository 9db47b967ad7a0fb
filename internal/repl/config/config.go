// Package config provides configuration management for the replkit REPL.
// Configuration is read from a YAML file (~/.replkit/config.yaml by
// default); every field has a sensible default so the file is optional.
package config

import (
	"strings"
	"time"
)

// IndentStyle selects what the Tab key inserts at the start of a line.
type IndentStyle string

const (
	IndentTabs   IndentStyle = "tabs"
	IndentSpaces IndentStyle = "spaces"
)

// Config holds all REPL configuration.
type Config struct {
	// Prompt is the primary input prompt.
	Prompt string `yaml:"prompt"`

	// ContinuationPrompt is shown while multi-line input is incomplete.
	ContinuationPrompt string `yaml:"continuationPrompt"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"logLevel"`

	// Indent selects tabs or spaces for the indent inserted when Tab is
	// pressed at the start of a line.
	Indent IndentStyle `yaml:"indent"`

	// IndentWidth is the number of spaces per indent when Indent is
	// "spaces".
	IndentWidth int `yaml:"indentWidth"`

	// CompletionLimit caps how many completion candidates are offered at
	// once.
	CompletionLimit int `yaml:"completionLimit"`

	// HistoryLimit is the maximum number of lines written to the flat
	// history file, and how much history Up/Down navigation sees.
	HistoryLimit int `yaml:"historyLimit"`

	// HistoryFile is the flat history file imported at startup and
	// exported at exit. A leading ~ is expanded. Empty disables the flat
	// file (the sqlite store is always kept).
	HistoryFile string `yaml:"historyFile"`

	// Imports are package paths pre-imported into every session.
	Imports []string `yaml:"imports"`

	// TimerCutoffMs is the :time threshold, in milliseconds, below which a
	// too-small-to-be-meaningful warning is printed. Negative disables the
	// warning.
	TimerCutoffMs int `yaml:"timerCutoffMs"`

	// HideWelcome suppresses the startup banner.
	HideWelcome bool `yaml:"hideWelcome"`

	// Bindings maps input actions to key sequences, replacing the default
	// binding for that action. Keys use the line editor's notation, e.g.
	//
	//	bindings:
	//	  Complete: [tab, ctrl+i]
	//	  ClearScreen: [ctrl+l]
	Bindings map[string][]string `yaml:"bindings"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Prompt:             "go> ",
		ContinuationPrompt: "... ",
		LogLevel:           "info",
		Indent:             IndentTabs,
		IndentWidth:        4,
		CompletionLimit:    30,
		HistoryLimit:       500,
		HistoryFile:        "~/.replkit/history",
		Imports:            []string{"fmt", "math", "os", "strings", "time"},
		TimerCutoffMs:      1,
		Bindings:           map[string][]string{},
	}
}

// IndentText returns the literal text one indent inserts.
func (c *Config) IndentText() string {
	if c.Indent == IndentSpaces {
		width := c.IndentWidth
		if width <= 0 {
			width = 4
		}
		return strings.Repeat(" ", width)
	}
	return "\t"
}

// TimerCutoff returns the :time warning cutoff as a duration. A zero
// configured value falls back to the default; negative disables.
func (c *Config) TimerCutoff() time.Duration {
	if c.TimerCutoffMs < 0 {
		return -1
	}
	return time.Duration(c.TimerCutoffMs) * time.Millisecond
}
