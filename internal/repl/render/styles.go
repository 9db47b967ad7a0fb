// Package render provides terminal output styling for the REPL:
// colors and the welcome screen.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

// ANSI palette used across the REPL.
const (
	ColorCyan   = lipgloss.Color("12") // prompt, headers
	ColorYellow = lipgloss.Color("11") // accents, panels
	ColorGreen  = lipgloss.Color("10") // success
	ColorRed    = lipgloss.Color("9")  // errors
	ColorGray   = lipgloss.Color("8")  // dim/secondary (timing, meta)
)
