// Package styles provides termenv-backed helpers for coloring plain
// writes to stdout and stderr, outside the Bubble Tea views.
package styles

import (
	"os"

	"github.com/muesli/termenv"
)

var (
	stdout = termenv.NewOutput(os.Stdout)
	stderr = termenv.NewOutput(os.Stderr)

	// ERROR colors evaluation and command errors.
	ERROR = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("9")).
			String()
	}

	// RESULT colors evaluation results.
	RESULT = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("11")).
			String()
	}

	// NOTICE colors informational messages from colon commands.
	NOTICE = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("12")).
			String()
	}

	// LOG colors diagnostic output on stderr.
	LOG = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("8")).
			String()
	}
)
