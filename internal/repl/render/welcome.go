package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// WelcomeInfo holds the details shown on the welcome screen.
type WelcomeInfo struct {
	// Version is the replkit version string.
	Version string
	// GoVersion is the runtime Go version.
	GoVersion string
	// Imports are the packages pre-imported into the session.
	Imports []string
}

// tips shown on the welcome screen, one per day.
var tips = []string{
	"type :help to list all colon commands",
	"press Tab to complete identifiers and package members",
	"press Tab on an empty line to indent",
	"press Ctrl+R to fuzzy-search your input history",
	"press Up/Down to navigate input history",
	"press Ctrl+A/Ctrl+E to jump to start/end of line",
	"press Ctrl+D on an empty line to exit",
	"use :time <code> to measure how long an expression takes",
	"use :dir <expr> to list the methods and fields of a value",
	":dir accepts glob filters, e.g. :dir x Set*",
	"prefix a :dir filter with ! to invert the match",
	"use :ctrl to print the control code table",
	"use :uni <char> to describe any unicode character",
	"use :import <path> to import another package mid-session",
	"use :reset to start a fresh session",
	"use :history save to write your history to a file",
	"pre-import your favorite packages in ~/.replkit/config.yaml",
	"unfinished lines continue on the next line automatically",
	"Inf, NaN and Tau are predefined in every session",
}

var logo = []string{
	"                 _ _    _ _  ",
	" _ __ ___ _ __ | | | _(_) |_ ",
	"| '__/ _ \\ '_ \\| | |/ / | __|",
	"| | |  __/ |_) | |   <| | |_ ",
	"|_|  \\___| .__/|_|_|\\_\\_|\\__|",
	"         |_|                 ",
}

// tipOfTheDay picks a tip based on the current date, the same one for
// the whole day.
func tipOfTheDay() string {
	if len(tips) == 0 {
		return ""
	}
	now := time.Now()
	// Not a real day count, but stable within a day and cheap.
	daysSinceEpoch := now.Year()*365 + int(now.Month())*31 + now.Day()
	return tips[daysSinceEpoch%len(tips)]
}

// RenderWelcome writes the welcome screen: the logo on the left,
// session info on the right, and a tip of the day below.
func RenderWelcome(w io.Writer, info WelcomeInfo, termWidth int) {
	titleStyle := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	logoStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	labelStyle := lipgloss.NewStyle().Foreground(ColorGray)
	valueStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	dimStyle := lipgloss.NewStyle().Foreground(ColorGray).Italic(true)

	logoWidth := 29
	minGap := 4
	maxInfoWidth := 44

	var infoLines []string
	infoLines = append(infoLines, titleStyle.Render("An interactive Go interpreter"))
	infoLines = append(infoLines, "")

	if info.Version == "dev" {
		infoLines = append(infoLines, labelStyle.Render("version: ")+dimStyle.Render("development"))
	} else if info.Version != "" {
		infoLines = append(infoLines, labelStyle.Render("version: ")+valueStyle.Render(info.Version))
	}
	if info.GoVersion != "" {
		infoLines = append(infoLines, labelStyle.Render("go:      ")+valueStyle.Render(info.GoVersion))
	}
	if len(info.Imports) > 0 {
		infoLines = append(infoLines, labelStyle.Render("imports: ")+valueStyle.Render(strings.Join(info.Imports, " ")))
	}

	tip := tipOfTheDay()

	infoWidth := termWidth - logoWidth - minGap
	if infoWidth > maxInfoWidth {
		infoWidth = maxInfoWidth
	}
	if infoWidth < 20 {
		// Terminal too narrow for the logo.
		for _, line := range infoLines {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
		if tip != "" {
			fmt.Fprintln(w, dimStyle.Render("tip: "+tip))
		}
		fmt.Fprintln(w)
		return
	}

	numLines := max(len(logo), len(infoLines))

	var output strings.Builder
	output.WriteString("\n")
	for i := 0; i < numLines; i++ {
		logoLine := strings.Repeat(" ", logoWidth)
		if i < len(logo) {
			logoLine = logoStyle.Render(logo[i])
		}
		infoLine := ""
		if i < len(infoLines) {
			infoLine = infoLines[i]
		}
		output.WriteString(logoLine + strings.Repeat(" ", minGap) + infoLine + "\n")
	}

	output.WriteString("\n")
	if tip != "" {
		output.WriteString(dimStyle.Render("tip: "+tip) + "\n")
	}
	output.WriteString("\n")

	fmt.Fprint(w, output.String())
}
