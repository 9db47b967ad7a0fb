package input

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"replkit/internal/repl/render"
)

// RenderConfig holds the styles of the line editor.
type RenderConfig struct {
	// PromptStyle is applied to the prompt string.
	PromptStyle lipgloss.Style

	// TextStyle is applied to the input text.
	TextStyle lipgloss.Style

	// CursorStyle is applied to the character under the cursor.
	CursorStyle lipgloss.Style

	// CompletionPanelStyle frames the completion candidate list.
	CompletionPanelStyle lipgloss.Style

	// InfoPanelStyle frames the contextual help panel.
	InfoPanelStyle lipgloss.Style

	// SelectedStyle marks the selected completion candidate.
	SelectedStyle lipgloss.Style
}

// DefaultRenderConfig returns the default styles.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		PromptStyle: lipgloss.NewStyle().Foreground(render.ColorCyan),
		TextStyle:   lipgloss.NewStyle(),
		CursorStyle: lipgloss.NewStyle().Reverse(true),
		CompletionPanelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.ColorYellow),
		InfoPanelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.ColorGray),
		SelectedStyle: lipgloss.NewStyle().Bold(true),
	}
}

// Renderer draws the line editor.
type Renderer struct {
	config RenderConfig
	width  int
}

// NewRenderer creates a Renderer.
func NewRenderer(config RenderConfig) *Renderer {
	return &Renderer{config: config, width: 80}
}

// SetWidth sets the terminal width used for wrapping.
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Width returns the terminal width used for wrapping.
func (r *Renderer) Width() int {
	return r.width
}

// RenderInputLine renders the prompt, the input text and the cursor,
// wrapping at the terminal width.
func (r *Renderer) RenderInputLine(prompt string, buffer *Buffer, focused bool) string {
	runes := []rune(buffer.Text())
	pos := min(max(buffer.Pos(), 0), len(runes))

	// Only the last line of a multi-line prompt affects wrapping.
	promptLastLine := prompt
	if idx := strings.LastIndex(prompt, "\n"); idx != -1 {
		promptLastLine = prompt[idx+1:]
	}

	var out strings.Builder
	out.WriteString(r.config.PromptStyle.Render(prompt))
	width := ansi.StringWidth(promptLastLine)

	for i, ch := range runes {
		charStr := string(ch)
		charWidth := ansi.StringWidth(charStr)

		if width+charWidth > r.width && width > 0 {
			out.WriteString("\n")
			width = 0
		}

		if focused && i == pos {
			out.WriteString(r.config.CursorStyle.Render(charStr))
		} else {
			out.WriteString(r.config.TextStyle.Render(charStr))
		}
		width += charWidth
	}

	// Cursor past the end of the text sits on a phantom space.
	if focused && pos >= len(runes) {
		if width+1 > r.width {
			out.WriteString("\n")
		}
		out.WriteString(r.config.CursorStyle.Render(" "))
	}

	return out.String()
}

// RenderCompletionBox renders the candidate list with a scrolling
// window of maxVisible items.
func (r *Renderer) RenderCompletionBox(cs *CompletionState, maxVisible int) string {
	if !cs.IsVisible() {
		return ""
	}
	if maxVisible <= 0 {
		maxVisible = 4
	}

	suggestions := cs.Suggestions()
	selected := max(cs.Selected(), 0)
	start, end := visibleWindow(selected, len(suggestions), maxVisible)

	var content strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			content.WriteString("\n")
		}

		var prefix string
		switch {
		case i == start && start > 0:
			prefix = fmt.Sprintf("↑ %3d", start)
		case i == end-1 && end < len(suggestions):
			prefix = fmt.Sprintf("↓ %3d", len(suggestions)-end)
		default:
			prefix = "     "
		}

		if i == cs.Selected() {
			content.WriteString(prefix + "> ")
			content.WriteString(r.config.SelectedStyle.Render(suggestions[i]))
		} else {
			content.WriteString(prefix + "  ")
			content.WriteString(suggestions[i])
		}
	}

	return r.config.CompletionPanelStyle.
		Width(max(1, r.width-2)).
		Render(content.String())
}

// RenderHelpBox renders contextual help in a framed panel.
func (r *Renderer) RenderHelpBox(text string) string {
	if text == "" {
		return ""
	}
	return r.config.InfoPanelStyle.
		Width(max(1, r.width-2)).
		Render(text)
}

// RenderHistorySearchPrompt renders the Ctrl+R prompt in the bash
// reverse-i-search style.
func (r *Renderer) RenderHistorySearchPrompt(state *HistorySearchState) string {
	if state == nil || !state.IsActive() {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Foreground(render.ColorYellow)
	queryStyle := lipgloss.NewStyle().Bold(true)

	return labelStyle.Render("(history search)") +
		"`" + queryStyle.Render(state.Query()) + "': "
}

// RenderFullView renders the input line plus the completion and help
// panels, padded to minHeight lines.
func (r *Renderer) RenderFullView(
	prompt string,
	buffer *Buffer,
	focused bool,
	completion *CompletionState,
	helpText string,
	minHeight int,
) string {
	var result strings.Builder

	// Start at column 0 in case log output left the cursor mid-line.
	result.WriteString("\r\033[K")
	result.WriteString(r.RenderInputLine(prompt, buffer, focused))

	if completion != nil && completion.IsVisible() {
		result.WriteString("\n")
		result.WriteString(r.RenderCompletionBox(completion, 4))
	}

	if helpText != "" {
		result.WriteString("\n")
		result.WriteString(r.RenderHelpBox(helpText))
	}

	output := result.String()
	if lines := strings.Count(output, "\n"); lines < minHeight {
		output += strings.Repeat("\n", minHeight-lines)
	}
	return output
}

// visibleWindow picks the slice of candidates to show, keeping the
// selection near the middle.
func visibleWindow(selected, total, maxVisible int) (start, end int) {
	if total <= maxVisible {
		return 0, total
	}

	switch {
	case selected < 2:
		start = 0
	case selected >= total-2:
		start = total - maxVisible
	default:
		start = selected - 1
	}

	start = max(start, 0)
	end = start + maxVisible
	if end > total {
		end = total
		start = max(end-maxVisible, 0)
	}
	return start, end
}
