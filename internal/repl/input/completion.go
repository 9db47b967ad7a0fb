package input

import (
	"unicode"
)

// CompletionProvider supplies tab-completion candidates.
type CompletionProvider interface {
	// GetCompletions returns candidates for the word at the cursor.
	// Each candidate is a full replacement for that word.
	GetCompletions(line string, pos int) []string

	// GetHelpInfo returns a short help text for the input at the
	// cursor, or the empty string.
	GetHelpInfo(line string, pos int) string
}

// CompletionState tracks an in-progress completion: the candidate list,
// the current selection and the word boundaries being replaced.
type CompletionState struct {
	active       bool
	suggestions  []string
	selected     int
	prefix       string
	startPos     int
	endPos       int
	originalText string
}

// NewCompletionState creates an inactive completion state.
func NewCompletionState() *CompletionState {
	return &CompletionState{selected: -1}
}

// Reset returns the state to inactive.
func (cs *CompletionState) Reset() {
	*cs = CompletionState{selected: -1}
}

// IsActive reports whether a completion session is in progress.
func (cs *CompletionState) IsActive() bool {
	return cs.active
}

// IsVisible reports whether the candidate list should be shown. A
// single candidate is applied directly and never shown.
func (cs *CompletionState) IsVisible() bool {
	return cs.active && len(cs.suggestions) > 1
}

// Suggestions returns the candidate list.
func (cs *CompletionState) Suggestions() []string {
	return cs.suggestions
}

// Selected returns the index of the selected candidate, or -1.
func (cs *CompletionState) Selected() int {
	return cs.selected
}

// StartPos returns the start of the word being replaced.
func (cs *CompletionState) StartPos() int {
	return cs.startPos
}

// EndPos returns the end of the word being replaced.
func (cs *CompletionState) EndPos() int {
	return cs.endPos
}

// CurrentSuggestion returns the selected candidate, or the empty
// string.
func (cs *CompletionState) CurrentSuggestion() string {
	if !cs.active || cs.selected < 0 || cs.selected >= len(cs.suggestions) {
		return ""
	}
	return cs.suggestions[cs.selected]
}

// NextSuggestion advances the selection, wrapping, and returns it.
func (cs *CompletionState) NextSuggestion() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected = (cs.selected + 1) % len(cs.suggestions)
	return cs.suggestions[cs.selected]
}

// PrevSuggestion moves the selection back, wrapping, and returns it.
func (cs *CompletionState) PrevSuggestion() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected--
	if cs.selected < 0 {
		cs.selected = len(cs.suggestions) - 1
	}
	return cs.suggestions[cs.selected]
}

// Activate starts a completion session over the word between startPos
// and endPos.
func (cs *CompletionState) Activate(suggestions []string, prefix string, startPos, endPos int) {
	cs.active = true
	cs.suggestions = suggestions
	cs.selected = -1
	cs.prefix = prefix
	cs.startPos = startPos
	cs.endPos = endPos
}

// SetOriginalText remembers the input so Cancel can restore it.
func (cs *CompletionState) SetOriginalText(text string) {
	cs.originalText = text
}

// UpdateBoundaries moves the replacement window after a candidate has
// been applied, so cycling replaces the applied candidate.
func (cs *CompletionState) UpdateBoundaries(prefix string, startPos, endPos int) {
	cs.prefix = prefix
	cs.startPos = startPos
	cs.endPos = endPos
}

// Cancel ends the session and returns the text to restore.
func (cs *CompletionState) Cancel() string {
	original := cs.originalText
	cs.Reset()
	return original
}

// isWordRune reports whether a rune belongs to a completable word:
// identifier characters, the '.' of a selector and the ':' of a colon
// command.
func isWordRune(r rune) bool {
	return r == '.' || r == ':' || r == '_' ||
		unicode.IsLetter(r) || unicode.IsDigit(r)
}

// GetWordBoundary finds the start and end of the completable word at
// the cursor.
func GetWordBoundary(text string, cursorPos int) (start, end int) {
	runes := []rune(text)
	cursorPos = min(max(cursorPos, 0), len(runes))

	start = cursorPos
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end = cursorPos
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return start, end
}

// CompletionResult is the text state after applying a candidate.
type CompletionResult struct {
	NewText      string
	NewCursorPos int
}

// ApplySuggestion replaces text between startPos and endPos with the
// suggestion and positions the cursor after it.
func ApplySuggestion(text string, suggestion string, startPos, endPos int) CompletionResult {
	runes := []rune(text)
	startPos = min(max(startPos, 0), len(runes))
	endPos = min(max(endPos, startPos), len(runes))

	newText := string(runes[:startPos]) + suggestion + string(runes[endPos:])
	return CompletionResult{
		NewText:      newText,
		NewCursorPos: startPos + len([]rune(suggestion)),
	}
}
