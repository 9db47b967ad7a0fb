package input

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	m.result = Result{Type: ResultSubmit, Value: m.buffer.Text()}
	return m, tea.Quit
}

func (m Model) handleInterrupt() (tea.Model, tea.Cmd) {
	m.result = Result{Type: ResultInterrupt}
	return m, tea.Quit
}

func (m Model) handleEOF() (tea.Model, tea.Cmd) {
	m.result = Result{Type: ResultEOF}
	return m, tea.Quit
}

// handleEdit runs a buffer edit that reports whether it changed
// anything.
func (m Model) handleEdit(edit func(*Buffer) bool) (tea.Model, tea.Cmd) {
	if edit(m.buffer) {
		return m.onTextChanged()
	}
	return m, nil
}

// handleEditVoid runs a buffer edit without a change report, comparing
// text before and after.
func (m Model) handleEditVoid(edit func(*Buffer)) (tea.Model, tea.Cmd) {
	before := m.buffer.Text()
	edit(m.buffer)
	if m.buffer.Text() != before {
		return m.onTextChanged()
	}
	return m, nil
}

// handleInsertRunes inserts typed characters at the cursor.
func (m Model) handleInsertRunes(runes []rune) (tea.Model, tea.Cmd) {
	m.buffer.InsertRunes(sanitizeRunes(runes))
	m.historyIndex = 0
	m.hasNavigatedHistory = false
	return m.onTextChanged()
}

// handlePaste inserts clipboard content at the cursor.
func (m Model) handlePaste(text string) (tea.Model, tea.Cmd) {
	m.buffer.InsertRunes(sanitizeRunes([]rune(text)))
	m.historyIndex = 0
	m.hasNavigatedHistory = false
	return m.onTextChanged()
}

// handleHistoryPrevious moves to an older history entry.
func (m Model) handleHistoryPrevious() (tea.Model, tea.Cmd) {
	if len(m.historyValues) == 0 {
		return m, nil
	}

	if !m.hasNavigatedHistory {
		m.savedCurrentInput = m.buffer.Text()
		m.hasNavigatedHistory = true
	}

	if m.historyIndex < len(m.historyValues) {
		m.historyIndex++
		m.buffer.SetText(m.historyValues[m.historyIndex-1])
	}
	return m, nil
}

// handleHistoryNext moves to a newer history entry, or back to the
// input that was being edited.
func (m Model) handleHistoryNext() (tea.Model, tea.Cmd) {
	if m.historyIndex <= 0 {
		return m, nil
	}

	m.historyIndex--
	if m.historyIndex == 0 {
		m.buffer.SetText(m.savedCurrentInput)
	} else {
		m.buffer.SetText(m.historyValues[m.historyIndex-1])
	}
	return m, nil
}

// handleComplete handles Tab. With only whitespace before the cursor it
// inserts an indent; otherwise it starts or cycles completion.
func (m Model) handleComplete() (tea.Model, tea.Cmd) {
	if m.completion.IsActive() {
		if suggestion := m.completion.NextSuggestion(); suggestion != "" {
			m.applyCompletion(suggestion)
		}
		return m, nil
	}

	if strings.TrimSpace(m.buffer.TextBeforeCursor()) == "" && m.indent != "" {
		m.buffer.Insert(m.indent)
		return m, nil
	}

	if m.completionProvider == nil {
		return m, nil
	}

	text := m.buffer.Text()
	pos := m.buffer.Pos()

	suggestions := m.completionProvider.GetCompletions(text, pos)
	if len(suggestions) == 0 {
		return m, nil
	}

	start, end := GetWordBoundary(text, pos)
	prefix := ""
	if runes := []rune(text); start < len(runes) {
		prefix = string(runes[start:min(end, len(runes))])
	}

	m.completion.Activate(suggestions, prefix, start, end)
	m.completion.SetOriginalText(text)

	if len(suggestions) == 1 {
		m.applyCompletion(suggestions[0])
		m.completion.Reset()
		return m, nil
	}

	if suggestion := m.completion.NextSuggestion(); suggestion != "" {
		m.applyCompletion(suggestion)
	}
	return m, nil
}

// handleCompleteBackward handles Shift+Tab.
func (m Model) handleCompleteBackward() (tea.Model, tea.Cmd) {
	if !m.completion.IsActive() {
		return m, nil
	}
	if suggestion := m.completion.PrevSuggestion(); suggestion != "" {
		m.applyCompletion(suggestion)
	}
	return m, nil
}

// applyCompletion replaces the current word with a candidate and moves
// the replacement window for the next cycle.
func (m *Model) applyCompletion(suggestion string) {
	result := ApplySuggestion(m.buffer.Text(), suggestion, m.completion.StartPos(), m.completion.EndPos())
	m.buffer.SetText(result.NewText)
	m.buffer.SetPos(result.NewCursorPos)

	newStart, newEnd := GetWordBoundary(result.NewText, result.NewCursorPos)
	m.completion.UpdateBoundaries(suggestion, newStart, newEnd)
}

// handleHistorySearchStart enters reverse history search.
func (m Model) handleHistorySearchStart() (tea.Model, tea.Cmd) {
	if m.searcher == nil {
		return m, nil
	}
	m.completion.Reset()
	m.search.Start(m.buffer.Text())
	return m, nil
}

// handleSearchKey processes keys while reverse history search is
// active.
func (m Model) handleSearchKey(msg tea.KeyMsg, action Action) (tea.Model, tea.Cmd) {
	switch action {
	case ActionSubmit:
		m.buffer.SetText(m.search.Accept())
		return m.handleSubmit()

	case ActionCancel:
		m.buffer.SetText(m.search.Cancel())
		return m, nil

	case ActionInterrupt:
		return m.handleInterrupt()

	case ActionHistorySearch:
		m.search.NextMatch()
		m.syncSearchBuffer()
		return m, nil

	case ActionDeleteCharacterBackward:
		if m.search.DeleteChar() {
			m.refreshSearchMatches()
		}
		return m, nil

	case ActionNone:
		if len(msg.Runes) > 0 {
			for _, r := range sanitizeRunes(msg.Runes) {
				m.search.AddChar(r)
			}
			m.refreshSearchMatches()
		}
		return m, nil

	default:
		// Any other edit key accepts the match and exits the search.
		m.buffer.SetText(m.search.Accept())
		return m, nil
	}
}

// refreshSearchMatches re-runs the searcher for the current query.
func (m *Model) refreshSearchMatches() {
	if m.search.Query() == "" {
		m.search.SetMatches(nil)
	} else {
		m.search.SetMatches(m.searcher(m.search.Query()))
	}
	m.syncSearchBuffer()
}

// syncSearchBuffer mirrors the selected match into the edit buffer.
func (m *Model) syncSearchBuffer() {
	if match := m.search.CurrentMatch(); match != "" {
		m.buffer.SetText(match)
	}
}

// onTextChanged refreshes the contextual help panel after an edit.
func (m Model) onTextChanged() (tea.Model, tea.Cmd) {
	m.helpText = ""
	if m.completionProvider != nil {
		m.helpText = m.completionProvider.GetHelpInfo(m.buffer.Text(), m.buffer.Pos())
	}
	return m, nil
}

// sanitizeRunes replaces control whitespace in typed or pasted text
// with plain spaces.
func sanitizeRunes(runes []rune) []rune {
	result := make([]rune, len(runes))
	for i, r := range runes {
		switch r {
		case '\t', '\n', '\r':
			result[i] = ' '
		default:
			result[i] = r
		}
	}
	return result
}
