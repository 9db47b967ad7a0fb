// Package input is the line editor of the REPL: a Bubble Tea component
// handling text editing, key bindings, tab completion, history
// navigation and reverse history search.
package input

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ResultType says how an input session ended.
type ResultType int

const (
	// ResultNone means the session is still editing.
	ResultNone ResultType = iota
	// ResultSubmit means the user submitted a line (Enter).
	ResultSubmit
	// ResultInterrupt means the user pressed Ctrl+C.
	ResultInterrupt
	// ResultEOF means Ctrl+D on an empty line.
	ResultEOF
)

// Result is the outcome of an input session.
type Result struct {
	Type  ResultType
	Value string
}

// Config configures a new input Model.
type Config struct {
	// Prompt is shown before the input text.
	Prompt string

	// Indent is inserted when Tab is pressed with nothing but
	// whitespace before the cursor. Empty disables indenting.
	Indent string

	// HistoryValues is previous input for Up/Down navigation, most
	// recent first.
	HistoryValues []string

	// CompletionProvider supplies tab-completion candidates.
	CompletionProvider CompletionProvider

	// HistorySearcher backs reverse history search (Ctrl+R).
	HistorySearcher HistorySearcher

	// KeyMap overrides the default bindings when non-nil.
	KeyMap *KeyMap

	// RenderConfig overrides the default styles when non-nil.
	RenderConfig *RenderConfig

	// MinHeight pads the rendered view to at least this many lines.
	MinHeight int

	// Width is the initial terminal width.
	Width int

	Logger *zap.Logger
}

// Model is the Bubble Tea model for the line editor.
type Model struct {
	buffer  *Buffer
	keymap  *KeyMap
	focused bool

	prompt string
	indent string

	historyValues       []string
	historyIndex        int // 0 = current input, 1+ = history entries
	savedCurrentInput   string
	hasNavigatedHistory bool

	completion         *CompletionState
	completionProvider CompletionProvider

	search   *HistorySearchState
	searcher HistorySearcher

	renderer  *Renderer
	width     int
	minHeight int
	helpText  string

	result Result
	logger *zap.Logger
}

// New creates an input Model.
func New(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	keymap := cfg.KeyMap
	if keymap == nil {
		keymap = DefaultKeyMap()
	}

	renderConfig := cfg.RenderConfig
	if renderConfig == nil {
		defaults := DefaultRenderConfig()
		renderConfig = &defaults
	}

	width := cfg.Width
	if width <= 0 {
		width = 80
	}
	renderer := NewRenderer(*renderConfig)
	renderer.SetWidth(width)

	return Model{
		buffer:             NewBuffer(),
		keymap:             keymap,
		focused:            true,
		prompt:             cfg.Prompt,
		indent:             cfg.Indent,
		historyValues:      cfg.HistoryValues,
		completion:         NewCompletionState(),
		completionProvider: cfg.CompletionProvider,
		search:             NewHistorySearchState(),
		searcher:           cfg.HistorySearcher,
		renderer:           renderer,
		width:              width,
		minHeight:          cfg.MinHeight,
		result:             Result{Type: ResultNone},
		logger:             logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.renderer.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case pasteMsg:
		return m.handlePaste(string(msg))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.result.Type != ResultNone {
		return m.renderFinalView()
	}

	prompt := m.prompt
	if m.search.IsActive() {
		prompt = m.renderer.RenderHistorySearchPrompt(m.search)
	}

	return m.renderer.RenderFullView(prompt, m.buffer, m.focused, m.completion, m.helpText, m.minHeight)
}

// Result returns the session outcome; Type is ResultNone while still
// editing.
func (m Model) Result() Result {
	return m.result
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.buffer.Text()
}

// SetValue replaces the input text.
func (m *Model) SetValue(text string) {
	m.buffer.SetText(text)
	m.historyIndex = 0
	m.hasNavigatedHistory = false
}

// SetHistoryValues replaces the history used for Up/Down navigation.
func (m *Model) SetHistoryValues(values []string) {
	m.historyValues = values
	m.historyIndex = 0
	m.hasNavigatedHistory = false
}

// Buffer exposes the underlying buffer for tests.
func (m Model) Buffer() *Buffer {
	return m.buffer
}

// Completion exposes the completion state for tests.
func (m Model) Completion() *CompletionState {
	return m.completion
}

// Search exposes the history search state for tests.
func (m Model) Search() *HistorySearchState {
	return m.search
}

// handleKeyMsg routes a key press to its handler.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keymap.Lookup(msg)

	if m.search.IsActive() {
		return m.handleSearchKey(msg, action)
	}

	if m.completion.IsActive() {
		switch action {
		case ActionComplete, ActionCursorDown:
			return m.handleComplete()
		case ActionCompleteBackward, ActionCursorUp:
			return m.handleCompleteBackward()
		case ActionCancel:
			m.buffer.SetText(m.completion.Cancel())
			return m, nil
		case ActionSubmit:
			m.completion.Reset()
			return m.handleSubmit()
		}
		// Any other key leaves completion mode.
		m.completion.Reset()
	}

	switch action {
	case ActionSubmit:
		return m.handleSubmit()

	case ActionInterrupt:
		return m.handleInterrupt()

	case ActionDeleteCharacterForward:
		// Ctrl+D on an empty line means EOF.
		if m.buffer.Len() == 0 {
			return m.handleEOF()
		}
		return m.handleEdit((*Buffer).DeleteCharForward)

	case ActionEOF:
		return m.handleEOF()

	case ActionClearScreen:
		return m, tea.ClearScreen

	case ActionPaste:
		return m, Paste

	case ActionComplete:
		return m.handleComplete()

	case ActionCompleteBackward:
		return m.handleCompleteBackward()

	case ActionHistorySearch:
		return m.handleHistorySearchStart()

	case ActionCancel:
		return m, nil

	case ActionCharacterForward:
		m.buffer.SetPos(m.buffer.Pos() + 1)
		return m, nil

	case ActionCharacterBackward:
		m.buffer.SetPos(m.buffer.Pos() - 1)
		return m, nil

	case ActionWordForward:
		m.buffer.WordForward()
		return m, nil

	case ActionWordBackward:
		m.buffer.WordBackward()
		return m, nil

	case ActionLineStart:
		m.buffer.CursorStart()
		return m, nil

	case ActionLineEnd:
		m.buffer.CursorEnd()
		return m, nil

	case ActionDeleteCharacterBackward:
		return m.handleEdit((*Buffer).DeleteCharBackward)

	case ActionDeleteWordBackward:
		return m.handleEditVoid((*Buffer).DeleteWordBackward)

	case ActionDeleteWordForward:
		return m.handleEditVoid((*Buffer).DeleteWordForward)

	case ActionDeleteBeforeCursor:
		return m.handleEditVoid((*Buffer).DeleteBeforeCursor)

	case ActionDeleteAfterCursor:
		return m.handleEditVoid((*Buffer).DeleteAfterCursor)

	case ActionCursorUp:
		return m.handleHistoryPrevious()

	case ActionCursorDown:
		return m.handleHistoryNext()

	default:
		if len(msg.Runes) > 0 {
			return m.handleInsertRunes(msg.Runes)
		}
	}

	return m, nil
}

// renderFinalView renders the last frame after the session ended.
func (m Model) renderFinalView() string {
	if m.result.Type == ResultInterrupt {
		return ""
	}
	return m.renderer.RenderInputLine(m.prompt, m.buffer, false)
}

// pasteMsg carries clipboard content into the update loop.
type pasteMsg string

// Paste is a tea.Cmd that reads the system clipboard.
func Paste() tea.Msg {
	str, err := clipboard.ReadAll()
	if err != nil {
		return nil
	}
	return pasteMsg(str)
}

// Run reads one line of input on the terminal, blocking until the user
// submits, interrupts or signals EOF.
func Run(cfg Config) (Result, error) {
	program := tea.NewProgram(New(cfg))
	final, err := program.Run()
	if err != nil {
		return Result{}, err
	}
	model, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected final model type %T", final)
	}
	return model.Result(), nil
}
