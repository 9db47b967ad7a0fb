package input

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Action is an editing operation a key press can trigger.
type Action int

const (
	ActionNone Action = iota

	// Navigation
	ActionCharacterForward
	ActionCharacterBackward
	ActionWordForward
	ActionWordBackward
	ActionLineStart
	ActionLineEnd

	// Deletion
	ActionDeleteCharacterBackward
	ActionDeleteCharacterForward
	ActionDeleteWordBackward
	ActionDeleteWordForward
	ActionDeleteBeforeCursor
	ActionDeleteAfterCursor

	// Vertical navigation: history when idle, candidate cycling while
	// completion is active.
	ActionCursorUp
	ActionCursorDown

	// Completion
	ActionComplete
	ActionCompleteBackward

	// History search (Ctrl+R)
	ActionHistorySearch

	ActionSubmit
	ActionCancel
	ActionInterrupt
	ActionEOF
	ActionClearScreen
	ActionPaste
)

var actionNames = map[Action]string{
	ActionNone:                    "None",
	ActionCharacterForward:        "CharacterForward",
	ActionCharacterBackward:       "CharacterBackward",
	ActionWordForward:             "WordForward",
	ActionWordBackward:            "WordBackward",
	ActionLineStart:               "LineStart",
	ActionLineEnd:                 "LineEnd",
	ActionDeleteCharacterBackward: "DeleteCharacterBackward",
	ActionDeleteCharacterForward:  "DeleteCharacterForward",
	ActionDeleteWordBackward:      "DeleteWordBackward",
	ActionDeleteWordForward:       "DeleteWordForward",
	ActionDeleteBeforeCursor:      "DeleteBeforeCursor",
	ActionDeleteAfterCursor:       "DeleteAfterCursor",
	ActionCursorUp:                "CursorUp",
	ActionCursorDown:              "CursorDown",
	ActionComplete:                "Complete",
	ActionCompleteBackward:        "CompleteBackward",
	ActionHistorySearch:           "HistorySearch",
	ActionSubmit:                  "Submit",
	ActionCancel:                  "Cancel",
	ActionInterrupt:               "Interrupt",
	ActionEOF:                     "EOF",
	ActionClearScreen:             "ClearScreen",
	ActionPaste:                   "Paste",
}

// String returns the action's configuration name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ActionByName resolves a configuration name like "Complete" or
// "ClearScreen" to its Action.
func ActionByName(name string) (Action, bool) {
	for action, actionName := range actionNames {
		if actionName == name {
			return action, true
		}
	}
	return ActionNone, false
}

// KeyBinding maps one or more key sequences to an action. Key strings
// use the line editor's notation ("ctrl+a", "alt+backspace", "tab").
type KeyBinding struct {
	Keys   []string
	Action Action
}

// KeyMap maps key presses to actions with O(1) lookup.
type KeyMap struct {
	bindings []KeyBinding
	lookup   map[string]Action
}

// NewKeyMap creates a KeyMap from the given bindings.
func NewKeyMap(bindings []KeyBinding) *KeyMap {
	km := &KeyMap{bindings: bindings}
	km.rebuildLookup()
	return km
}

func (km *KeyMap) rebuildLookup() {
	km.lookup = make(map[string]Action)
	for _, b := range km.bindings {
		for _, key := range b.Keys {
			km.lookup[key] = b.Action
		}
	}
}

// DefaultKeyMap returns the default Emacs-style bindings.
func DefaultKeyMap() *KeyMap {
	return NewKeyMap([]KeyBinding{
		{Keys: []string{"right", "ctrl+f"}, Action: ActionCharacterForward},
		{Keys: []string{"left", "ctrl+b"}, Action: ActionCharacterBackward},
		{Keys: []string{"alt+right", "ctrl+right", "alt+f"}, Action: ActionWordForward},
		{Keys: []string{"alt+left", "ctrl+left", "alt+b"}, Action: ActionWordBackward},
		{Keys: []string{"home", "ctrl+a"}, Action: ActionLineStart},
		{Keys: []string{"end", "ctrl+e"}, Action: ActionLineEnd},

		{Keys: []string{"backspace", "ctrl+h"}, Action: ActionDeleteCharacterBackward},
		{Keys: []string{"delete", "ctrl+d"}, Action: ActionDeleteCharacterForward},
		{Keys: []string{"ctrl+w", "alt+backspace"}, Action: ActionDeleteWordBackward},
		{Keys: []string{"alt+d", "alt+delete"}, Action: ActionDeleteWordForward},
		{Keys: []string{"ctrl+u"}, Action: ActionDeleteBeforeCursor},
		{Keys: []string{"ctrl+k"}, Action: ActionDeleteAfterCursor},

		{Keys: []string{"up", "ctrl+p"}, Action: ActionCursorUp},
		{Keys: []string{"down", "ctrl+n"}, Action: ActionCursorDown},

		{Keys: []string{"tab"}, Action: ActionComplete},
		{Keys: []string{"shift+tab"}, Action: ActionCompleteBackward},

		{Keys: []string{"ctrl+r"}, Action: ActionHistorySearch},

		{Keys: []string{"enter"}, Action: ActionSubmit},
		{Keys: []string{"esc"}, Action: ActionCancel},
		{Keys: []string{"ctrl+c"}, Action: ActionInterrupt},
		{Keys: []string{"ctrl+l"}, Action: ActionClearScreen},
		{Keys: []string{"ctrl+v"}, Action: ActionPaste},
	})
}

// Lookup finds the action bound to a key message, or ActionNone.
func (km *KeyMap) Lookup(msg tea.KeyMsg) Action {
	return km.lookup[msg.String()]
}

// SetBinding replaces the binding for an action, or adds one if the
// action is unbound.
func (km *KeyMap) SetBinding(binding KeyBinding) {
	for i, b := range km.bindings {
		if b.Action == binding.Action {
			km.bindings[i] = binding
			km.rebuildLookup()
			return
		}
	}
	km.bindings = append(km.bindings, binding)
	km.rebuildLookup()
}

// GetBinding returns the binding for an action, or nil.
func (km *KeyMap) GetBinding(action Action) *KeyBinding {
	for i := range km.bindings {
		if km.bindings[i].Action == action {
			return &km.bindings[i]
		}
	}
	return nil
}

// ApplyOverrides rebinds actions from a configuration map of action
// name to key sequences. Unknown action names are reported as errors;
// known ones are applied regardless.
func (km *KeyMap) ApplyOverrides(overrides map[string][]string) []error {
	var errs []error
	for name, keys := range overrides {
		action, ok := ActionByName(name)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown input action %q", name))
			continue
		}
		km.SetBinding(KeyBinding{Keys: keys, Action: action})
	}
	return errs
}

// Bindings returns a copy of all bindings.
func (km *KeyMap) Bindings() []KeyBinding {
	result := make([]KeyBinding, len(km.bindings))
	for i, b := range km.bindings {
		keys := make([]string, len(b.Keys))
		copy(keys, b.Keys)
		result[i] = KeyBinding{Keys: keys, Action: b.Action}
	}
	return result
}
