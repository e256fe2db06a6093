// internal/input/action.go
package input

import "strings"

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit
	ActionSave
	ActionRecenter

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line

	// --- Text Manipulation ---
	ActionInsertRune // Requires Rune argument
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward  // Delete key
	ActionDeleteCharBackward // Backspace key
	ActionKillLine
	ActionYank

	// --- History ---
	ActionUndo
	ActionRedo
)

// actionNames are the names used for actions in the [keys] config table.
var actionNames = map[Action]string{
	ActionUnknown:            "none",
	ActionQuit:               "quit",
	ActionSave:               "save",
	ActionRecenter:           "recenter",
	ActionMoveUp:             "move-up",
	ActionMoveDown:           "move-down",
	ActionMoveLeft:           "move-left",
	ActionMoveRight:          "move-right",
	ActionMovePageUp:         "page-up",
	ActionMovePageDown:       "page-down",
	ActionMoveHome:           "move-home",
	ActionMoveEnd:            "move-end",
	ActionInsertRune:         "insert-rune",
	ActionInsertNewLine:      "newline",
	ActionInsertTab:          "tab",
	ActionDeleteCharForward:  "delete-forward",
	ActionDeleteCharBackward: "delete-backward",
	ActionKillLine:           "kill-line",
	ActionYank:               "yank",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
}

var actionsByName = func() map[string]Action {
	m := make(map[string]Action, len(actionNames))
	for a, name := range actionNames {
		m[name] = a
	}
	return m
}()

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// ParseAction looks up an action by its config name. "none" unbinds a key.
func ParseAction(name string) (Action, bool) {
	a, ok := actionsByName[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// ActionEvent represents a decoded input event resulting in an action.
// It carries the rune for ActionInsertRune.
type ActionEvent struct {
	Action Action
	Rune   rune
}
