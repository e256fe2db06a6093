package app

import (
	"github.com/bethropolis/gapedit/internal/core"
	"github.com/bethropolis/gapedit/internal/input"
)

// commandFunc carries out one input action.
type commandFunc func(a *App, ev input.ActionEvent)

// commandTable binds every action to the code that runs it.
type commandTable map[input.Action]commandFunc

// perform returns a command executing an editor action through the undo
// history.
func perform(action core.Action) commandFunc {
	return func(a *App, _ input.ActionEvent) {
		a.editor.Perform(action)
	}
}

func newCommandTable() commandTable {
	return commandTable{
		input.ActionMoveUp:       perform(core.Move(core.Up)),
		input.ActionMoveDown:     perform(core.Move(core.Down)),
		input.ActionMoveLeft:     perform(core.Move(core.Left)),
		input.ActionMoveRight:    perform(core.Move(core.Right)),
		input.ActionMovePageUp:   perform(core.Move(core.PageUp)),
		input.ActionMovePageDown: perform(core.Move(core.PageDown)),
		input.ActionMoveHome:     perform(core.Move(core.LineHome)),
		input.ActionMoveEnd:      perform(core.Move(core.LineEnd)),

		input.ActionInsertRune: func(a *App, ev input.ActionEvent) {
			a.editor.Perform(core.InsertChar(ev.Rune))
		},
		input.ActionInsertNewLine:      perform(core.InsertChar('\n')),
		input.ActionInsertTab:          perform(core.InsertChar('\t')),
		input.ActionDeleteCharForward:  perform(core.DeleteRight()),
		input.ActionDeleteCharBackward: perform(core.DeleteLeft()),
		input.ActionKillLine:           perform(core.KillLine()),
		input.ActionYank:               perform(core.Yank()),

		input.ActionUndo:     func(a *App, _ input.ActionEvent) { a.editor.Undo() },
		input.ActionRedo:     func(a *App, _ input.ActionEvent) { a.editor.Redo() },
		input.ActionRecenter: func(a *App, _ input.ActionEvent) { a.editor.Recenter() },
		input.ActionSave: func(a *App, _ input.ActionEvent) {
			_ = a.editor.Save() // Failure is reported on the status line
		},
		input.ActionQuit: func(a *App, _ input.ActionEvent) {
			a.quit = a.editor.Quit()
		},
	}
}
