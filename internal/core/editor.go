// internal/core/editor.go
package core

import (
	"fmt"

	"github.com/bethropolis/gapedit/internal/core/history"
	"github.com/bethropolis/gapedit/internal/event"
	"github.com/bethropolis/gapedit/internal/logger"
	"github.com/bethropolis/gapedit/internal/types"
)

// Action is an editor command. Execute returns the scrap that reverses it,
// or nil for commands that change nothing undoable.
type Action = history.Action[*Editor]

// ActionFunc adapts a function to Action.
type ActionFunc = history.ActionFunc[*Editor]

// commandState is what a command leaves behind for the one after it.
type commandState struct {
	goal int  // Column kept across vertical moves, -1 if none
	kill bool // Command was a kill, so the next kill appends
	quit bool // Command was a refused quit, so the next quit goes through
}

var freshState = commandState{goal: -1}

// Editor carries out commands on a Document and keeps their history.
type Editor struct {
	doc          *Document
	history      *history.Manager
	killRing     *KillRing
	eventManager *event.Manager

	pageRows int // Lines moved by page up/down

	prev commandState // Left by the previous command
	cur  commandState // Being built by the current command
}

// NewEditor creates an editor over doc. maxHistory bounds the undo stack
// (0 means unbounded).
func NewEditor(doc *Document, maxHistory int, killRing *KillRing) *Editor {
	if killRing == nil {
		killRing = NewKillRing(false)
	}
	e := &Editor{
		doc:      doc,
		history:  history.NewManager(maxHistory),
		killRing: killRing,
		pageRows: 1,
		prev:     freshState,
		cur:      freshState,
	}
	doc.SetChangeHook(e.documentChanged)
	return e
}

// SetEventManager sets the event manager for dispatching events.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// SetPageRows sets how far page up/down move.
func (e *Editor) SetPageRows(n int) {
	e.pageRows = max(n, 1)
}

// Document returns the document being edited.
func (e *Editor) Document() *Document { return e.doc }

// History returns the undo history.
func (e *Editor) History() *history.Manager { return e.history }

// begin starts a new command: what the last one built becomes prev.
func (e *Editor) begin() {
	e.prev, e.cur = e.cur, freshState
}

// Perform executes a command. If it produced a scrap, the scrap is wrapped
// with the point before and after execution and recorded, so undo and redo
// put the point back exactly.
func (e *Editor) Perform(a Action) {
	e.begin()
	before := e.doc.State()
	recorded := e.history.Perform(func() history.Scrap {
		change := a.Execute(e)
		if change == nil {
			return nil
		}
		return history.Wrap(before, change, e.doc.State())
	})
	if recorded {
		e.doc.SetModified(true)
	}
}

// Undo reverts the latest change, ringing the bell if there is none.
func (e *Editor) Undo() {
	e.begin()
	if !e.history.Undo() {
		e.Beep()
		return
	}
	e.doc.SetModified(true)
}

// Redo reapplies the latest undone change, ringing the bell if there is none.
func (e *Editor) Redo() {
	e.begin()
	if !e.history.Redo() {
		e.Beep()
		return
	}
	e.doc.SetModified(true)
}

// Bell rings the bell as a command of its own, so it ends any run of kills
// or vertical moves.
func (e *Editor) Bell() {
	e.begin()
	e.Beep()
}

// Beep asks for an audible alert.
func (e *Editor) Beep() {
	e.dispatch(event.TypeBell, nil)
}

// Message shows text on the status line.
func (e *Editor) Message(format string, args ...interface{}) {
	e.dispatch(event.TypeMessage, event.MessageData{Text: fmt.Sprintf(format, args...)})
}

// Recenter asks the display to centre the point.
func (e *Editor) Recenter() {
	e.begin()
	e.dispatch(event.TypeScroll, event.ScrollData{Recenter: true})
}

// LoadFile reads a file into the document and forgets the old history.
func (e *Editor) LoadFile(filePath string) error {
	e.begin()
	n, err := e.doc.LoadFile(filePath)
	e.history.Reset()
	if err != nil {
		logger.Errorf("Editor: %v", err)
		e.Message("%v", err)
		return err
	}
	logger.Infof("Editor: loaded %d characters from '%s'", n, filePath)
	e.dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: filePath, Length: n})
	return nil
}

// Save writes the document to its file.
func (e *Editor) Save() error {
	e.begin()
	n, err := e.doc.SaveFile("")
	if err != nil {
		logger.Errorf("Editor: save failed: %v", err)
		e.Message("%v", err)
		return err
	}
	e.Message("Wrote %s", e.doc.FilePath())
	e.dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: e.doc.FilePath(), Bytes: n})
	return nil
}

// Quit reports whether the session may end. With unsaved changes the first
// request is refused with a warning and a second one in a row succeeds.
func (e *Editor) Quit() bool {
	e.begin()
	if !e.doc.IsModified() || e.prev.quit {
		return true
	}
	e.cur.quit = true
	e.Message("Buffer modified; quit again to discard changes")
	return false
}

func (e *Editor) documentChanged(edit types.EditInfo) {
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit})
}

func (e *Editor) dispatch(eventType event.Type, data interface{}) {
	e.eventManager.Dispatch(eventType, data)
}
