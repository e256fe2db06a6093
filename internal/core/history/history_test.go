package history

import (
	"strings"
	"testing"
)

// counter is a tiny target: a string and a cursor.
type counter struct {
	text   string
	cursor int
}

// appendScrap records appending s; runs of appends merge until one of them
// ends in a newline.
type appendScrap struct {
	c *counter
	s string
}

func (a *appendScrap) Undo() { a.c.text = strings.TrimSuffix(a.c.text, a.s) }
func (a *appendScrap) Redo() { a.c.text += a.s }
func (a *appendScrap) Amalgamate(next Scrap) bool {
	other, ok := next.(*appendScrap)
	if !ok || strings.HasSuffix(a.s, "\n") {
		return false
	}
	a.s += other.s
	return true
}

// resetScrap never merges.
type resetScrap struct {
	c   *counter
	old string
}

func (r *resetScrap) Undo()                 { r.c.text = r.old }
func (r *resetScrap) Redo()                 { r.c.text = "" }
func (r *resetScrap) Amalgamate(Scrap) bool { return false }

type cursorState struct {
	c   *counter
	pos int
}

func (s cursorState) Restore() { s.c.cursor = s.pos }

func appendAction(s string) ActionFunc[*counter] {
	return func(c *counter) Scrap {
		c.text += s
		return &appendScrap{c: c, s: s}
	}
}

func perform(m *Manager, c *counter, a Action[*counter]) bool {
	return m.Perform(func() Scrap { return a.Execute(c) })
}

func TestManager_UndoRedoBoundaries(t *testing.T) {
	m := NewManager(0)
	if m.Undo() || m.Redo() {
		t.Fatalf("expected no-op undo/redo on empty history")
	}

	c := &counter{}
	perform(m, c, ActionFunc[*counter](func(c *counter) Scrap {
		old := c.text
		c.text = ""
		return &resetScrap{c: c, old: old}
	}))
	if m.Len() != 1 || m.Pointer() != 1 || !m.CanUndo() || m.CanRedo() {
		t.Fatalf("unexpected state len=%d pointer=%d", m.Len(), m.Pointer())
	}
	if !m.Undo() || m.Undo() {
		t.Fatalf("expected exactly one undo")
	}
	if !m.Redo() || m.Redo() {
		t.Fatalf("expected exactly one redo")
	}
}

func TestManager_NonUndoableActionIsNotRecorded(t *testing.T) {
	m := NewManager(0)
	c := &counter{}
	recorded := perform(m, c, ActionFunc[*counter](func(c *counter) Scrap {
		c.cursor++
		return nil
	}))
	if recorded || m.Len() != 0 {
		t.Fatalf("expected nothing recorded, len=%d", m.Len())
	}
}

func TestManager_MergeAndNewlineBreak(t *testing.T) {
	m := NewManager(0)
	c := &counter{}
	for _, s := range []string{"a", "b", "c"} {
		perform(m, c, appendAction(s))
	}
	if m.Len() != 1 {
		t.Fatalf("expected one merged entry, got %d", m.Len())
	}
	m.Undo()
	if c.text != "" {
		t.Fatalf("expected single undo to revert everything, got %q", c.text)
	}

	m.Reset()
	for _, s := range []string{"a", "\n", "b"} {
		perform(m, c, appendAction(s))
	}
	if m.Len() != 2 {
		t.Fatalf("expected merge to stop after the newline, got %d entries", m.Len())
	}
	m.Undo()
	if c.text != "a\n" {
		t.Fatalf("expected 'a\\n' after one undo, got %q", c.text)
	}
}

func TestManager_NewActionDiscardsRedoTail(t *testing.T) {
	m := NewManager(0)
	c := &counter{}
	perform(m, c, appendAction("one\n"))
	perform(m, c, appendAction("two\n"))
	m.Undo()
	if !m.CanRedo() {
		t.Fatalf("expected redo to be available")
	}

	perform(m, c, appendAction("three\n"))
	if m.CanRedo() || m.Len() != 2 {
		t.Fatalf("expected redo tail dropped, len=%d", m.Len())
	}
	if c.text != "one\nthree\n" {
		t.Fatalf("unexpected text %q", c.text)
	}
}

func TestManager_UndoAllRedoAll(t *testing.T) {
	m := NewManager(0)
	c := &counter{}
	for _, s := range []string{"x\n", "y\n", "z\n"} {
		perform(m, c, appendAction(s))
	}
	want, wantPointer := c.text, m.Pointer()

	for m.Undo() {
	}
	if c.text != "" || m.Pointer() != 0 {
		t.Fatalf("expected empty text after undoing all, got %q", c.text)
	}
	for m.Redo() {
	}
	if c.text != want || m.Pointer() != wantPointer {
		t.Fatalf("expected %q at pointer %d, got %q at %d", want, wantPointer, c.text, m.Pointer())
	}
}

func TestManager_MaxHistory(t *testing.T) {
	m := NewManager(2)
	c := &counter{}
	for _, s := range []string{"1\n", "2\n", "3\n"} {
		perform(m, c, appendAction(s))
	}
	if m.Len() != 2 || m.Pointer() != 2 {
		t.Fatalf("expected 2 entries, got len=%d pointer=%d", m.Len(), m.Pointer())
	}
	m.Undo()
	m.Undo()
	if m.Undo() {
		t.Fatalf("oldest entry should have been evicted")
	}
	if c.text != "1\n" {
		t.Fatalf("expected '1\\n', got %q", c.text)
	}
}

func TestComposite_RestoresSnapshots(t *testing.T) {
	m := NewManager(0)
	c := &counter{}

	typeChar := func(s string) {
		m.Perform(func() Scrap {
			before := cursorState{c, c.cursor}
			change := appendAction(s).Execute(c)
			c.cursor += len(s)
			return Wrap(before, change, cursorState{c, c.cursor})
		})
	}
	typeChar("a")
	typeChar("b")
	if m.Len() != 1 {
		t.Fatalf("expected composites to merge, got %d entries", m.Len())
	}

	m.Undo()
	if c.text != "" || c.cursor != 0 {
		t.Fatalf("expected empty text and cursor 0, got %q/%d", c.text, c.cursor)
	}
	m.Redo()
	if c.text != "ab" || c.cursor != 2 {
		t.Fatalf("expected 'ab' with cursor 2 (later after-state), got %q/%d", c.text, c.cursor)
	}
}

func TestWrap_NilChange(t *testing.T) {
	if Wrap(cursorState{}, nil, cursorState{}) != nil {
		t.Fatalf("expected nil scrap for nil change")
	}
}
