package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/gapedit/internal/event"
)

type recorder struct {
	bells    int
	messages []string
	scrolls  []event.ScrollData
	modified int
}

func newTestEditor(t *testing.T, content string) (*Editor, *recorder) {
	t.Helper()
	rec := &recorder{}
	events := event.NewManager()
	events.Subscribe(event.TypeBell, func(event.Event) bool { rec.bells++; return false })
	events.Subscribe(event.TypeMessage, func(e event.Event) bool {
		rec.messages = append(rec.messages, e.Data.(event.MessageData).Text)
		return false
	})
	events.Subscribe(event.TypeScroll, func(e event.Event) bool {
		rec.scrolls = append(rec.scrolls, e.Data.(event.ScrollData))
		return false
	})
	events.Subscribe(event.TypeBufferModified, func(event.Event) bool { rec.modified++; return false })

	e := NewEditor(NewDocumentString(content), 0, nil)
	e.SetEventManager(events)
	return e, rec
}

func typeString(e *Editor, s string) {
	for _, ch := range s {
		e.Perform(InsertChar(ch))
	}
}

func TestEditor_InsertUndoRedo(t *testing.T) {
	e, _ := newTestEditor(t, "")
	d := e.Document()

	e.Perform(InsertChar('x'))
	e.Undo()
	if d.Len() != 0 || d.Point() != 0 {
		t.Fatalf("after undo: len=%d point=%d", d.Len(), d.Point())
	}
	e.Redo()
	if d.Len() != 1 || d.CharAt(0) != 'x' || d.Point() != 1 {
		t.Fatalf("after redo: %q point=%d", d.String(), d.Point())
	}
}

func TestEditor_TypingMerges(t *testing.T) {
	e, _ := newTestEditor(t, "")
	typeString(e, "abc")
	if e.History().Len() != 1 {
		t.Fatalf("expected one history entry, got %d", e.History().Len())
	}
	e.Undo()
	if e.Document().String() != "" || e.Document().Point() != 0 {
		t.Fatalf("single undo should revert the run, got %q", e.Document().String())
	}
}

func TestEditor_NewlineBreaksMerge(t *testing.T) {
	e, _ := newTestEditor(t, "")
	typeString(e, "a\nb")
	if e.History().Len() < 2 {
		t.Fatalf("expected at least two entries, got %d", e.History().Len())
	}
	e.Undo()
	if got := e.Document().String(); got != "a\n" {
		t.Fatalf("after one undo got %q", got)
	}
}

func TestEditor_MovingBreaksMerge(t *testing.T) {
	e, _ := newTestEditor(t, "")
	typeString(e, "ab")
	e.Perform(Move(Left))
	typeString(e, "X")
	if e.History().Len() != 2 {
		t.Fatalf("non-contiguous insert should not merge, got %d entries", e.History().Len())
	}
	e.Undo()
	if got := e.Document().String(); got != "ab" || e.Document().Point() != 1 {
		t.Fatalf("got %q point %d", got, e.Document().Point())
	}
}

func TestEditor_UndoAllRedoAll(t *testing.T) {
	e, _ := newTestEditor(t, "one\ntwo\nthree")
	d := e.Document()

	typeString(e, "zero\n")
	e.Perform(Move(Down))
	e.Perform(KillLine())
	e.Perform(KillLine())
	e.Perform(Move(Down))
	e.Perform(Yank())
	e.Perform(DeleteLeft())
	e.Perform(Move(LineHome))
	e.Perform(DeleteRight())

	want, wantPoint, wantPointer := d.String(), d.Point(), e.History().Pointer()
	steps := wantPointer
	for i := 0; i < steps; i++ {
		e.Undo()
	}
	if d.String() != "one\ntwo\nthree" || d.Point() != 0 {
		t.Fatalf("undo all: %q point %d", d.String(), d.Point())
	}
	for i := 0; i < steps; i++ {
		e.Redo()
	}
	if d.String() != want || d.Point() != wantPoint || e.History().Pointer() != wantPointer {
		t.Fatalf("redo all: %q point %d, want %q point %d", d.String(), d.Point(), want, wantPoint)
	}
}

func TestEditor_GoalColumn(t *testing.T) {
	e, rec := newTestEditor(t, "abcdef\nab\nabcdef")
	d := e.Document()
	d.SetPoint(5)

	e.Perform(Move(Down))
	if pos := d.PointPosition(); pos.Line != 1 || pos.Col != 2 {
		t.Fatalf("first down: %+v", pos)
	}
	e.Perform(Move(Down))
	if pos := d.PointPosition(); pos.Line != 2 || pos.Col != 5 {
		t.Fatalf("second down should return to the goal column: %+v", pos)
	}

	e.Perform(Move(Left))
	e.Perform(Move(Up))
	e.Perform(Move(Up))
	if pos := d.PointPosition(); pos.Line != 0 || pos.Col != 4 {
		t.Fatalf("goal should restart after a horizontal move: %+v", pos)
	}

	e.Perform(Move(Up))
	if rec.bells != 1 || d.PointPosition().Line != 0 {
		t.Fatalf("moving above the first line should beep, bells=%d", rec.bells)
	}
}

func TestEditor_LineHomeEnd(t *testing.T) {
	e, _ := newTestEditor(t, "abc\ndef")
	d := e.Document()
	d.SetPoint(5)
	e.Perform(Move(LineEnd))
	if d.Point() != 7 {
		t.Fatalf("end: %d", d.Point())
	}
	e.Perform(Move(LineHome))
	if d.Point() != 4 {
		t.Fatalf("home: %d", d.Point())
	}
}

func TestEditor_PageMoves(t *testing.T) {
	e, rec := newTestEditor(t, "0\n1\n2\n3\n4\n5\n6")
	d := e.Document()
	e.SetPageRows(4)

	e.Perform(Move(PageDown))
	if d.PointPosition().Line != 4 {
		t.Fatalf("page down: line %d", d.PointPosition().Line)
	}
	e.Perform(Move(PageDown))
	if d.PointPosition().Line != 6 || rec.bells != 0 {
		t.Fatalf("page down should stop at the last line without beeping")
	}
	if len(rec.scrolls) != 2 || rec.scrolls[0].Lines != 4 {
		t.Fatalf("unexpected scroll events %+v", rec.scrolls)
	}
}

func TestEditor_KillAndYank(t *testing.T) {
	e, rec := newTestEditor(t, "one\ntwo")
	d := e.Document()

	e.Perform(KillLine())
	if d.String() != "\ntwo" {
		t.Fatalf("first kill: %q", d.String())
	}
	e.Perform(KillLine())
	if d.String() != "two" {
		t.Fatalf("second kill should join lines: %q", d.String())
	}
	e.Perform(Yank())
	if d.String() != "one\ntwo" || d.Point() != 4 {
		t.Fatalf("yank: %q point %d", d.String(), d.Point())
	}

	e.Perform(Move(LineEnd))
	e.Perform(KillLine())
	if rec.bells != 1 {
		t.Fatalf("kill at end of text should beep")
	}

	// A move in between starts a fresh kill
	d.SetPoint(0)
	e.Perform(KillLine())
	e.Perform(Move(Right))
	e.Perform(KillLine())
	e.Perform(Move(LineEnd))
	e.Perform(Yank())
	if got := d.String(); got != "\ntwo" {
		t.Fatalf("got %q", got)
	}
}

func TestEditor_BellBreaksKillRun(t *testing.T) {
	e, rec := newTestEditor(t, "one\ntwo\n")
	d := e.Document()

	e.Perform(KillLine())
	e.Bell()
	e.Perform(KillLine())
	if rec.bells != 1 || d.String() != "two\n" {
		t.Fatalf("got %q with %d bells", d.String(), rec.bells)
	}
	e.Perform(Yank())
	if got := d.String(); got != "\ntwo\n" {
		t.Fatalf("kill after a bell should start a fresh register, got %q", got)
	}
}

func TestEditor_BellAtEdges(t *testing.T) {
	e, rec := newTestEditor(t, "")
	e.Perform(DeleteLeft())
	e.Perform(DeleteRight())
	e.Perform(Move(Left))
	e.Perform(Move(Right))
	e.Perform(Yank())
	e.Undo()
	e.Redo()
	if rec.bells != 7 {
		t.Fatalf("expected 7 bells, got %d", rec.bells)
	}
	if e.History().Len() != 0 || e.Document().IsModified() {
		t.Fatalf("nothing should have been recorded")
	}
}

func TestEditor_ModifiedEventsAndQuit(t *testing.T) {
	e, rec := newTestEditor(t, "")
	if !e.Quit() {
		t.Fatalf("an unmodified document should quit at once")
	}

	e.Perform(InsertChar('q'))
	if rec.modified != 1 || !e.Document().IsModified() {
		t.Fatalf("expected a modification event, got %d", rec.modified)
	}
	if e.Quit() {
		t.Fatalf("first quit with changes should be refused")
	}
	if len(rec.messages) == 0 {
		t.Fatalf("refused quit should explain itself")
	}
	e.Perform(Move(Left))
	if e.Quit() {
		t.Fatalf("quit after another command should be refused again")
	}
	if !e.Quit() {
		t.Fatalf("second quit in a row should succeed")
	}
}

func TestEditor_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("saved\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e, _ := newTestEditor(t, "")
	typeString(e, "scratch")
	if err := e.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if e.History().Len() != 0 || e.Document().String() != "saved\n" {
		t.Fatalf("load should replace text and reset history")
	}

	e.Perform(Move(LineEnd))
	typeString(e, "!")
	if err := e.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "saved!\n" || e.Document().IsModified() {
		t.Fatalf("file holds %q", raw)
	}
}

func TestEditor_Recenter(t *testing.T) {
	e, rec := newTestEditor(t, "text")
	e.Recenter()
	if len(rec.scrolls) != 1 || !rec.scrolls[0].Recenter {
		t.Fatalf("expected a recenter scroll event, got %+v", rec.scrolls)
	}
}

func TestEditor_MaxHistory(t *testing.T) {
	e := NewEditor(NewDocument(0, 0), 2, nil)
	typeString(e, "a\nb\nc\n")
	if e.History().Len() != 2 {
		t.Fatalf("history should be bounded, got %d", e.History().Len())
	}
}
