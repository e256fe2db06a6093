// internal/core/document.go
package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/bethropolis/gapedit/internal/buffer"
	"github.com/bethropolis/gapedit/internal/types"
)

// Damage is the part of the view that must be repainted after edits.
// Levels are ordered: a larger value covers a smaller one.
type Damage int

const (
	DamageNone Damage = iota // Nothing changed on screen
	DamageLine               // Only the line holding the point changed
	DamageFull               // Line structure may have changed
)

func (d Damage) String() string {
	switch d {
	case DamageNone:
		return "none"
	case DamageLine:
		return "line"
	default:
		return "full"
	}
}

// Document is an editable text: a gap buffer with its line map, a point
// (the cursor offset), a file name and the damage accumulated since the
// display last asked.
//
// Every mutation updates the text first, then the line map, then folds the
// damage. Mutations never move the point; commands do that.
type Document struct {
	text  *buffer.GapBuffer
	lines *buffer.LineIndex

	point    int
	damage   Damage
	filePath string
	modified bool
	chunk    int // Read size used by Load

	onChange func(types.EditInfo)
}

// NewDocument creates an empty document. capacity is the initial size of
// the gap buffer and chunk the read size used when loading a stream.
func NewDocument(capacity, chunk int) *Document {
	if chunk <= 0 {
		chunk = buffer.DefaultChunk
	}
	text := buffer.NewGapBuffer(capacity)
	return &Document{
		text:  text,
		lines: buffer.NewLineIndex(text),
		chunk: chunk,
	}
}

// NewDocumentString creates a document holding s with the point at 0.
func NewDocumentString(s string) *Document {
	d := NewDocument(utf8.RuneCountInString(s), buffer.DefaultChunk)
	d.text.InsertString(0, s)
	d.lines.Remap()
	return d
}

// SetChangeHook installs fn to be called after every change to the text.
func (d *Document) SetChangeHook(fn func(types.EditInfo)) {
	d.onChange = fn
}

func (d *Document) changed(offset, inserted, deleted int, damage Damage) {
	d.damage = max(d.damage, damage)
	if d.onChange != nil {
		d.onChange(types.EditInfo{Offset: offset, Inserted: inserted, Deleted: deleted})
	}
}

// --- Queries ---

// Len returns the number of characters in the document.
func (d *Document) Len() int { return d.text.Len() }

// CharAt returns the character at pos.
func (d *Document) CharAt(pos int) rune { return d.text.CharAt(pos) }

// LineCount returns the number of lines including the final one.
func (d *Document) LineCount() int { return d.lines.LineCount() }

// LineLength returns the length of line n including its terminator.
func (d *Document) LineLength(n int) int { return d.lines.LineLength(n) }

// LineStart returns the offset of the first character of line n.
func (d *Document) LineStart(n int) int { return d.lines.LineStart(n) }

// Row returns the line containing pos.
func (d *Document) Row(pos int) int { return d.lines.Row(pos) }

// Column returns the offset of pos within its line.
func (d *Document) Column(pos int) int { return d.lines.Column(pos) }

// Pos returns the offset nearest to (row, col).
func (d *Document) Pos(row, col int) int { return d.lines.Pos(row, col) }

// LineEnd returns the offset of the newline ending line n, or Len() for
// the last line.
func (d *Document) LineEnd(n int) int {
	return d.lines.LineStart(n) + d.lines.LineLength(n) - 1
}

// GetRange returns a copy of n characters starting at start.
func (d *Document) GetRange(start, n int) string { return d.text.GetRange(start, n) }

// CopyRange appends n characters starting at start to dst.
func (d *Document) CopyRange(start, n int, dst []rune) []rune {
	return d.text.CopyRange(start, n, dst)
}

// FetchLine appends line n, without its newline, to dst.
func (d *Document) FetchLine(n int, dst []rune) []rune {
	return d.text.CopyRange(d.LineStart(n), d.LineLength(n)-1, dst)
}

// String returns the whole text.
func (d *Document) String() string { return d.text.String() }

// WriteTo writes the whole text to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) { return d.text.WriteTo(w) }

// --- Mutations ---

// InsertChar inserts ch at pos.
func (d *Document) InsertChar(pos int, ch rune) {
	d.text.Insert(pos, ch)
	d.lines.CharInserted(pos, ch)
	damage := DamageLine
	if ch == '\n' {
		damage = DamageFull
	}
	d.changed(pos, 1, 0, damage)
}

// InsertString inserts s at pos.
func (d *Document) InsertString(pos int, s string) {
	d.text.InsertString(pos, s)
	d.lines.Remap()
	d.changed(pos, utf8.RuneCountInString(s), 0, DamageFull)
}

// InsertRunes inserts rs at pos.
func (d *Document) InsertRunes(pos int, rs []rune) {
	d.text.InsertRunes(pos, rs)
	d.lines.Remap()
	d.changed(pos, len(rs), 0, DamageFull)
}

// InsertRange inserts n characters of src, starting at start, at pos.
// src must be a different document.
func (d *Document) InsertRange(pos int, src *Document, start, n int) {
	d.text.InsertRange(pos, src.text, start, n)
	d.lines.Remap()
	d.changed(pos, n, 0, DamageFull)
}

// DeleteChar removes the character at pos and returns it.
func (d *Document) DeleteChar(pos int) rune {
	ch := d.text.CharAt(pos)
	d.text.DeleteChar(pos)
	d.lines.CharDeleted(pos, ch)
	damage := DamageLine
	if ch == '\n' {
		damage = DamageFull
	}
	d.changed(pos, 0, 1, damage)
	return ch
}

// DeleteRange removes n characters starting at start and returns them.
func (d *Document) DeleteRange(start, n int) string {
	s := d.text.GetRange(start, n)
	d.text.DeleteRange(start, n)
	d.lines.RangeDeleted(start, n)
	d.changed(start, 0, n, DamageFull)
	return s
}

// Clear empties the document and moves the point to 0.
func (d *Document) Clear() {
	n := d.text.Len()
	d.text.Clear()
	d.lines.Reset()
	d.point = 0
	d.changed(0, 0, n, DamageFull)
}

// Load replaces the text with the contents of r. Characters read before an
// error stay in the document, and the line map covers them either way.
func (d *Document) Load(r io.Reader) (n int, err error) {
	d.text.Clear()
	d.point = 0
	defer func() {
		d.lines.Remap()
		d.damage = DamageFull
	}()
	return d.text.InsertFrom(0, r, d.chunk)
}

// LoadFile replaces the text with the contents of the named file. A file
// that does not exist yields an empty document with that name. Bytes that
// are not valid UTF-8 load as U+FFFD, so saving such a file rewrites them.
func (d *Document) LoadFile(filePath string) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			d.Clear()
			d.filePath = filePath
			d.modified = false
			return 0, nil
		}
		return 0, fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	n, err := d.Load(file)
	d.filePath = filePath
	d.modified = false
	if err != nil {
		return n, fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	return n, nil
}

// SaveFile writes the text to filePath, or to the document's own file name
// when filePath is empty. It returns the number of bytes written.
func (d *Document) SaveFile(filePath string) (int64, error) {
	path := d.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return 0, errors.New("no file path specified for saving")
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file '%s': %w", path, err)
	}
	w := bufio.NewWriter(file)
	n, err := d.text.WriteTo(w)
	if err == nil {
		err = w.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	d.filePath = path
	d.modified = false
	return n, nil
}

// --- Point, damage and file state ---

// Point returns the cursor offset.
func (d *Document) Point() int { return d.point }

// SetPoint moves the cursor, clamping pos to [0, Len()].
func (d *Document) SetPoint(pos int) {
	d.point = min(max(pos, 0), d.text.Len())
}

// PointPosition returns the row and column of the point.
func (d *Document) PointPosition() types.Position {
	return types.Position{Line: d.lines.Row(d.point), Col: d.lines.Column(d.point)}
}

// QueryDamageAndClear returns the damage accumulated since the last call
// and the position of the point, then resets the damage to none.
func (d *Document) QueryDamageAndClear() (Damage, types.Position) {
	damage := d.damage
	d.damage = DamageNone
	return damage, d.PointPosition()
}

// ForceDamage raises the damage to at least level.
func (d *Document) ForceDamage(level Damage) {
	d.damage = max(d.damage, level)
}

// FilePath returns the name of the file the document was loaded from.
func (d *Document) FilePath() string { return d.filePath }

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool { return d.modified }

// SetModified sets the unsaved-changes flag.
func (d *Document) SetModified(modified bool) { d.modified = modified }

// State captures the point so it can be put back later.
func (d *Document) State() PointState {
	return PointState{doc: d, point: d.point}
}

// PointState is a saved point. It is the auxiliary state restored around
// undo and redo.
type PointState struct {
	doc   *Document
	point int
}

// Restore moves the point back to where it was captured.
func (s PointState) Restore() {
	s.doc.SetPoint(s.point)
}
