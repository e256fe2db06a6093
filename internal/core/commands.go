package core

import (
	"unicode/utf8"

	"github.com/bethropolis/gapedit/internal/core/history"
	"github.com/bethropolis/gapedit/internal/event"
)

// Direction says where a Move command takes the point.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	LineHome
	LineEnd
	PageUp
	PageDown
)

// Move returns a command moving the point. Consecutive vertical moves keep
// aiming for the column the first of them started from.
func Move(dir Direction) Action {
	return ActionFunc(func(e *Editor) history.Scrap {
		e.move(dir)
		return nil
	})
}

func (e *Editor) move(dir Direction) {
	d := e.doc
	p := d.Point()
	switch dir {
	case Left:
		if p == 0 {
			e.Beep()
			return
		}
		d.SetPoint(p - 1)
	case Right:
		if p == d.Len() {
			e.Beep()
			return
		}
		d.SetPoint(p + 1)
	case Up:
		e.moveRows(-1, false)
	case Down:
		e.moveRows(1, false)
	case LineHome:
		d.SetPoint(d.LineStart(d.Row(p)))
	case LineEnd:
		d.SetPoint(d.LineEnd(d.Row(p)))
	case PageUp:
		e.moveRows(-e.pageRows, true)
	case PageDown:
		e.moveRows(e.pageRows, true)
	}
}

// moveRows moves the point by delta lines towards the goal column. A single
// step off either end of the text rings the bell; a page move stops at the
// end and scrolls the view with it.
func (e *Editor) moveRows(delta int, page bool) {
	d := e.doc
	p := d.Point()
	goal := e.prev.goal
	if goal < 0 {
		goal = d.Column(p)
	}
	e.cur.goal = goal

	row := d.Row(p) + delta
	if !page && (row < 0 || row >= d.LineCount()) {
		e.Beep()
		return
	}
	d.SetPoint(d.Pos(row, goal))
	if page {
		e.dispatch(event.TypeScroll, event.ScrollData{Lines: delta})
	}
}

// InsertChar returns a command inserting ch at the point.
func InsertChar(ch rune) Action {
	return ActionFunc(func(e *Editor) history.Scrap {
		d := e.doc
		p := d.Point()
		d.InsertChar(p, ch)
		d.SetPoint(p + 1)
		return &charInsertion{doc: d, pos: p, text: []rune{ch}}
	})
}

// DeleteLeft returns a command deleting the character before the point.
func DeleteLeft() Action {
	return ActionFunc(func(e *Editor) history.Scrap {
		d := e.doc
		p := d.Point()
		if p == 0 {
			e.Beep()
			return nil
		}
		ch := d.DeleteChar(p - 1)
		d.SetPoint(p - 1)
		return &charDeletion{doc: d, pos: p - 1, ch: ch}
	})
}

// DeleteRight returns a command deleting the character after the point.
func DeleteRight() Action {
	return ActionFunc(func(e *Editor) history.Scrap {
		d := e.doc
		p := d.Point()
		if p == d.Len() {
			e.Beep()
			return nil
		}
		ch := d.DeleteChar(p)
		return &charDeletion{doc: d, pos: p, ch: ch}
	})
}

// KillLine returns a command deleting from the point to the end of its
// line into the kill register. At the end of a line it joins the next line
// instead. Kills in a row accumulate.
func KillLine() Action {
	return ActionFunc(func(e *Editor) history.Scrap {
		d := e.doc
		p := d.Point()
		n := d.LineEnd(d.Row(p)) - p
		if n == 0 {
			if p == d.Len() {
				e.Beep()
				return nil
			}
			n = 1
		}
		text := d.DeleteRange(p, n)
		if e.prev.kill {
			e.killRing.Append(text)
		} else {
			e.killRing.Set(text)
		}
		e.cur.kill = true
		return &rangeDeletion{doc: d, pos: p, text: text}
	})
}

// Yank returns a command inserting the kill register at the point and
// leaving the point after it.
func Yank() Action {
	return ActionFunc(func(e *Editor) history.Scrap {
		text := e.killRing.Text()
		if text == "" {
			e.Beep()
			return nil
		}
		d := e.doc
		p := d.Point()
		d.InsertString(p, text)
		d.SetPoint(p + utf8.RuneCountInString(text))
		return &insertion{doc: d, pos: p, text: text}
	})
}
