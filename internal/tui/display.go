// internal/tui/display.go
package tui

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/gapedit/internal/core"
	"github.com/bethropolis/gapedit/internal/logger"
	"github.com/bethropolis/gapedit/internal/types"
)

const (
	statusBarHeight = 1
	tabWidth        = 8
)

var statusStyle = tcell.StyleDefault.Reverse(true)

// Document is what the display shows.
type Document interface {
	LineCount() int
	FetchLine(n int, dst []rune) []rune
	QueryDamageAndClear() (core.Damage, types.Position)
	FilePath() string
	IsModified() bool
}

// Display paints a document on the screen. Text rows show lines from
// origin onwards, one character per cell; the bottom row is the status line.
//
// Repainting follows the damage the document reports: everything, the line
// holding the point, or nothing but the cursor.
type Display struct {
	tui     *TUI
	doc     Document
	appName string

	origin    int  // First line shown
	fullPaint bool // Repaint everything at the next refresh
	message   string
	line      []rune // Scratch for FetchLine
}

// NewDisplay creates a display of doc on t.
func NewDisplay(t *TUI, doc Document, appName string) *Display {
	return &Display{tui: t, doc: doc, appName: appName, fullPaint: true}
}

// TextRows returns the number of rows available for text.
func (d *Display) TextRows() int {
	_, height := d.tui.Size()
	return max(height-statusBarHeight, 1)
}

// Origin returns the first line shown.
func (d *Display) Origin() int { return d.origin }

// SetMessage sets the text shown after the file name on the status line.
func (d *Display) SetMessage(format string, args ...interface{}) {
	d.message = fmt.Sprintf(format, args...)
}

// ClearMessage removes any status message.
func (d *Display) ClearMessage() { d.message = "" }

// Invalidate forces a full repaint, as after a resize or loading a file.
func (d *Display) Invalidate() { d.fullPaint = true }

// Beep rings the bell.
func (d *Display) Beep() { d.tui.Beep() }

// Recenter puts the line holding the point in the middle of the screen.
func (d *Display) Recenter(row int) {
	d.chooseOrigin(row)
	d.fullPaint = true
}

// Scroll moves the origin by n lines, keeping at least half a screen of
// text in view at the end of the document.
func (d *Display) Scroll(n int) {
	d.setOrigin(d.origin + n)
}

func (d *Display) setOrigin(origin int) {
	limit := max(d.doc.LineCount()-d.TextRows()/2, 0)
	origin = min(max(origin, 0), limit)
	if origin != d.origin {
		d.origin = origin
		d.fullPaint = true
	}
}

// chooseOrigin places row in the middle of the screen.
func (d *Display) chooseOrigin(row int) {
	d.setOrigin(row - d.TextRows()/2)
}

// checkScroll recentres if row is off screen.
func (d *Display) checkScroll(row int) {
	if row < d.origin || row >= d.origin+d.TextRows() {
		d.chooseOrigin(row)
	}
}

// Refresh brings the screen up to date with the document and shows it.
func (d *Display) Refresh() {
	damage, pos := d.doc.QueryDamageAndClear()
	d.checkScroll(pos.Line)
	if d.fullPaint {
		damage = core.DamageFull
	}

	switch damage {
	case core.DamageFull:
		for y := 0; y < d.TextRows(); y++ {
			d.drawLine(y)
		}
	case core.DamageLine:
		d.drawLine(pos.Line - d.origin)
	}
	if damage != core.DamageNone {
		logger.DebugTagf("display", "Display: %v repaint, origin %d", damage, d.origin)
	}
	d.fullPaint = false

	d.drawStatus()
	d.drawCursor(pos)
	d.tui.Show()
}

// drawLine paints screen row y.
func (d *Display) drawLine(y int) {
	s := d.tui.screen
	width, _ := d.tui.Size()
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}

	row := d.origin + y
	if row >= d.doc.LineCount() {
		return
	}
	d.line = d.doc.FetchLine(row, d.line[:0])
	x := 0
	for _, ch := range d.line {
		if x >= width {
			break
		}
		if ch == '\t' {
			x += tabWidth - x%tabWidth
			continue
		}
		if ch < ' ' {
			ch = '?'
		}
		s.SetContent(x, y, ch, nil, tcell.StyleDefault)
		x++
	}
}

// screenColumn returns the cell a column of the current line lands in.
func screenColumn(line []rune, col int) int {
	x := 0
	for _, ch := range line[:min(col, len(line))] {
		if ch == '\t' {
			x += tabWidth - x%tabWidth
		} else {
			x++
		}
	}
	return x
}

func (d *Display) drawCursor(pos types.Position) {
	y := pos.Line - d.origin
	d.line = d.doc.FetchLine(pos.Line, d.line[:0])
	x := screenColumn(d.line, pos.Col)
	width, _ := d.tui.Size()
	if y < 0 || y >= d.TextRows() || x >= width {
		d.tui.screen.HideCursor()
		return
	}
	d.tui.screen.ShowCursor(x, y)
}

// statusText builds the status line: the file name with a modified marker,
// then the message, cut to fit width cells.
func (d *Display) statusText(width int) string {
	name := "[No Name]"
	if path := d.doc.FilePath(); path != "" {
		name = filepath.Base(path)
	}
	if d.doc.IsModified() {
		name += "*"
	}
	text := fmt.Sprintf("--- %s: %s ---", d.appName, name)
	if d.message != "" {
		text += " " + d.message
	}
	if uniseg.StringWidth(text) <= width {
		return text
	}

	// Keep whole grapheme clusters that fit
	fitted := make([]byte, 0, len(text))
	used := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width {
			break
		}
		fitted = append(fitted, cluster...)
		used += w
	}
	return string(fitted)
}

func (d *Display) drawStatus() {
	s := d.tui.screen
	width, height := d.tui.Size()
	y := height - statusBarHeight
	if y < 0 {
		return
	}
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, statusStyle)
	}

	gr := uniseg.NewGraphemes(d.statusText(width))
	x := 0
	for gr.Next() {
		runes := gr.Runes()
		s.SetContent(x, y, runes[0], runes[1:], statusStyle)
		x += gr.Width()
	}
}
