package tui

import (
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Dump writes the contents of a simulation screen to w, one line per row
// with trailing blanks removed and '#' in the cell holding the cursor.
func Dump(s tcell.SimulationScreen, w io.Writer) error {
	cells, width, height := s.GetContents()
	cx, cy, visible := s.GetCursor()

	var sb strings.Builder
	row := make([]rune, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := ' '
			if c := cells[y*width+x]; len(c.Runes) > 0 {
				r = c.Runes[0]
			}
			if visible && x == cx && y == cy {
				r = '#'
			}
			row[x] = r
		}
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
