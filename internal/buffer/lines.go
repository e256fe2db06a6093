// internal/buffer/lines.go
package buffer

import "fmt"

// LineIndex keeps the division of a Text into lines.
//
// A newline counts as part of the line it ends, and the text is treated as
// if a terminator followed its last rune, so every line has length >= 1 and
// the lengths add up to Len()+1. A text ending in a newline therefore has a
// final empty line of length 1.
//
// Queries walk a cached line pointer one line at a time from wherever the
// previous query left it, which is cheap when accesses cluster.
type LineIndex struct {
	text    Text
	lengths []int
	cur     int // Line the cache points at
	start   int // Offset of the first rune of line cur: sum(lengths[:cur])
}

// NewLineIndex builds the line map of t.
func NewLineIndex(t Text) *LineIndex {
	li := &LineIndex{text: t, lengths: make([]int, 0, 64)}
	li.Remap()
	return li
}

// LineCount returns the number of lines, including the final line.
func (li *LineIndex) LineCount() int { return len(li.lengths) }

// LineLength returns the length of line n, counting its newline (or the
// imaginary terminator for the last line).
func (li *LineIndex) LineLength(n int) int {
	li.checkLine(n)
	return li.lengths[n]
}

// LineStart returns the offset of the first rune of line n.
func (li *LineIndex) LineStart(n int) int {
	li.findLine(n)
	return li.start
}

// Row returns the line containing offset pos, 0 <= pos <= Len().
func (li *LineIndex) Row(pos int) int {
	li.findPos(pos)
	return li.cur
}

// Column returns the offset of pos within its line.
func (li *LineIndex) Column(pos int) int {
	li.findPos(pos)
	return pos - li.start
}

// Pos returns the offset closest to (row, col). Both coordinates are clamped
// to the text, so out of range requests never fail.
func (li *LineIndex) Pos(row, col int) int {
	r := min(max(row, 0), len(li.lengths)-1)
	li.findLine(r)
	c := min(max(col, 0), li.lengths[r]-1)
	return li.start + c
}

// Reset sets the map for an empty text: one line of length 1.
func (li *LineIndex) Reset() {
	li.lengths = append(li.lengths[:0], 1)
	li.cur = 0
	li.start = 0
}

// Remap rebuilds the whole map by scanning the text.
func (li *LineIndex) Remap() {
	li.lengths = li.lengths[:0]
	c := 0
	n := li.text.Len()
	for i := 0; i < n; i++ {
		c++
		if li.text.CharAt(i) == '\n' {
			li.lengths = append(li.lengths, c)
			c = 0
		}
	}
	li.lengths = append(li.lengths, c+1)
	li.cur = 0
	li.start = 0
}

// CharInserted updates the map after ch was inserted at pos.
func (li *LineIndex) CharInserted(pos int, ch rune) {
	if ch == '\n' {
		li.Remap()
		return
	}
	li.findPos(pos)
	li.lengths[li.cur]++
}

// CharDeleted updates the map after ch was deleted from pos.
func (li *LineIndex) CharDeleted(pos int, ch rune) {
	if ch == '\n' {
		li.Remap()
		return
	}
	li.findPos(pos)
	li.lengths[li.cur]--
}

// RangeDeleted updates the map after n runes were deleted from start. The
// map is only patched when the deleted range ended strictly before the last
// rune of its line, so it cannot have contained that line's newline.
func (li *LineIndex) RangeDeleted(start, n int) {
	li.findPos(start)
	if start+n < li.start+li.lengths[li.cur] {
		li.lengths[li.cur] -= n
		return
	}
	li.Remap()
}

// findLine moves the cache to line n.
func (li *LineIndex) findLine(n int) {
	li.checkLine(n)
	for n > li.cur {
		li.start += li.lengths[li.cur]
		li.cur++
	}
	for n < li.cur {
		li.cur--
		li.start -= li.lengths[li.cur]
	}
}

// findPos moves the cache to the line containing offset pos.
func (li *LineIndex) findPos(pos int) {
	if pos < 0 {
		panic(fmt.Sprintf("buffer: line lookup of negative offset %d", pos))
	}
	for pos < li.start {
		li.cur--
		li.start -= li.lengths[li.cur]
	}
	for pos >= li.start+li.lengths[li.cur] {
		li.start += li.lengths[li.cur]
		li.cur++
		if li.cur == len(li.lengths) {
			panic(fmt.Sprintf("buffer: offset %d beyond end of line map", pos))
		}
	}
}

func (li *LineIndex) checkLine(n int) {
	if n < 0 || n >= len(li.lengths) {
		panic(fmt.Sprintf("buffer: line %d out of range [0,%d)", n, len(li.lengths)))
	}
}
