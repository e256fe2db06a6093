// internal/buffer/gap.go
package buffer

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/bethropolis/gapedit/internal/logger"
)

const (
	DefaultCapacity = 1024 // Initial storage for a new buffer, in runes
	DefaultChunk    = 4096 // Growth increment used while reading a stream
)

// GapBuffer is a sequence of runes that allows cheap insertion and deletion
// near the most recent edit point.
//
// The logical contents are buf[0:gap] followed by buf[cap-length+gap:cap].
// The free region buf[gap:cap-length+gap] holds nothing of interest and is
// moved to the edit point before every mutation.
type GapBuffer struct {
	buf    []rune
	length int // Number of runes stored
	gap    int // Offset where the free region starts
}

// NewGapBuffer creates an empty buffer with room for capacity runes.
func NewGapBuffer(capacity int) *GapBuffer {
	if capacity < 0 {
		panic(fmt.Sprintf("buffer: negative capacity %d", capacity))
	}
	return &GapBuffer{buf: make([]rune, capacity)}
}

// NewGapBufferString creates a buffer holding exactly s.
func NewGapBufferString(s string) *GapBuffer {
	g := NewGapBuffer(utf8.RuneCountInString(s))
	g.InsertString(0, s)
	return g
}

// Len returns the number of runes in the buffer.
func (g *GapBuffer) Len() int { return g.length }

// Cap returns the size of the backing storage.
func (g *GapBuffer) Cap() int { return len(g.buf) }

// CharAt returns the rune at pos, which must satisfy 0 <= pos < Len().
func (g *GapBuffer) CharAt(pos int) rune {
	if pos < 0 || pos >= g.length {
		panic(fmt.Sprintf("buffer: CharAt(%d) out of range [0,%d)", pos, g.length))
	}
	if pos < g.gap {
		return g.buf[pos]
	}
	return g.buf[len(g.buf)-g.length+pos]
}

// Clear empties the buffer without releasing its storage.
func (g *GapBuffer) Clear() {
	g.gap = 0
	g.length = 0
}

// Insert inserts a single rune at pos.
func (g *GapBuffer) Insert(pos int, ch rune) {
	g.checkPos(pos)
	g.makeRoom(1)
	g.moveGap(pos)
	g.buf[g.gap] = ch
	g.gap++
	g.length++
}

// InsertString inserts the runes of s at pos.
func (g *GapBuffer) InsertString(pos int, s string) {
	g.checkPos(pos)
	g.makeRoom(utf8.RuneCountInString(s))
	g.moveGap(pos)
	for _, r := range s {
		g.buf[g.gap] = r
		g.gap++
		g.length++
	}
}

// InsertRunes inserts a copy of rs at pos.
func (g *GapBuffer) InsertRunes(pos int, rs []rune) {
	g.checkPos(pos)
	g.makeRoom(len(rs))
	g.moveGap(pos)
	n := copy(g.buf[g.gap:], rs)
	g.gap += n
	g.length += n
}

// InsertRange inserts the range [start, start+n) of src at pos.
// A buffer cannot be inserted into itself.
func (g *GapBuffer) InsertRange(pos int, src *GapBuffer, start, n int) {
	if src == g {
		panic("buffer: InsertRange from a buffer into itself")
	}
	g.checkPos(pos)
	src.checkRange(start, n)
	g.makeRoom(n)
	g.moveGap(pos)
	src.copyOut(start, n, g.buf[g.gap:g.gap+n])
	g.gap += n
	g.length += n
}

// InsertFrom reads r until EOF and inserts the decoded runes at pos.
// Storage grows by chunk runes per read. Invalid UTF-8 bytes become U+FFFD
// and are reported with a warning. Whatever was read before an error
// stays in the buffer; the count of runes inserted is returned either way.
func (g *GapBuffer) InsertFrom(pos int, r io.Reader, chunk int) (int, error) {
	g.checkPos(pos)
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	g.moveGap(pos)

	scratch := make([]byte, chunk+utf8.UTFMax)
	carry := 0 // Bytes of an incomplete sequence held over from the last read
	total := 0
	invalid := 0
	for {
		// A chunk of bytes never decodes to more runes than it has bytes
		g.makeRoom(chunk + utf8.UTFMax)
		nread, err := r.Read(scratch[carry : carry+chunk])
		avail := carry + nread
		end := avail
		if err == nil {
			end = completePrefix(scratch[:avail])
		}
		n, bad := g.decodeIntoGap(scratch[:end])
		total += n
		invalid += bad
		carry = copy(scratch, scratch[end:avail])

		if err != nil {
			if invalid > 0 {
				logger.Warnf("GapBuffer: replaced %d invalid UTF-8 bytes with U+FFFD", invalid)
			}
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
	}
}

// DeleteChar removes the rune at pos.
func (g *GapBuffer) DeleteChar(pos int) {
	if pos < 0 || pos >= g.length {
		panic(fmt.Sprintf("buffer: DeleteChar(%d) out of range [0,%d)", pos, g.length))
	}
	g.moveGap(pos)
	g.length--
}

// DeleteRange removes the n runes starting at start.
func (g *GapBuffer) DeleteRange(start, n int) {
	g.checkRange(start, n)
	g.moveGap(start)
	g.length -= n // The deleted runes become part of the gap
}

// GetRange returns an independent copy of the range [start, start+n).
func (g *GapBuffer) GetRange(start, n int) string {
	return string(g.CopyRange(start, n, make([]rune, 0, n)))
}

// CopyRange appends the range [start, start+n) to dst and returns the
// extended slice. The gap is not moved.
func (g *GapBuffer) CopyRange(start, n int, dst []rune) []rune {
	g.checkRange(start, n)
	off := len(dst)
	if cap(dst)-off < n {
		grown := make([]rune, off, off+n)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:off+n]
	g.copyOut(start, n, dst[off:])
	return dst
}

// WriteTo writes the contents to w as UTF-8 in at most two writes.
func (g *GapBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	if g.gap > 0 {
		n, err := io.WriteString(w, string(g.buf[:g.gap]))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	if g.length > g.gap {
		n, err := io.WriteString(w, string(g.buf[len(g.buf)-g.length+g.gap:]))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the contents without disturbing the gap.
func (g *GapBuffer) String() string {
	return string(g.CopyRange(0, g.length, make([]rune, 0, g.length)))
}

// copyOut copies [start, start+n) into dst, reading around the gap.
func (g *GapBuffer) copyOut(start, n int, dst []rune) {
	high := len(g.buf) - g.length // Offset of the text after the gap, minus gap
	switch {
	case start+n <= g.gap:
		// Entirely before the gap
		copy(dst, g.buf[start:start+n])
	case start >= g.gap:
		// Entirely after the gap
		copy(dst, g.buf[high+start:high+start+n])
	default:
		k := copy(dst, g.buf[start:g.gap])
		copy(dst[k:], g.buf[high+g.gap:high+start+n])
	}
}

// decodeIntoGap decodes UTF-8 from b into the gap, which must be large
// enough. It returns the runes decoded and how many of them stand in for
// invalid bytes.
func (g *GapBuffer) decodeIntoGap(b []byte) (n, invalid int) {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			invalid++
		}
		g.buf[g.gap] = r
		g.gap++
		g.length++
		n++
		b = b[size:]
	}
	return n, invalid
}

// completePrefix returns the length of the longest prefix of b that does
// not end in a truncated UTF-8 sequence.
func completePrefix(b []byte) int {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return i
			}
			break
		}
	}
	return len(b)
}

// moveGap shifts runes so that the gap starts at pos.
func (g *GapBuffer) moveGap(pos int) {
	high := len(g.buf) - g.length
	if g.gap < pos {
		// buf[gap:pos] = buf[high+gap:high+pos]
		copy(g.buf[g.gap:pos], g.buf[high+g.gap:high+pos])
	} else if g.gap > pos {
		// buf[high+pos:high+gap] = buf[pos:gap]
		copy(g.buf[high+pos:high+g.gap], g.buf[pos:g.gap])
	}
	g.gap = pos
}

// makeRoom ensures the gap can hold n more runes, growing the storage to
// the larger of double its size and an exact fit.
func (g *GapBuffer) makeRoom(n int) {
	if n < 0 {
		panic(fmt.Sprintf("buffer: negative room request %d", n))
	}
	if len(g.buf)-g.length >= n {
		return
	}

	newCap := max(2*len(g.buf), g.length+n)
	newBuf := make([]rune, newCap)
	copy(newBuf, g.buf[:g.gap])
	tail := g.length - g.gap
	copy(newBuf[newCap-tail:], g.buf[len(g.buf)-tail:])
	logger.DebugTagf("buffer", "GapBuffer: grew storage %d -> %d (len %d)", len(g.buf), newCap, g.length)
	g.buf = newBuf
}

func (g *GapBuffer) checkPos(pos int) {
	if pos < 0 || pos > g.length {
		panic(fmt.Sprintf("buffer: position %d out of range [0,%d]", pos, g.length))
	}
}

func (g *GapBuffer) checkRange(start, n int) {
	if start < 0 || n < 0 || start+n > g.length {
		panic(fmt.Sprintf("buffer: range [%d,+%d) out of range [0,%d)", start, n, g.length))
	}
}
