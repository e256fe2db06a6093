// internal/buffer/buffer.go
package buffer

// Text is the read-only view of a character sequence that a LineIndex
// overlays. Positions and lengths are counted in runes.
type Text interface {
	Len() int
	CharAt(pos int) rune
}

// Ensure GapBuffer satisfies the Text interface
var _ Text = (*GapBuffer)(nil)
