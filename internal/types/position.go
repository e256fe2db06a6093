// internal/types/position.go
package types

// Position is a row/column coordinate in a document.
// Line is the 0-based line index.
// Col is the 0-based offset of a character within its line.
type Position struct {
	Line int
	Col  int
}
