package types

// EditInfo describes one change to a document's text, in characters.
type EditInfo struct {
	Offset   int // Where the change happened
	Inserted int // Characters inserted at Offset
	Deleted  int // Characters removed from Offset
}
