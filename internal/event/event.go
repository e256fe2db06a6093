// internal/event/event.go
package event

import "github.com/bethropolis/gapedit/internal/types"

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Document events
	TypeBufferModified // Fired after every change to the text, including undo/redo
	TypeBufferLoaded   // Fired after a file has been read into the document
	TypeBufferSaved    // Fired after the document has been written to a file

	// Feedback for the display
	TypeBell    // An operation could not be carried out
	TypeScroll  // The view should move independently of the point
	TypeMessage // A line of text for the status line
)

var typeNames = map[Type]string{
	TypeUnknown:        "unknown",
	TypeBufferModified: "buffer-modified",
	TypeBufferLoaded:   "buffer-loaded",
	TypeBufferSaved:    "buffer-saved",
	TypeBell:           "bell",
	TypeScroll:         "scroll",
	TypeMessage:        "message",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// BufferModifiedData describes one change to the text.
type BufferModifiedData struct {
	Edit types.EditInfo
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
	Length   int // Characters read
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
	Bytes    int64
}

// ScrollData asks the display to move its origin. Recenter puts the point
// in the middle of the screen; otherwise the origin moves by Lines.
type ScrollData struct {
	Lines    int
	Recenter bool
}

// MessageData is text to show on the status line.
type MessageData struct {
	Text string
}
