// Package history provides undo/redo functionality via a stack of scraps.
package history

// Scrap is one reversible change recorded in the history.
type Scrap interface {
	// Undo puts the target back into the state before the change.
	Undo()
	// Redo puts the target into the state after the change.
	Redo()
	// Amalgamate tries to absorb next, the change recorded right after this
	// one. It reports whether next was absorbed.
	Amalgamate(next Scrap) bool
}

// Action is a command executed against a target of type T. Execute returns
// the scrap that reverses it, or nil when there is nothing to undo.
type Action[T any] interface {
	Execute(target T) Scrap
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc[T any] func(target T) Scrap

// Execute calls f(target).
func (f ActionFunc[T]) Execute(target T) Scrap { return f(target) }

// Snapshot is auxiliary state (such as a cursor) captured around a change.
type Snapshot interface {
	Restore()
}

// Composite pairs a change with the auxiliary state captured immediately
// before and after it.
type Composite struct {
	Before Snapshot
	Change Scrap
	After  Snapshot
}

// Wrap pairs change with before and after. It returns nil when change is
// nil so that non-undoable commands stay out of the history.
func Wrap(before Snapshot, change Scrap, after Snapshot) Scrap {
	if change == nil {
		return nil
	}
	return &Composite{Before: before, Change: change, After: after}
}

// Undo reverses the change, then restores the state from before it.
func (c *Composite) Undo() {
	c.Change.Undo()
	c.Before.Restore()
}

// Redo reapplies the change, then restores the state from after it.
func (c *Composite) Redo() {
	c.Change.Redo()
	c.After.Restore()
}

// Amalgamate merges another composite whose inner change can be absorbed,
// taking over its after-state.
func (c *Composite) Amalgamate(next Scrap) bool {
	other, ok := next.(*Composite)
	if !ok || !c.Change.Amalgamate(other.Change) {
		return false
	}
	c.After = other.After
	return true
}
