package history

import "github.com/bethropolis/gapedit/internal/logger"

// Manager keeps the undo/redo stack.
//
// scraps[:pointer] have been executed and not undone; scraps[pointer:] have
// been undone and can be redone. The manager does no locking: callers issue
// one command at a time.
type Manager struct {
	scraps     []Scrap
	pointer    int
	maxHistory int // 0 means unbounded
}

// NewManager creates a history manager. A positive maxHistory bounds the
// number of entries kept, evicting the oldest first.
func NewManager(maxHistory int) *Manager {
	if maxHistory < 0 {
		maxHistory = 0
	}
	return &Manager{maxHistory: maxHistory}
}

// Perform runs an action and records the scrap it returns. It reports
// whether a scrap was produced.
func (m *Manager) Perform(run func() Scrap) bool {
	scrap := run()
	if scrap == nil {
		return false
	}
	m.Record(scrap)
	return true
}

// Record adds a scrap, discarding any redo history. If the latest entry
// amalgamates the scrap, the stack does not grow.
func (m *Manager) Record(scrap Scrap) {
	clear(m.scraps[m.pointer:]) // Let undone scraps be collected
	m.scraps = m.scraps[:m.pointer]

	if n := len(m.scraps); n > 0 && m.scraps[n-1].Amalgamate(scrap) {
		logger.DebugTagf("history", "History: merged into entry %d", n-1)
		return
	}

	m.scraps = append(m.scraps, scrap)
	if m.maxHistory > 0 && len(m.scraps) > m.maxHistory {
		drop := len(m.scraps) - m.maxHistory
		clear(m.scraps[:drop])
		m.scraps = m.scraps[drop:]
	}
	m.pointer = len(m.scraps)

	logger.DebugTagf("history", "History: recorded %T. Index: %d, Count: %d", scrap, m.pointer, len(m.scraps))
}

// Undo reverts the latest executed scrap. It returns false when there is
// nothing to undo.
func (m *Manager) Undo() bool {
	if m.pointer == 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return false
	}
	m.pointer--
	m.scraps[m.pointer].Undo()
	logger.DebugTagf("history", "History: undid entry %d", m.pointer)
	return true
}

// Redo reapplies the next undone scrap. It returns false when there is
// nothing to redo.
func (m *Manager) Redo() bool {
	if m.pointer == len(m.scraps) {
		logger.DebugTagf("history", "History: Nothing to redo. pointer=%d", m.pointer)
		return false
	}
	m.scraps[m.pointer].Redo()
	m.pointer++
	logger.DebugTagf("history", "History: redid entry %d", m.pointer-1)
	return true
}

// Reset clears the history. Call this when the document is replaced.
func (m *Manager) Reset() {
	clear(m.scraps)
	m.scraps = m.scraps[:0]
	m.pointer = 0
	logger.DebugTagf("history", "History: Cleared.")
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool { return m.pointer > 0 }

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool { return m.pointer < len(m.scraps) }

// Len returns the number of entries in the history.
func (m *Manager) Len() int { return len(m.scraps) }

// Pointer returns the number of entries that are executed and not undone.
func (m *Manager) Pointer() int { return m.pointer }
