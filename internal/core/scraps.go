package core

import (
	"unicode/utf8"

	"github.com/bethropolis/gapedit/internal/core/history"
)

// Scraps keep copies of the text they touch, never offsets into the gap
// buffer, so they stay valid however the storage moves.

// charInsertion records typed characters. Consecutive insertions merge
// while they are contiguous and the run has not yet taken a newline.
type charInsertion struct {
	doc  *Document
	pos  int
	text []rune
}

func (s *charInsertion) Undo() { s.doc.DeleteRange(s.pos, len(s.text)) }

func (s *charInsertion) Redo() {
	if len(s.text) == 1 {
		s.doc.InsertChar(s.pos, s.text[0])
		return
	}
	s.doc.InsertRunes(s.pos, s.text)
}

func (s *charInsertion) Amalgamate(next history.Scrap) bool {
	other, ok := next.(*charInsertion)
	if !ok || other.doc != s.doc {
		return false
	}
	if s.text[len(s.text)-1] == '\n' || other.pos != s.pos+len(s.text) {
		return false
	}
	s.text = append(s.text, other.text...)
	return true
}

// insertion records a block inserted in one go, such as a yank.
type insertion struct {
	doc  *Document
	pos  int
	text string
}

func (s *insertion) Undo() { s.doc.DeleteRange(s.pos, utf8.RuneCountInString(s.text)) }
func (s *insertion) Redo() { s.doc.InsertString(s.pos, s.text) }

func (s *insertion) Amalgamate(history.Scrap) bool { return false }

// charDeletion records one deleted character.
type charDeletion struct {
	doc *Document
	pos int
	ch  rune
}

func (s *charDeletion) Undo() { s.doc.InsertChar(s.pos, s.ch) }
func (s *charDeletion) Redo() { s.doc.DeleteChar(s.pos) }

func (s *charDeletion) Amalgamate(history.Scrap) bool { return false }

// rangeDeletion records a deleted block of text.
type rangeDeletion struct {
	doc  *Document
	pos  int
	text string
}

func (s *rangeDeletion) Undo() { s.doc.InsertString(s.pos, s.text) }
func (s *rangeDeletion) Redo() { s.doc.DeleteRange(s.pos, utf8.RuneCountInString(s.text)) }

func (s *rangeDeletion) Amalgamate(history.Scrap) bool { return false }
