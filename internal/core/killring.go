package core

import (
	"github.com/atotto/clipboard"

	"github.com/bethropolis/gapedit/internal/logger"
)

// KillRing holds the most recently killed text for yanking. When system is
// set the text is mirrored to the OS clipboard, and a yank prefers whatever
// the clipboard holds.
type KillRing struct {
	text   string
	system bool
}

// NewKillRing creates an empty kill register.
func NewKillRing(system bool) *KillRing {
	if system && clipboard.Unsupported {
		logger.Warnf("KillRing: system clipboard unsupported, using internal register")
		system = false
	}
	return &KillRing{system: system}
}

// Set replaces the killed text.
func (k *KillRing) Set(s string) {
	k.text = s
	k.mirror()
}

// Append adds s to the end of the killed text, for consecutive kills.
func (k *KillRing) Append(s string) {
	k.text += s
	k.mirror()
}

// Text returns the text a yank should insert.
func (k *KillRing) Text() string {
	if k.system {
		s, err := clipboard.ReadAll()
		if err != nil {
			logger.Warnf("KillRing: failed to read system clipboard: %v", err)
		} else if s != "" {
			k.text = s
		}
	}
	return k.text
}

func (k *KillRing) mirror() {
	if !k.system {
		return
	}
	if err := clipboard.WriteAll(k.text); err != nil {
		logger.Warnf("KillRing: failed to write system clipboard: %v", err)
	}
	logger.DebugTagf("clipboard", "KillRing: mirrored %d bytes to system clipboard", len(k.text))
}
