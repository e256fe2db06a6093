// internal/input/keymap.go
package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/gapedit/internal/logger"
)

// Keymap maps special keys (everything but plain runes) to editor actions.
type Keymap map[tcell.Key]Action

// DefaultKeymap returns the built-in bindings: the usual cursor keys plus
// emacs-style control keys.
func DefaultKeymap() Keymap {
	return Keymap{
		tcell.KeyUp:         ActionMoveUp,
		tcell.KeyDown:       ActionMoveDown,
		tcell.KeyLeft:       ActionMoveLeft,
		tcell.KeyRight:      ActionMoveRight,
		tcell.KeyPgUp:       ActionMovePageUp,
		tcell.KeyPgDn:       ActionMovePageDown,
		tcell.KeyHome:       ActionMoveHome,
		tcell.KeyEnd:        ActionMoveEnd,
		tcell.KeyEnter:      ActionInsertNewLine,
		tcell.KeyTab:        ActionInsertTab,
		tcell.KeyBackspace:  ActionDeleteCharBackward,
		tcell.KeyBackspace2: ActionDeleteCharBackward, // Often used for Backspace
		tcell.KeyDelete:     ActionDeleteCharForward,

		tcell.KeyCtrlP: ActionMoveUp,
		tcell.KeyCtrlN: ActionMoveDown,
		tcell.KeyCtrlB: ActionMoveLeft,
		tcell.KeyCtrlF: ActionMoveRight,
		tcell.KeyCtrlA: ActionMoveHome,
		tcell.KeyCtrlE: ActionMoveEnd,
		tcell.KeyCtrlV: ActionMovePageDown,
		tcell.KeyCtrlD: ActionDeleteCharForward,
		tcell.KeyCtrlK: ActionKillLine,
		tcell.KeyCtrlY: ActionYank,
		tcell.KeyCtrlZ: ActionUndo,
		tcell.KeyCtrlR: ActionRedo,
		tcell.KeyCtrlL: ActionRecenter,
		tcell.KeyCtrlS: ActionSave,
		tcell.KeyCtrlQ: ActionQuit,
		tcell.KeyCtrlC: ActionQuit,
	}
}

// keysByName indexes tcell's key names case-insensitively.
var keysByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// ParseKey looks up a key by its tcell name, such as "Ctrl-Z" or "PgUp".
func ParseKey(name string) (tcell.Key, bool) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// KeyName returns the tcell name of a key.
func KeyName(k tcell.Key) string {
	if name, ok := tcell.KeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key[%d]", int(k))
}

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap Keymap
}

// NewInputProcessor creates a processor with the default bindings changed
// by overrides, a table of key name to action name. Binding a key to
// "none" removes it.
func NewInputProcessor(overrides map[string]string) (*InputProcessor, error) {
	p := &InputProcessor{keymap: DefaultKeymap()}

	// Apply in a fixed order so errors are reported deterministically
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, keyName := range names {
		actionName := overrides[keyName]
		key, ok := ParseKey(keyName)
		if !ok {
			return nil, fmt.Errorf("invalid key binding '%s': unknown key", keyName)
		}
		action, ok := ParseAction(actionName)
		if !ok || action == ActionInsertRune {
			return nil, fmt.Errorf("invalid key binding '%s': unknown action '%s'", keyName, actionName)
		}
		if action == ActionUnknown {
			delete(p.keymap, key)
		} else {
			p.keymap[key] = action
		}
		logger.DebugTagf("input", "Keymap: %s bound to %v", KeyName(key), action)
	}
	return p, nil
}

// Binding returns the action bound to key.
func (p *InputProcessor) Binding(key tcell.Key) (Action, bool) {
	a, ok := p.keymap[key]
	return a, ok
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()

	if key == tcell.KeyRune {
		// Alt+rune and the like are not bound to anything
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl|tcell.ModMeta) != 0 {
			return ActionEvent{Action: ActionUnknown}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	// Modifiers are ignored for special keys: control keys carry ModCtrl
	// already, and Shift+arrow moves like a plain arrow.
	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}
	return ActionEvent{Action: ActionUnknown}
}
