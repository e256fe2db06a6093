package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/gapedit/internal/config"
	"github.com/bethropolis/gapedit/internal/input"
	"github.com/bethropolis/gapedit/internal/logger"
	"github.com/bethropolis/gapedit/internal/tui"
)

// ParseScript reads a key script. Each line holds a tcell key name such as
// "Ctrl-K" or "Enter", or a double-quoted Go string whose characters are
// typed in turn. Blank lines and lines starting with '#' are skipped.
func ParseScript(r io.Reader) ([]*tcell.EventKey, error) {
	var keys []*tcell.EventKey
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, `"`) {
			text, err := strconv.Unquote(line)
			if err != nil {
				return nil, fmt.Errorf("script line %d: bad string %s: %w", lineNo, line, err)
			}
			for _, ch := range text {
				keys = append(keys, runeKey(ch))
			}
			continue
		}

		key, ok := input.ParseKey(line)
		if !ok {
			return nil, fmt.Errorf("script line %d: unknown key '%s'", lineNo, line)
		}
		keys = append(keys, tcell.NewEventKey(key, 0, tcell.ModNone))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}
	return keys, nil
}

// runeKey returns the event a terminal delivers when ch is typed.
func runeKey(ch rune) *tcell.EventKey {
	switch ch {
	case '\n':
		return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	case '\t':
		return tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)
	}
	return tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModNone)
}

// Playback runs a key script against filePath on a simulated screen, then
// writes the final screen to out with '#' marking the cursor.
func Playback(cfg *config.Config, script io.Reader, filePath string, out io.Writer) error {
	keys, err := ParseScript(script)
	if err != nil {
		return err
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := New(cfg, screen, filePath)
	if err != nil {
		return err
	}
	defer a.Close()
	screen.SetSize(config.PlaybackWidth, config.PlaybackHeight)
	a.resized()
	a.display.Refresh()

	for i, ev := range keys {
		running := a.HandleKey(ev)
		a.display.Refresh()
		if !running {
			logger.Debugf("Playback: quit after %d of %d keys", i+1, len(keys))
			break
		}
	}
	return tui.Dump(screen, out)
}
