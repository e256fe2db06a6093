// internal/app/app.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/gapedit/internal/config"
	"github.com/bethropolis/gapedit/internal/core"
	"github.com/bethropolis/gapedit/internal/event"
	"github.com/bethropolis/gapedit/internal/input"
	"github.com/bethropolis/gapedit/internal/logger"
	"github.com/bethropolis/gapedit/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg            *config.Config
	tuiManager     *tui.TUI
	display        *tui.Display
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	commands       commandTable

	quit bool
}

// New wires an editor for filePath (which may be empty) onto screen, using
// the configuration and key bindings in cfg.
func New(cfg *config.Config, screen tcell.Screen, filePath string) (*App, error) {
	inputProcessor, err := input.NewInputProcessor(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	doc := core.NewDocument(cfg.Editor.InitialCapacity, cfg.Editor.StreamChunk)
	editor := core.NewEditor(doc, cfg.Editor.MaxHistory, core.NewKillRing(cfg.Editor.SystemClipboard))
	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	tuiManager, err := tui.NewWithScreen(screen)
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		display:        tui.NewDisplay(tuiManager, doc, config.AppName),
		editor:         editor,
		inputProcessor: inputProcessor,
		eventManager:   eventManager,
		commands:       newCommandTable(),
	}

	// --- Subscribe the display to editor feedback ---
	eventManager.Subscribe(event.TypeBell, a.handleBell)
	eventManager.Subscribe(event.TypeMessage, a.handleMessage)
	eventManager.Subscribe(event.TypeScroll, a.handleScroll)
	eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoaded)
	eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)

	a.resized()

	if filePath != "" {
		if err := editor.LoadFile(filePath); err != nil {
			tuiManager.Close()
			return nil, err
		}
	}
	return a, nil
}

// Editor returns the editor the app drives.
func (a *App) Editor() *core.Editor { return a.editor }

// Close releases the screen.
func (a *App) Close() {
	a.tuiManager.Close()
}

// Run reads terminal events until the user quits.
func (a *App) Run() error {
	defer a.Close()

	a.display.SetMessage("C-s save | C-q quit | C-z undo | C-r redo")
	a.display.Refresh()

	for !a.quit {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil // Screen finalized
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.Sync()
			a.resized()
		case *tcell.EventKey:
			a.HandleKey(ev)
		default:
			continue
		}
		a.display.Refresh()
	}

	if a.editor.Document().IsModified() {
		logger.Warnf("App: exited with unsaved changes")
	}
	logger.Infof("App: exiting")
	return nil
}

// HandleKey runs the command bound to a key. It reports whether the app
// keeps running.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	a.display.ClearMessage()
	actionEvent := a.inputProcessor.ProcessEvent(ev)
	cmd, ok := a.commands[actionEvent.Action]
	if !ok {
		logger.DebugTagf("input", "App: no command for key %s", input.KeyName(ev.Key()))
		a.editor.Bell()
		return !a.quit
	}
	cmd(a, actionEvent)
	return !a.quit
}

// resized adapts to a new screen size.
func (a *App) resized() {
	_, height := a.tuiManager.Size()
	a.editor.SetPageRows(a.cfg.PageRows(height))
	a.display.Invalidate()
}

// --- Event Handlers (App reacts to events) ---

func (a *App) handleBell(event.Event) bool {
	a.display.Beep()
	return false
}

func (a *App) handleMessage(e event.Event) bool {
	if data, ok := e.Data.(event.MessageData); ok {
		a.display.SetMessage("%s", data.Text)
	}
	return false
}

func (a *App) handleScroll(e event.Event) bool {
	data, ok := e.Data.(event.ScrollData)
	if !ok {
		return false
	}
	if data.Recenter {
		a.display.Recenter(a.editor.Document().PointPosition().Line)
	} else {
		a.display.Scroll(data.Lines)
	}
	return false
}

func (a *App) handleBufferLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		logger.Debugf("App: loaded '%s' (%d characters)", data.FilePath, data.Length)
	}
	a.display.Invalidate()
	return false
}

func (a *App) handleBufferSaved(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok {
		logger.Infof("App: saved '%s' (%d bytes)", data.FilePath, data.Bytes)
	}
	return false
}
