// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/highlight"
	"github.com/bethropolis/trailspace/internal/input"
	"github.com/bethropolis/trailspace/internal/lang"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/modlines"
	"github.com/bethropolis/trailspace/internal/plugin"
	"github.com/bethropolis/trailspace/internal/statusbar"
	"github.com/bethropolis/trailspace/internal/theme"
	"github.com/bethropolis/trailspace/internal/trimmer"
	"github.com/bethropolis/trailspace/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Options configures a viewer instance.
type Options struct {
	Files     []string
	Config    *config.Config
	Flags     *config.Flags // re-applied on reload, may be nil
	Logger    *logger.Logger
	Languages *lang.Registry
	Language  string       // forces a language id when set
	Screen    tcell.Screen // nil uses the terminal
}

// App encapsulates the components and main loop of the viewer.
type App struct {
	log           *logger.Logger
	cfg           *config.Config
	flags         *config.Flags
	tuiManager    *tui.TUI
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	inputProc     *input.InputProcessor
	editorAPI     *appEditorAPI
	activeTheme   *theme.Theme
	languages     *lang.Registry
	highlights    *highlight.Manager
	snapshots     *modlines.Store
	trimmer       *trimmer.Trimmer

	docs     []*document
	active   int
	commands map[string]plugin.CommandFunc

	ctx    context.Context
	cancel context.CancelFunc

	// Channels managed by the App
	events        chan tcell.Event
	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
}

// New opens opts.Files and wires the viewer. Nothing is drawn until Run.
func New(opts Options) (*App, error) {
	if len(opts.Files) == 0 {
		return nil, errors.New("no files to view")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	languages := opts.Languages
	if languages == nil {
		languages = lang.NewRegistry(log)
	}

	settings, err := cfg.Trailing.Settings()
	if err != nil {
		return nil, err
	}
	kind, err := cfg.Trailing.SnapshotKind()
	if err != nil {
		return nil, err
	}
	activeTheme, err := loadTheme(cfg, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		log:           log,
		cfg:           cfg,
		flags:         opts.Flags,
		statusBar:     statusbar.New(statusBarConfig(activeTheme)),
		eventManager:  event.NewManager(log),
		pluginManager: plugin.NewManager(log),
		inputProc:     input.NewInputProcessor(),
		activeTheme:   activeTheme,
		languages:     languages,
		snapshots:     modlines.NewStore(modlines.SourceFor(kind)),
		commands:      make(map[string]plugin.CommandFunc),
		ctx:           ctx,
		cancel:        cancel,
		events:        make(chan tcell.Event),
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}
	a.highlights = highlight.NewManager(a.requestRedraw)
	a.trimmer = trimmer.New(settings, log, a.snapshots, statusNotifier{a.statusBar}, a.highlights)
	a.editorAPI = newEditorAPI(a)

	for _, path := range opts.Files {
		if err := a.openDocument(path, opts.Language); err != nil {
			cancel()
			return nil, err
		}
	}

	screen := opts.Screen
	if screen == nil {
		if screen, err = tcell.NewScreen(); err != nil {
			cancel()
			return nil, fmt.Errorf("TUI initialization failed: %w", err)
		}
	}
	if a.tuiManager, err = tui.NewWithScreen(screen, activeTheme); err != nil {
		cancel()
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	a.registerAppCommands()
	a.subscribeAppHandlers()
	if err := registerPlugins(a.pluginManager); err != nil {
		a.log.Warnf("App: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(a.editorAPI); err != nil {
		a.statusBar.SetTemporaryError("%v", err)
	}

	for _, d := range a.docs {
		a.eventManager.Dispatch(event.TypeDocumentOpened, event.DocumentData{Key: d.Key(), Path: d.Path()})
	}
	a.eventManager.Dispatch(event.TypeActiveDocumentChanged, a.activeData())
	return a, nil
}

// Run starts the event polling goroutine and the main loop. It returns
// once the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()
	defer a.cancel()

	go a.pollEvents()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("d Delete | m Modified only | Ctrl+S Save | Tab Next | q Quit")
	a.requestRedraw()

	// Expired status messages need a redraw to disappear.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.anyModified() {
				a.log.Warnf("App: Exited with unsaved changes.")
			}
			a.log.Infof("Exiting viewer.")
			return nil
		case ev := <-a.events:
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case <-ticker.C:
			a.requestRedraw()
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// pollEvents forwards terminal events to the main loop.
func (a *App) pollEvents() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent reports whether the screen needs a redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		if d := a.activeDoc(); d != nil {
			a.scrollToCaret(d)
		}
		return true
	case *tcell.EventKey:
		return a.handleAction(a.inputProc.ProcessEvent(ev))
	}
	return false
}

func (a *App) handleAction(action input.Action) bool {
	a.log.DebugTagf("input", "App: action %v", action)
	switch action {
	case input.ActionUnknown:
		return false
	case input.ActionQuit:
		a.requestQuit(false)
	case input.ActionForceQuit:
		a.requestQuit(true)
	case input.ActionSave:
		a.runCommand("save")
	case input.ActionReloadConfig:
		a.runCommand("reload-config")
	case input.ActionNextDocument:
		a.switchDocument(1)
	case input.ActionPrevDocument:
		a.switchDocument(-1)
	case input.ActionDeleteTrailing:
		a.runCommand("delete")
	case input.ActionDeleteModified:
		a.runCommand("delete-modified")
	case input.ActionHighlight:
		a.runCommand("highlight")
	default:
		return a.moveCaret(action)
	}
	return true
}

// requestQuit closes the quit channel unless a document has unsaved changes
// and force is false.
func (a *App) requestQuit(force bool) {
	if !force && a.anyModified() {
		a.log.Debugf("App: Quit requested, but a document is modified.")
		a.statusBar.SetTemporaryError("No write since last change (Ctrl+S to save, Ctrl+Q to force quit)")
		return
	}
	a.quitOnce.Do(func() { close(a.quit) })
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

func loadTheme(cfg *config.Config, log *logger.Logger) (*theme.Theme, error) {
	t := theme.DevComfortDark(log)
	if cfg.Viewer.Theme != "" {
		loaded, err := theme.LoadThemeFromFile(cfg.Viewer.Theme, log)
		if err != nil {
			return nil, err
		}
		t = loaded
	}
	background, border := cfg.Trailing.Colors()
	if err := t.WithTrailingColors(background, border); err != nil {
		return nil, fmt.Errorf("trailing highlight colour: %w", err)
	}
	return t, nil
}

func statusBarConfig(t *theme.Theme) statusbar.Config {
	c := statusbar.DefaultConfig()
	c.StyleDefault = t.GetStyle(theme.StyleStatusBar)
	c.StyleModified = t.GetStyle(theme.StyleStatusBarModified)
	c.StyleMessage = t.GetStyle(theme.StyleStatusBarMessage)
	c.StyleError = t.GetStyle(theme.StyleStatusBarError)
	return c
}
