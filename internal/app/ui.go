package app

import (
	"github.com/bethropolis/trailspace/internal/statusbar"
	"github.com/bethropolis/trailspace/internal/trimmer"
	"github.com/bethropolis/trailspace/internal/tui"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	a.log.DebugTagf("draw", "drawEditor: Screen Size (%d x %d)", width, height)

	a.tuiManager.Clear()
	if d := a.activeDoc(); d != nil {
		v := a.viewOf(d)
		tui.DrawDocument(a.tuiManager, v, a.activeTheme)
		tui.DrawCursor(a.tuiManager, v)
	}
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes the active document's state to the status bar.
func (a *App) updateStatusBarContent() {
	d := a.activeDoc()
	if d == nil {
		return
	}
	a.statusBar.SetFileInfo(d.Name(), d.LanguageID(), d.IsModified())
	a.statusBar.SetCursorInfo(d.caret)
	a.statusBar.SetRegionCount(len(a.highlights.Decorations(d.Key())))
}

// statusNotifier shows trimmer messages in the status bar.
type statusNotifier struct {
	sb *statusbar.StatusBar
}

var _ trimmer.Notifier = statusNotifier{}

func (n statusNotifier) Info(msg string)  { n.sb.SetTemporaryMessage("%s", msg) }
func (n statusNotifier) Error(msg string) { n.sb.SetTemporaryError("%s", msg) }
