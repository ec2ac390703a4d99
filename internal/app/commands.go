package app

import (
	"fmt"

	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/plugin"
)

// registerAppCommands registers the viewer's built-in commands.
func (a *App) registerAppCommands() {
	builtins := []struct {
		name string
		fn   plugin.CommandFunc
	}{
		{"save", func([]string) error { return a.saveActive() }},
		{"reload-config", func([]string) error { return a.reloadConfig() }},
	}
	for _, c := range builtins {
		if err := a.editorAPI.RegisterCommand(c.name, c.fn); err != nil {
			a.log.Warnf("Failed to register '%s' command: %v", c.name, err)
		}
	}
}

// runCommand executes a registered command and shows its error, if any.
func (a *App) runCommand(name string, args ...string) {
	cmd, ok := a.commands[name]
	if !ok {
		a.statusBar.SetTemporaryError("Unknown command: %s", name)
		return
	}
	if err := cmd(args); err != nil {
		a.log.Warnf("App: command '%s' failed: %v", name, err)
		a.statusBar.SetTemporaryError("%s: %v", name, err)
	}
}

// saveActive writes the active document. DocumentWillSave runs first so
// that trim on save lands in the written file.
func (a *App) saveActive() error {
	d := a.activeDoc()
	if d == nil {
		return fmt.Errorf("no active document")
	}
	a.eventManager.Dispatch(event.TypeDocumentWillSave, event.DocumentData{Key: d.Key(), Path: d.Path()})
	if err := d.Save(""); err != nil {
		return err
	}
	a.log.Infof("App: saved %s", d.Path())
	a.eventManager.Dispatch(event.TypeDocumentSaved, event.DocumentData{Key: d.Key(), Path: d.Path()})
	return nil
}

// reloadConfig re-reads the configuration file and announces the change.
// The snapshot source stays the one chosen at startup.
func (a *App) reloadConfig() error {
	next, err := a.cfg.Reload(a.flags)
	if err != nil {
		return err
	}
	if _, err := next.Trailing.Settings(); err != nil {
		return err
	}
	if _, err := next.Trailing.SnapshotKind(); err != nil {
		return err
	}
	activeTheme, err := loadTheme(next, a.log)
	if err != nil {
		return err
	}
	for _, key := range next.Unknown {
		a.log.Warnf("Config: unknown key '%s' in %s", key, next.Source)
	}

	a.cfg = next
	a.activeTheme = activeTheme
	a.statusBar.SetConfig(statusBarConfig(activeTheme))
	a.statusBar.SetTemporaryMessage("Configuration reloaded")
	a.eventManager.Dispatch(event.TypeConfigChanged, event.ConfigChangedData{Source: next.Source})
	return nil
}
