// internal/app/editor_api.go
package app

import (
	"context"
	"fmt"

	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/modlines"
	"github.com/bethropolis/trailspace/internal/plugin"
	"github.com/bethropolis/trailspace/internal/trailing"
	"github.com/bethropolis/trailspace/internal/trimmer"
	"github.com/bethropolis/trailspace/internal/types"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App // Reference back to the main application
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Documents ---

func (api *appEditorAPI) ActiveDocument() trimmer.Document {
	if d := api.app.activeDoc(); d != nil {
		return d
	}
	return nil
}

func (api *appEditorAPI) Document(key string) (trimmer.Document, bool) {
	if d := api.app.findDoc(key); d != nil {
		return d, true
	}
	return nil, false
}

func (api *appEditorAPI) Documents() []trimmer.Document {
	docs := make([]trimmer.Document, len(api.app.docs))
	for i, d := range api.app.docs {
		docs[i] = d
	}
	return docs
}

func (api *appEditorAPI) Caret(key string) types.Position {
	if d := api.app.findDoc(key); d != nil {
		return d.caret
	}
	return types.Position{}
}

// --- Trailing spaces ---

func (api *appEditorAPI) Trimmer() *trimmer.Trimmer  { return api.app.trimmer }
func (api *appEditorAPI) Snapshots() *modlines.Store { return api.app.snapshots }

func (api *appEditorAPI) Settings() (trailing.Settings, error) {
	return api.app.cfg.Trailing.Settings()
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) event.SubscriptionID {
	return api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appEditorAPI) UnsubscribeEvent(id event.SubscriptionID) {
	api.app.eventManager.Unsubscribe(id)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if _, exists := api.app.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	api.app.commands[name] = cmdFunc
	api.app.log.Debugf("API: Registered command '%s'", name)
	return nil
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

func (api *appEditorAPI) Logger() *logger.Logger   { return api.app.log }
func (api *appEditorAPI) Context() context.Context { return api.app.ctx }
