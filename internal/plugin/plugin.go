// internal/plugin/plugin.go
package plugin

import (
	"context"

	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/modlines"
	"github.com/bethropolis/trailspace/internal/trailing"
	"github.com/bethropolis/trailspace/internal/trimmer"
	"github.com/bethropolis/trailspace/internal/types"
)

// CommandFunc defines the signature for commands registered by plugins.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the host.
type EditorAPI interface {
	// --- Documents ---
	ActiveDocument() trimmer.Document // nil when nothing is open
	Document(key string) (trimmer.Document, bool)
	Documents() []trimmer.Document
	Caret(key string) types.Position

	// --- Trailing spaces ---
	Trimmer() *trimmer.Trimmer
	Snapshots() *modlines.Store
	// Settings reads the current configuration. It fails when a required
	// value is missing.
	Settings() (trailing.Settings, error)

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler) event.SubscriptionID
	UnsubscribeEvent(id event.SubscriptionID)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	Logger() *logger.Logger
	// Context is cancelled when the host shuts down.
	Context() context.Context
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Used for
	// subscribing to events and registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the host is closing.
	Shutdown() error
}
