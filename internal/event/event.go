// internal/event/event.go
package event

import (
	"fmt"

	"github.com/bethropolis/trailspace/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document lifecycle
	TypeDocumentOpened        // A document was loaded into the host
	TypeDocumentChanged       // Document text changed
	TypeSelectionChanged      // The caret moved
	TypeActiveDocumentChanged // Another document became active
	TypeDocumentWillSave      // Fired before writing; handlers may still edit
	TypeDocumentSaved         // Fired after a successful write

	TypeConfigChanged // Configuration was reloaded

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:               "Unknown",
	TypeDocumentOpened:        "DocumentOpened",
	TypeDocumentChanged:       "DocumentChanged",
	TypeSelectionChanged:      "SelectionChanged",
	TypeActiveDocumentChanged: "ActiveDocumentChanged",
	TypeDocumentWillSave:      "DocumentWillSave",
	TypeDocumentSaved:         "DocumentSaved",
	TypeConfigChanged:         "ConfigChanged",
	TypeAppReady:              "AppReady",
	TypeAppQuit:               "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// DocumentData identifies the document an event is about. Used by
// DocumentOpened, ActiveDocumentChanged, DocumentWillSave and DocumentSaved.
type DocumentData struct {
	Key  string
	Path string
}

// DocumentChangedData describes an edit.
type DocumentChangedData struct {
	Key  string
	Edit types.EditInfo
}

// SelectionChangedData carries the new caret position.
type SelectionChangedData struct {
	Key   string
	Caret types.Position
}

// ConfigChangedData is sent after a configuration reload.
type ConfigChangedData struct {
	Source string // file the configuration came from, if any
}

type AppReadyData struct{}

type AppQuitData struct{}
