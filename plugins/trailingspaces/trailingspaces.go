// plugins/trailingspaces/trailingspaces.go
package trailingspaces

import (
	"fmt"
	"sync"

	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/plugin"
	"github.com/bethropolis/trailspace/internal/trailing"
	"github.com/bethropolis/trailspace/internal/trimmer"
)

// Ensure TrailingSpaces implements plugin.Plugin
var _ plugin.Plugin = (*TrailingSpaces)(nil)

// Command names registered by the plugin.
const (
	CommandDelete         = "delete"
	CommandDeleteModified = "delete-modified"
	CommandHighlight      = "highlight"
)

// TrailingSpaces wires the trimmer to host events: live highlighting,
// trim on save, snapshot capture and configuration reloads.
type TrailingSpaces struct {
	api plugin.EditorAPI

	mu            sync.Mutex
	settings      trailing.Settings
	subscriptions []event.SubscriptionID // follow the settings
	permanent     []event.SubscriptionID // snapshots and config changes
}

// New creates a new instance of the plugin.
func New() *TrailingSpaces {
	return &TrailingSpaces{}
}

// Name returns the unique name of the plugin.
func (p *TrailingSpaces) Name() string {
	return "trailing-spaces"
}

// Initialize registers the commands and listeners and highlights every open
// document.
func (p *TrailingSpaces) Initialize(api plugin.EditorAPI) error {
	p.api = api

	settings, err := api.Settings()
	if err != nil {
		return err
	}
	p.settings = settings

	for name, fn := range map[string]plugin.CommandFunc{
		CommandDelete:         func([]string) error { return p.delete(false) },
		CommandDeleteModified: func([]string) error { return p.delete(true) },
		CommandHighlight:      func([]string) error { return p.highlightActive() },
	} {
		if err := api.RegisterCommand(name, fn); err != nil {
			return fmt.Errorf("failed to register '%s' command: %w", name, err)
		}
	}

	// Snapshots are captured regardless of live matching.
	for _, t := range []event.Type{event.TypeDocumentOpened, event.TypeActiveDocumentChanged, event.TypeDocumentSaved} {
		p.permanent = append(p.permanent, api.SubscribeEvent(t, p.onCapture))
	}
	p.permanent = append(p.permanent, api.SubscribeEvent(event.TypeConfigChanged, p.onConfigChanged))

	p.registerEventListeners()
	p.highlightAll()
	api.Logger().Debugf("%s: Trailing Spaces activated.", p.Name())
	return nil
}

// Shutdown drops the listeners.
func (p *TrailingSpaces) Shutdown() error {
	if p.api == nil {
		return nil
	}
	p.dispose()
	for _, id := range p.permanent {
		p.api.UnsubscribeEvent(id)
	}
	p.permanent = nil
	return nil
}

func (p *TrailingSpaces) registerEventListeners() {
	p.mu.Lock()
	settings := p.settings
	p.mu.Unlock()

	var subs []event.SubscriptionID
	if settings.LiveMatching {
		subs = append(subs,
			p.api.SubscribeEvent(event.TypeActiveDocumentChanged, p.onDocumentEvent),
			p.api.SubscribeEvent(event.TypeDocumentChanged, p.onDocumentEvent),
			p.api.SubscribeEvent(event.TypeDocumentOpened, p.onDocumentEvent),
		)
		if !settings.HighlightCurrentLine {
			subs = append(subs, p.api.SubscribeEvent(event.TypeSelectionChanged, p.onDocumentEvent))
		}
	}
	if settings.TrimOnSave {
		subs = append(subs, p.api.SubscribeEvent(event.TypeDocumentWillSave, p.onWillSave))
	}

	p.mu.Lock()
	p.subscriptions = subs
	p.mu.Unlock()
}

func (p *TrailingSpaces) dispose() {
	p.mu.Lock()
	subs := p.subscriptions
	p.subscriptions = nil
	p.mu.Unlock()
	for _, id := range subs {
		p.api.UnsubscribeEvent(id)
	}
}

// eventKey extracts the document key from any document event payload.
func eventKey(e event.Event) string {
	switch d := e.Data.(type) {
	case event.DocumentData:
		return d.Key
	case event.DocumentChangedData:
		return d.Key
	case event.SelectionChangedData:
		return d.Key
	}
	return ""
}

// onDocumentEvent re-highlights the document an event is about, but only
// when it is the active one, except for active-document changes.
func (p *TrailingSpaces) onDocumentEvent(e event.Event) bool {
	key := eventKey(e)
	active := p.api.ActiveDocument()
	if active == nil || active.Key() != key {
		return false
	}
	p.api.Logger().DebugTagf("trailing", "%v event called - %s", e.Type, key)
	p.highlight(active)
	return false
}

func (p *TrailingSpaces) onWillSave(e event.Event) bool {
	doc, ok := p.api.Document(eventKey(e))
	if !ok {
		return false
	}
	p.api.Logger().DebugTagf("trailing", "%v event called - %s", e.Type, doc.Key())
	if _, err := p.api.Trimmer().TrimOnSave(p.api.Context(), doc); err != nil {
		p.api.Logger().Errorf("%s: trim on save: %v", p.Name(), err)
		p.api.SetStatusMessage("Trim on save failed: %v", err)
	}
	return false
}

func (p *TrailingSpaces) onCapture(e event.Event) bool {
	doc, ok := p.api.Document(eventKey(e))
	if !ok || doc.IsUntitled() || doc.Scheme() != trimmer.SchemeFile {
		return false
	}
	if e.Type == event.TypeDocumentSaved {
		// The text on disk is exactly what was just written.
		p.api.Snapshots().Set(doc.Key(), doc.Text())
		return false
	}
	if err := p.api.Snapshots().Capture(p.api.Context(), doc.Key(), doc.Path()); err != nil {
		p.api.Logger().Warnf("%s: snapshot of %s: %v", p.Name(), doc.Path(), err)
	}
	return false
}

// onConfigChanged drops the listeners, refreshes settings, registers the
// listeners for the new settings and re-highlights.
func (p *TrailingSpaces) onConfigChanged(event.Event) bool {
	settings, err := p.api.Settings()
	if err != nil {
		p.api.Logger().Errorf("%s: reloading settings: %v", p.Name(), err)
		p.api.SetStatusMessage("Trailing spaces: %v", err)
		return false
	}

	p.dispose()
	p.mu.Lock()
	p.settings = settings
	p.mu.Unlock()
	p.api.Trimmer().UpdateSettings(settings)
	p.registerEventListeners()
	p.highlightAll()
	return false
}

func (p *TrailingSpaces) highlight(doc trimmer.Document) {
	caret := p.api.Caret(doc.Key())
	if _, err := p.api.Trimmer().RangesToHighlight(doc, &caret); err != nil {
		p.api.Logger().Debugf("%s: highlight %s: %v", p.Name(), doc.Key(), err)
	}
}

func (p *TrailingSpaces) highlightAll() {
	p.mu.Lock()
	live := p.settings.LiveMatching
	p.mu.Unlock()
	if !live {
		return
	}
	for _, doc := range p.api.Documents() {
		p.highlight(doc)
	}
	p.api.Logger().Debugf("%s: All open documents highlighted", p.Name())
}

func (p *TrailingSpaces) highlightActive() error {
	doc := p.api.ActiveDocument()
	if doc == nil {
		return fmt.Errorf("no active document")
	}
	caret := p.api.Caret(doc.Key())
	_, err := p.api.Trimmer().RangesToHighlight(doc, &caret)
	return err
}

func (p *TrailingSpaces) delete(modifiedOnly bool) error {
	doc := p.api.ActiveDocument()
	if doc == nil {
		return fmt.Errorf("no active document")
	}
	_, err := p.api.Trimmer().Delete(p.api.Context(), doc, modifiedOnly)
	return err
}
