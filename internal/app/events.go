package app

import (
	"github.com/bethropolis/trailspace/internal/event"
)

// subscribeAppHandlers wires the viewer's own reactions to document events.
func (a *App) subscribeAppHandlers() {
	a.eventManager.Subscribe(event.TypeDocumentChanged, a.handleDocumentChanged)
	a.eventManager.Subscribe(event.TypeDocumentSaved, a.handleDocumentSaved)
	a.eventManager.Subscribe(event.TypeActiveDocumentChanged, a.handleActiveDocumentChanged)
}

// handleDocumentChanged keeps the caret valid after an edit.
func (a *App) handleDocumentChanged(e event.Event) bool {
	data, ok := e.Data.(event.DocumentChangedData)
	if !ok {
		a.log.Warnf("App: Received DocumentChanged event with unexpected data type: %T", e.Data)
		return false
	}
	if d := a.findDoc(data.Key); d != nil {
		a.scrollToCaret(d)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleDocumentSaved(event.Event) bool {
	a.requestRedraw()
	return false
}

func (a *App) handleActiveDocumentChanged(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentData); ok {
		a.log.Debugf("App: active document is now %s", data.Key)
	}
	a.requestRedraw()
	return false
}
