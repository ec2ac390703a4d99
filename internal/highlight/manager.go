// Package highlight stores per-document trailing-space decorations and the
// scan results they were computed from.
package highlight

import (
	"sync"

	"github.com/bethropolis/trailspace/internal/trailing"
	"github.com/bethropolis/trailspace/internal/types"
)

// entry is the last result stored for one document.
type entry struct {
	version   int
	caretLine int
	regions   trailing.Regions
	hasScan   bool

	decorations []types.Region
}

// Manager maps a document key to its last computed regions. Writes for the
// same key overwrite each other; the last write wins.
type Manager struct {
	appRedraw func() // may be nil

	mu         sync.RWMutex
	entries    map[string]*entry
	generation uint64 // bumped by Invalidate
}

// NewManager creates a manager. redraw, when non-nil, is called after the
// decorations of any document change.
func NewManager(redraw func()) *Manager {
	return &Manager{
		appRedraw: redraw,
		entries:   make(map[string]*entry),
	}
}

// Cached returns the scan stored for key if it was computed for the same
// document version and caret line.
func (m *Manager) Cached(key string, version, caretLine int) (trailing.Regions, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok || !e.hasScan || e.version != version || e.caretLine != caretLine {
		return trailing.Regions{}, false
	}
	return e.regions, true
}

// Generation identifies the current cache epoch. Read it before scanning
// and pass it to Store.
func (m *Manager) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

// Store records a scan result for key. Results from a generation older than
// the last Invalidate are dropped.
func (m *Manager) Store(key string, generation uint64, version, caretLine int, regions trailing.Regions) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if generation != m.generation {
		return
	}
	e := m.entry(key)
	e.version = version
	e.caretLine = caretLine
	e.regions = regions
	e.hasScan = true
}

// SetDecorations replaces the highlighted regions of key.
func (m *Manager) SetDecorations(key string, regions []types.Region) {
	m.mu.Lock()
	e := m.entry(key)
	e.decorations = append([]types.Region(nil), regions...)
	m.mu.Unlock()

	if m.appRedraw != nil {
		m.appRedraw()
	}
}

// Decorations returns a copy of the highlighted regions of key.
func (m *Manager) Decorations(key string) []types.Region {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return nil
	}
	return append([]types.Region(nil), e.decorations...)
}

// DecorationsIn returns the decorations of key clipped to span. Used by the
// renderer one line at a time.
func (m *Manager) DecorationsIn(key string, span types.Region) []types.Region {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return nil
	}
	var out []types.Region
	for _, r := range e.decorations {
		if !r.Intersects(span) {
			continue
		}
		clipped := r
		if clipped.Start < span.Start {
			clipped.Start = span.Start
		}
		if clipped.End > span.End {
			clipped.End = span.End
		}
		out = append(out, clipped)
	}
	return out
}

// Forget drops everything stored for key.
func (m *Manager) Forget(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Invalidate drops cached scans but keeps decorations on screen.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	for _, e := range m.entries {
		e.hasScan = false
		e.regions = trailing.Regions{}
	}
}

func (m *Manager) entry(key string) *entry {
	e, ok := m.entries[key]
	if !ok {
		e = &entry{}
		m.entries[key] = e
	}
	return e
}
