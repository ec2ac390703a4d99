package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/trailspace/internal/logger"
)

// Registry resolves file paths to languages.
type Registry struct {
	log *logger.Logger

	mu        sync.RWMutex
	languages []*Language
	byExt     map[string]*Language
	byName    map[string]*Language
	byID      map[string]*Language
}

// NewRegistry returns a registry preloaded with the built-in languages.
func NewRegistry(log *logger.Logger) *Registry {
	r := &Registry{
		log:    log,
		byExt:  make(map[string]*Language),
		byName: make(map[string]*Language),
		byID:   make(map[string]*Language),
	}
	for _, l := range builtin {
		r.Register(l)
	}
	return r
}

// Register adds a language. Later registrations override earlier ones for
// the same extension or file name.
func (r *Registry) Register(l *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.languages = append(r.languages, l)
	r.byID[l.ID] = l
	for _, ext := range l.Extensions {
		ext = strings.ToLower(ext)
		if existing, ok := r.byExt[ext]; ok {
			r.log.Warnf("Extension %s already registered to %s, overriding with %s", ext, existing.ID, l.ID)
		}
		r.byExt[ext] = l
	}
	for _, name := range l.Filenames {
		r.byName[name] = l
	}
	r.log.DebugTagf("lang", "Registered language: %s with extensions: %v", l.ID, l.Extensions)
}

// ForFile returns the language of filePath, or nil when none matches.
// Exact file names win over extensions.
func (r *Registry) ForFile(filePath string) *Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	base := filepath.Base(filePath)
	if l, ok := r.byName[base]; ok {
		return l
	}
	return r.byExt[strings.ToLower(filepath.Ext(base))]
}

// Detect returns the language ID of filePath, PlainText when unknown.
func (r *Registry) Detect(filePath string) string {
	if l := r.ForFile(filePath); l != nil {
		return l.ID
	}
	return PlainText
}

// Lookup returns the language registered under id.
func (r *Registry) Lookup(id string) (*Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byID[id]
	return l, ok
}

// All returns every registered language in registration order.
func (r *Registry) All() []*Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Language, len(r.languages))
	copy(result, r.languages)
	return result
}
