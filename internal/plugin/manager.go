// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sync"

	"github.com/bethropolis/trailspace/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
// Plugins are initialized and shut down in registration order.
type Manager struct {
	log *logger.Logger

	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
}

// NewManager creates a new plugin manager.
func NewManager(log *logger.Logger) *Manager {
	return &Manager{
		log:     log,
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	m.order = append(m.order, name)
	m.log.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

func (m *Manager) ordered() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.plugins[name])
	}
	return out
}

// InitializePlugins calls Initialize on every plugin. A failing plugin is
// logged and the rest still start; the first error is returned.
func (m *Manager) InitializePlugins(api EditorAPI) error {
	plugins := m.ordered()
	m.log.Debugf("Plugin Manager: Initializing %d plugins...", len(plugins))

	var firstErr error
	for _, p := range plugins {
		if err := p.Initialize(api); err != nil {
			m.log.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", p.Name(), err)
			if firstErr == nil {
				firstErr = fmt.Errorf("plugin '%s': %w", p.Name(), err)
			}
			continue
		}
		m.log.Debugf("Plugin Manager: Successfully initialized plugin '%s'", p.Name())
	}
	return firstErr
}

// ShutdownPlugins calls Shutdown on all registered plugins.
func (m *Manager) ShutdownPlugins() {
	plugins := m.ordered()
	m.log.Debugf("Plugin Manager: Shutting down %d plugins...", len(plugins))
	for _, p := range plugins {
		if err := p.Shutdown(); err != nil {
			m.log.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", p.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
