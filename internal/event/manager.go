// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/trailspace/internal/logger"
)

// Handler is an event subscriber. It returns true if the event was consumed.
// The return value is informational; every subscriber still runs.
type Handler func(e Event) bool

// SubscriptionID identifies a subscription for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager handles event subscriptions and synchronous dispatch.
type Manager struct {
	log *logger.Logger

	mu       sync.RWMutex
	nextID   SubscriptionID
	handlers map[Type][]subscription
}

// NewManager creates a new event manager.
func NewManager(log *logger.Logger) *Manager {
	return &Manager{
		log:      log,
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe adds a handler for eventType.
func (m *Manager) Subscribe(eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: id, handler: handler})
	m.log.DebugTagf("event", "Event Manager: Handler %d subscribed to %v", id, eventType)
	return id
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (m *Manager) Unsubscribe(id SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for t, subs := range m.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			// Copy so an in-flight Dispatch keeps its own slice.
			kept := make([]subscription, 0, len(subs)-1)
			kept = append(kept, subs[:i]...)
			kept = append(kept, subs[i+1:]...)
			m.handlers[t] = kept
			m.log.DebugTagf("event", "Event Manager: Handler %d unsubscribed from %v", id, t)
			return
		}
	}
}

// Count returns the number of handlers subscribed to eventType.
func (m *Manager) Count(eventType Type) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[eventType])
}

// Dispatch sends an event to every handler registered for its type, in
// subscription order. Handlers may subscribe or unsubscribe during dispatch;
// the change applies from the next Dispatch.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	m.mu.RLock()
	subs := m.handlers[eventType]
	m.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	m.log.DebugTagf("event", "Event Manager: Dispatching %v to %d handler(s)", eventType, len(subs))

	e := Event{Type: eventType, Data: data}
	for _, s := range subs {
		s.handler(e)
	}
}
