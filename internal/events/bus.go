// Package events provides a minimal in-process event bus. The client uses it
// to broadcast session-level events (forced logout) to the application shell.
package events

import "sync"

// Event identifies a broadcast event type.
type Event string

const (
	// AuthLogout is emitted when the session is irrecoverably invalid and
	// the application must return the user to the login screen.
	AuthLogout Event = "AUTH_LOGOUT"
)

// Payload carries the event and an optional human-readable reason.
type Payload struct {
	Event  Event
	Reason string
}

// Handler receives published events.
type Handler func(Payload)

// Bus fans events out to subscribers. Delivery is synchronous per subscriber
// but never blocks the publisher on a nil or panicking handler.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Event][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Event][]Handler)}
}

// Subscribe registers handler for event.
func (b *Bus) Subscribe(event Event, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Publish delivers payload to all handlers subscribed to its event.
func (b *Bus) Publish(payload Payload) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[payload.Event]))
	copy(handlers, b.handlers[payload.Event])
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() { _ = recover() }()
			h(payload)
		}()
	}
}
