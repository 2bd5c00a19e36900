package events

import (
	"sync"
	"time"
)

// Collection-changed event types published by the store. Subscribing to
// these is the supported way to react to in-process mutations; a second
// process writing the same cache is only visible after an explicit
// Refresh call.
const (
	EmployeesChanged = "employees.changed"
	AuthChanged      = "auth.changed"
	ShiftsChanged    = "shifts.changed"
	DayOffsChanged   = "dayoffs.changed"
	SessionChanged   = "session.changed"
)

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Key       string // entity identifier, when one applies
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event Event)

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		handler(event)
	}
}
