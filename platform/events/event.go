// Package events provides a lightweight in-process event bus for
// decoupled communication between domain modules.
package events

import (
	"context"
	"time"
)

// Event is the interface all domain events implement.
type Event interface {
	// Name returns the event name, e.g. "printers.changed".
	Name() string
	// OccurredAt returns when the event happened.
	OccurredAt() time.Time
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	EventName string
	Timestamp time.Time
}

// NewBaseEvent creates a base event with the current timestamp.
func NewBaseEvent(name string) BaseEvent {
	return BaseEvent{
		EventName: name,
		Timestamp: time.Now().UTC(),
	}
}

func (e BaseEvent) Name() string          { return e.EventName }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// Handler processes a single event.
type Handler interface {
	Handle(ctx context.Context, event Event)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event)

func (f HandlerFunc) Handle(ctx context.Context, event Event) { f(ctx, event) }

// Bus publishes events to subscribed handlers.
type Bus interface {
	// Publish delivers the event to all handlers subscribed to its name.
	Publish(ctx context.Context, event Event)
	// Subscribe registers a handler for the given event name.
	Subscribe(eventName string, handler Handler)
}
