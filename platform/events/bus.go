package events

import (
	"context"
	"sync"

	"printshop_backend/platform/logger"
)

// InMemoryBus is a simple in-process event bus. Handlers run
// asynchronously; a panicking handler does not take down the process
// or block other handlers.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish delivers the event to all subscribed handlers asynchronously.
// Handlers receive a context detached from the caller's cancellation:
// publishers are typically request handlers whose context dies with the
// response, while dispatch outlives it.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.Name()]
	b.mu.RUnlock()

	dispatchCtx := context.WithoutCancel(ctx)
	for _, h := range handlers {
		go b.dispatch(dispatchCtx, h, event)
	}
}

func (b *InMemoryBus) dispatch(ctx context.Context, h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panic",
				"event", event.Name(),
				"panic", r,
			)
		}
	}()
	h.Handle(ctx, event)
}
