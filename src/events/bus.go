package events

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventType identifies an event's kind. Every distinct event shape
// carries exactly one EventType value.
type EventType string

// Event is a type-erased payload. Concrete events report their kind
// through Kind; handlers recover the concrete shape themselves.
type Event interface {
	Kind() EventType
}

// Handler processes events of a single declared kind.
type Handler interface {
	// EventType declares the kind this handler accepts. It must be
	// stable for the handler's lifetime.
	EventType() EventType
	// Handle processes a matching event. Returning an error aborts the
	// remainder of the current broadcast.
	Handle(Event) error
}

// ErrNoHandlers reports a broadcast for a kind with no registrations.
// It is non-fatal; callers decide whether absence matters to them.
var ErrNoHandlers = errors.New("events: no handlers registered for event type")

type registration struct {
	id      string
	handler Handler
}

// Bus routes events to handlers by declared kind. Handlers run
// synchronously in registration order; there is no fan-out.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]registration
	logger   *zerolog.Logger
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: map[EventType][]registration{}}
}

// SetLogger installs a structured logger for dispatch diagnostics.
func (b *Bus) SetLogger(l zerolog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = &l
}

// Mediate registers a handler under the kind it declares and returns a
// registration id usable with Unmediate. Multiple handlers may register
// for the same kind; all of them run on broadcast.
func (b *Bus) Mediate(handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	kind := handler.EventType()
	id := uuid.NewString()
	b.handlers[kind] = append(b.handlers[kind], registration{id: id, handler: handler})
	if b.logger != nil {
		b.logger.Debug().Str("kind", string(kind)).Str("registration", id).Msg("handler registered")
	}
	return id
}

// Unmediate removes a registration by id, reporting whether it existed.
func (b *Bus) Unmediate(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for kind, regs := range b.handlers {
		for i, reg := range regs {
			if reg.id != id {
				continue
			}
			b.handlers[kind] = append(regs[:i:i], regs[i+1:]...)
			if len(b.handlers[kind]) == 0 {
				delete(b.handlers, kind)
			}
			return true
		}
	}
	return false
}

// HandlerCount reports the number of registrations for a kind.
func (b *Bus) HandlerCount(kind EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[kind])
}

// Broadcast delivers the event to every handler registered for its
// kind, in registration order. Each handler completes before the next
// starts, and all complete before Broadcast returns. A kind with no
// registrations yields ErrNoHandlers and invokes nothing. A handler
// error stops dispatch and is returned as-is.
func (b *Bus) Broadcast(event Event) error {
	kind := event.Kind()
	b.mu.RLock()
	regs := b.handlers[kind]
	logger := b.logger
	b.mu.RUnlock()

	if len(regs) == 0 {
		if logger != nil {
			logger.Warn().Str("kind", string(kind)).Msg("broadcast with no handlers")
		}
		return ErrNoHandlers
	}
	for _, reg := range regs {
		if err := reg.handler.Handle(event); err != nil {
			return err
		}
	}
	if logger != nil {
		logger.Debug().Str("kind", string(kind)).Int("handlers", len(regs)).Msg("broadcast complete")
	}
	return nil
}
