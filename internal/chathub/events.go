package chathub

import (
	"encoding/json"
	"log"
	"sync"

	"tutorlink/messaging/internal/models"
)

// EventKind names a client command ("send_message", "typing_start", ...).
type EventKind string

// Handler processes one client command. Handlers run on the hub goroutine,
// one command at a time.
type Handler func(c Client, data json.RawMessage)

type subscription struct {
	id int
	fn Handler
}

// EventBus maps event kinds to ordered handler lists. Publish invokes all
// current subscribers in registration order; a panic in one handler is
// logged and does not reach the others or the hub loop.
type EventBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventKind][]subscription
}

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[EventKind][]subscription)}
}

// Subscribe registers fn for kind and returns an id for Unsubscribe.
func (b *EventBus) Subscribe(kind EventKind, fn Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.handlers[kind] = append(b.handlers[kind], subscription{id: b.nextID, fn: fn})
	return b.nextID
}

func (b *EventBus) Unsubscribe(kind EventKind, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[kind]
	for i, sub := range subs {
		if sub.id == id {
			b.handlers[kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish dispatches the command to every subscriber of kind. Unknown
// kinds answer the originating connection with a message_error instead of
// being dropped silently.
func (b *EventBus) Publish(kind EventKind, c Client, data json.RawMessage) {
	b.mu.RLock()
	subs := b.handlers[kind]
	b.mu.RUnlock()

	if len(subs) == 0 {
		select {
		case c.GetSendChannel() <- models.ServerEvent{
			Event: models.EventMessageError,
			Data: models.MessageErrorEvent{
				Error: "Unknown event",
				Code:  "unknown_event",
			},
		}:
		default:
		}
		return
	}

	for _, sub := range subs {
		b.invoke(kind, sub, c, data)
	}
}

func (b *EventBus) invoke(kind EventKind, sub subscription, c Client, data json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: Handler for %s panicked (user %s): %v", kind, c.GetUserID(), r)
		}
	}()
	sub.fn(c, data)
}
