// Package event is a small in-process publish/subscribe bus. Services publish
// domain events after their database writes commit; side effects (notification
// fan-out, certificate issuance) live in subscribed handlers instead of being
// buried inside the write path.
package event

import (
	"context"
	"log"
	"sync"
)

type Event interface {
	Name() string
}

type AnnouncementCreated struct {
	AnnouncementID string
	Title          string
}

func (AnnouncementCreated) Name() string { return "announcement.created" }

// SubmissionCreated fires only on the first save of a team's submission, not
// on subsequent updates.
type SubmissionCreated struct {
	SubmissionID string
	TeamID       string
}

func (SubmissionCreated) Name() string { return "submission.created" }

type Handler func(ctx context.Context, e Event) error

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish runs the handlers for e synchronously, in subscription order. A
// failing handler is logged and does not stop the others; the triggering
// request already committed and must still succeed.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := b.handlers[e.Name()]
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			log.Printf("ERROR: event handler for %s failed: %v", e.Name(), err)
		}
	}
}
