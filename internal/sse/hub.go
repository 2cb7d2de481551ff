// Package sse is the in-memory pub/sub core: a registry of live
// subscribers and a broadcaster that fans each event out to all of
// them. One Hub serves the whole process.
package sse

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/karwey/ssecast/internal/event"
)

// Subscriber is one live /events connection. Its queue is owned by the
// connection's handler: the Hub writes, the handler reads, nobody else
// touches it.
type Subscriber struct {
	id string
	q  *queue
}

// ID returns the subscriber's identifier, used in logs.
func (s *Subscriber) ID() string { return s.id }

// Events returns the channel the owning handler receives on. It is
// closed when the subscriber is deregistered.
func (s *Subscriber) Events() <-chan event.Event { return s.q.out }

// Hub tracks the live subscriber set and broadcasts events to it.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

// Register creates a new subscriber with a fresh unbounded queue and
// adds it to the live set. Events broadcast before Register returns are
// never delivered to the new subscriber.
func (h *Hub) Register() *Subscriber {
	s := &Subscriber{id: uuid.NewString(), q: newQueue()}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Deregister removes s from the live set and closes its queue.
// Deregistering a subscriber that is already gone is a no-op, which
// covers double-cleanup races on disconnect.
func (h *Hub) Deregister(s *Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[s]
	delete(h.subs, s)
	h.mu.Unlock()
	if ok {
		s.q.Close()
	}
}

// Count returns the number of live subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// snapshot copies the live set under the lock so a broadcast in
// progress is unaffected by subscribers joining or leaving mid-way.
func (h *Hub) snapshot() []*Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := make([]*Subscriber, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	return subs
}

// Broadcast enqueues e onto every subscriber in a point-in-time
// snapshot of the live set. A subscriber that disconnected between the
// snapshot and the enqueue fails that one delivery; the failure is
// logged and the rest of the snapshot still receives the event. There
// is no retry and no durability: an event broadcast with zero
// subscribers connected is simply lost.
//
// Broadcast is safe to call from any goroutine. Enqueues happen outside
// the registry lock, so a slow delivery never blocks Register or
// Deregister.
func (h *Hub) Broadcast(e event.Event) {
	for _, s := range h.snapshot() {
		if err := s.q.Push(e); err != nil {
			slog.Warn("broadcast delivery failed", "subscriber", s.id, "error", err)
		}
	}
}
