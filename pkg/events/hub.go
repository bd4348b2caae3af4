// Package events carries daemon-side happenings, battery status
// changes foremost, to SSE subscribers on the control socket.
package events

import (
	"encoding/json"
	"sync"
)

// subscriberBuffer bounds how far a slow SSE consumer may lag before
// events are dropped for it.
const subscriberBuffer = 16

// EventHub fans published events out to all current subscribers.
// Publishing never blocks the watcher loop.
type EventHub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewEventHub() *EventHub { return &EventHub{subs: make(map[chan Event]struct{})} }

// Subscribe registers a new consumer. The caller must Unsubscribe the
// returned channel when done (the SSE handler does this on client
// disconnect).
func (h *EventHub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a consumer and closes its channel. Safe to call
// with a channel that was already unsubscribed.
func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish marshals the payload and hands it to every subscriber. A
// subscriber whose buffer is full misses the event; the watcher loop
// must never wait on a stuck SSE client.
func (h *EventHub) Publish(name string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := Event{Name: name, Data: b}
	h.mu.RLock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	h.mu.RUnlock()
}
