// Package realtime pushes events to the live sessions of a user. Delivery is
// best-effort: users without a session, or sessions that cannot keep up,
// miss the event and catch up through the regular API.
package realtime

import (
	"sync"
)

// Event types pushed to clients
const (
	EventNewMessage      = "new_message"
	EventNewNotification = "new_notification"
	EventFriendRequest   = "friend_request"
)

// Event is the frame written to subscribers
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Publisher delivers an event to userID if connected, else drops it
type Publisher interface {
	Publish(userID string, event Event)
}

// Subscriber receives events for one session. Deliver must not block; it
// returns false when the event was dropped. Close ends the session.
type Subscriber interface {
	Deliver(event Event) bool
	Close()
}

// Hub is a publish/subscribe registry keyed by user id
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[Subscriber]struct{}
	closed bool
}

var _ Publisher = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[Subscriber]struct{})}
}

// Subscribe registers sub for userID and returns the function that removes it
func (h *Hub) Subscribe(userID string, sub Subscriber) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.Close()
		return func() {}
	}
	set, ok := h.subs[userID]
	if !ok {
		set = make(map[Subscriber]struct{})
		h.subs[userID] = set
	}
	set[sub] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() { h.unsubscribe(userID, sub) })
	}
}

func (h *Hub) unsubscribe(userID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[userID]
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, userID)
	}
}

// Publish hands event to every session of userID without waiting on any of them
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[userID] {
		sub.Deliver(event)
	}
}

// Connected returns the number of live sessions for userID
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

// Close ends every session and turns away later subscribers. It is meant to
// run on server shutdown, which does not wait on hijacked connections.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	var all []Subscriber
	for _, set := range h.subs {
		for sub := range set {
			all = append(all, sub)
		}
	}
	h.subs = make(map[string]map[Subscriber]struct{})
	h.mu.Unlock()

	for _, sub := range all {
		sub.Close()
	}
}
