// services/hub.go - Live subscription hub
//
// The hub is the in-process replacement for the store-side snapshot
// listeners the mobile client used to hold: clients subscribe to topics over
// a websocket, mutations publish events, and every subscription is torn down
// with the connection so nothing leaks past a disconnect.
package services

import (
	"fmt"
	"sync"
	"time"
)

const subscriberBufferSize = 64

// Event is one pushed update on a topic.
type Event struct {
	Topic   string      `json:"topic"`
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	SentAt  time.Time   `json:"sent_at"`
}

// Subscriber is one connected client with its set of topics.
type Subscriber struct {
	send   chan Event
	closed bool
	mu     sync.Mutex
}

// C returns the subscriber's event stream.
func (s *Subscriber) C() <-chan Event {
	return s.send
}

func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.send)
	}
}

// deliver attempts a non-blocking send. A subscriber whose buffer is full is
// skipped; the publisher never waits on a slow client.
func (s *Subscriber) deliver(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.send <- ev:
		return true
	default:
		return false
	}
}

// Hub tracks subscribers and their topic sets.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscriber]struct{}
	subs   map[*Subscriber]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[*Subscriber]struct{}),
		subs:   make(map[*Subscriber]map[string]struct{}),
	}
}

var liveHub = NewHub()

// GetHub returns the process-wide hub.
func GetHub() *Hub {
	return liveHub
}

// Register adds a new subscriber with no topics.
func (h *Hub) Register() *Subscriber {
	s := &Subscriber{send: make(chan Event, subscriberBufferSize)}
	h.mu.Lock()
	h.subs[s] = make(map[string]struct{})
	h.mu.Unlock()
	return s
}

// Unregister removes the subscriber from every topic and closes its stream.
func (h *Hub) Unregister(s *Subscriber) {
	h.mu.Lock()
	if topics, ok := h.subs[s]; ok {
		for topic := range topics {
			delete(h.topics[topic], s)
			if len(h.topics[topic]) == 0 {
				delete(h.topics, topic)
			}
		}
		delete(h.subs, s)
	}
	h.mu.Unlock()
	s.close()
}

// Subscribe adds the subscriber to a topic.
func (h *Hub) Subscribe(s *Subscriber, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; !ok {
		return
	}
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Subscriber]struct{})
	}
	h.topics[topic][s] = struct{}{}
	h.subs[s][topic] = struct{}{}
}

// Unsubscribe removes the subscriber from a topic.
func (h *Hub) Unsubscribe(s *Subscriber, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[s], topic)
	delete(h.topics[topic], s)
	if len(h.topics[topic]) == 0 {
		delete(h.topics, topic)
	}
}

// Topics returns the subscriber's current topic set.
func (h *Hub) Topics(s *Subscriber) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.subs[s]))
	for topic := range h.subs[s] {
		out = append(out, topic)
	}
	return out
}

// SubscriberCount returns how many subscribers a topic currently has.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Publish fans an event out to a topic and returns how many subscribers
// received it.
func (h *Hub) Publish(topic, eventType string, payload interface{}) int {
	ev := Event{Topic: topic, Type: eventType, Payload: payload, SentAt: time.Now()}

	h.mu.RLock()
	targets := make([]*Subscriber, 0, len(h.topics[topic]))
	for s := range h.topics[topic] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, s := range targets {
		if s.deliver(ev) {
			delivered++
		}
	}
	return delivered
}

// Topic names

func GameTopic(gameID uint) string {
	return fmt.Sprintf("game:%d", gameID)
}

func GroupTopic(groupID uint) string {
	return fmt.Sprintf("group:%d", groupID)
}
