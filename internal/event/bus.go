package event

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrNilHandler indicates Subscribe was called without a handler.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrInvalidTopic indicates a subscription pattern is malformed.
	ErrInvalidTopic = errors.New("invalid topic pattern")

	// ErrInvalidEvent indicates a published event does not name a topic.
	ErrInvalidEvent = errors.New("event does not provide a topic")
)

// TopicProvider is implemented by types that can provide their topic.
type TopicProvider interface {
	EventTopic() Topic
}

// HandlerFunc receives published events.
type HandlerFunc func(event any)

// Subscription represents an active subscription on a Bus.
type Subscription struct {
	id      string
	pattern Topic
	fn      HandlerFunc
	bus     *Bus
	active  atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Pattern returns the subscribed topic pattern.
func (s *Subscription) Pattern() Topic { return s.pattern }

// IsActive returns true if the subscription can receive events.
func (s *Subscription) IsActive() bool { return s.active.Load() }

// Cancel permanently removes the subscription from its bus.
// Cancelling twice is harmless.
func (s *Subscription) Cancel() {
	if s.active.Swap(false) {
		s.bus.remove(s.id)
	}
}

// Bus routes published events to matching subscriptions, synchronously
// and in subscription order.
type Bus struct {
	mu   sync.RWMutex
	subs []*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for every event whose topic matches the
// pattern. The pattern may contain wildcards.
func (b *Bus) Subscribe(pattern Topic, fn HandlerFunc) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := &Subscription{
		id:      generateID(),
		pattern: pattern,
		fn:      fn,
		bus:     b,
	}
	sub.active.Store(true)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return sub, nil
}

// Publish delivers the event to every subscription whose pattern
// matches the event's topic. Handlers run on the caller's goroutine
// before Publish returns. Subscriptions taken or cancelled by a handler
// affect later publishes, not this one.
func (b *Bus) Publish(event any) error {
	tp, ok := event.(TopicProvider)
	if !ok {
		return ErrInvalidEvent
	}
	eventTopic := tp.EventTopic()
	if eventTopic == "" {
		return ErrInvalidEvent
	}

	b.mu.RLock()
	matched := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.IsActive() && eventTopic.Matches(sub.pattern) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range matched {
		if sub.IsActive() {
			sub.fn(event)
		}
	}
	return nil
}

// SubscriberCount returns the number of active subscriptions that would
// receive an event on topic. The empty topic counts every subscription.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if topic == "" {
		return len(b.subs)
	}
	n := 0
	for _, sub := range b.subs {
		if topic.Matches(sub.pattern) {
			n++
		}
	}
	return n
}

// remove drops the subscription with the given id.
func (b *Bus) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// generateID generates a unique subscription ID.
func generateID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// Fallback to a timestamp-based ID if crypto/rand fails.
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(buf)
}
