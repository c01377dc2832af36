package stream

import (
	"errors"
	"sync"
	"sync/atomic"

	"shelfsense/models"
)

// Sink consumes stream events from the aggregator. A failing sink only
// loses the offending event; the stream keeps flowing.
type Sink interface {
	Consume(ev models.StreamEvent) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev models.StreamEvent) error

func (f SinkFunc) Consume(ev models.StreamEvent) error {
	return f(ev)
}

var ErrSubscriberExists = errors.New("subscriber id already registered")

// Broadcaster fans events out to subscriber channels with non-blocking
// sends: a subscriber that cannot keep up loses events rather than
// stalling the aggregator.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan models.StreamEvent
	drops       atomic.Uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[string]chan models.StreamEvent)}
}

// Subscribe registers a subscriber and returns its event channel. The
// channel is closed on Unsubscribe.
func (b *Broadcaster) Subscribe(id string, buffer int) (<-chan models.StreamEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.subscribers[id]; exists {
		return nil, ErrSubscriberExists
	}
	if buffer <= 0 {
		buffer = 64
	}
	ch := make(chan models.StreamEvent, buffer)
	b.subscribers[id] = ch
	return ch, nil
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, exists := b.subscribers[id]; exists {
		delete(b.subscribers, id)
		close(ch)
	}
}

// Consume implements Sink.
func (b *Broadcaster) Consume(ev models.StreamEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			b.drops.Add(1)
		}
	}
	return nil
}

// Dropped returns the number of events lost to slow subscribers.
func (b *Broadcaster) Dropped() uint64 {
	return b.drops.Load()
}

// SubscriberCount returns the number of registered subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
