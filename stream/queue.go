package stream

import (
	"sync"
	"sync/atomic"

	"shelfsense/models"
)

// eventQueue is a bounded FIFO with drop-oldest overflow semantics. Each
// camera loop owns one queue as producer; the aggregator is the only
// consumer. Never blocks the producer.
type eventQueue struct {
	mu      sync.Mutex
	buf     []models.StreamEvent
	head    int
	size    int
	dropped atomic.Uint64
}

func newEventQueue(capacity int) *eventQueue {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	return &eventQueue{buf: make([]models.StreamEvent, capacity)}
}

// push appends an event, evicting the oldest one when the queue is full.
func (q *eventQueue) push(ev models.StreamEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == len(q.buf) {
		q.head = (q.head + 1) % len(q.buf)
		q.size--
		q.dropped.Add(1)
	}
	q.buf[(q.head+q.size)%len(q.buf)] = ev
	q.size++
}

// drain removes and returns all buffered events in arrival order.
func (q *eventQueue) drain() []models.StreamEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == 0 {
		return nil
	}
	out := make([]models.StreamEvent, q.size)
	for i := 0; i < q.size; i++ {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.head = 0
	q.size = 0
	return out
}

func (q *eventQueue) length() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// droppedCount returns how many events overflow has evicted so far.
func (q *eventQueue) droppedCount() uint64 {
	return q.dropped.Load()
}
