package stream

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"shelfsense/models"
)

func makeEvent(id string) models.StreamEvent {
	return models.StreamEvent{EventID: id, Type: models.EventAlert}
}

func TestQueuePushDrain(t *testing.T) {
	q := newEventQueue(10)
	for i := 0; i < 5; i++ {
		q.push(makeEvent(fmt.Sprintf("e%d", i)))
	}

	assert.Equal(t, 5, q.length())
	events := q.drain()
	assert.Len(t, events, 5)
	for i, ev := range events {
		assert.Equal(t, fmt.Sprintf("e%d", i), ev.EventID)
	}

	assert.Equal(t, 0, q.length())
	assert.Nil(t, q.drain())
	assert.Equal(t, uint64(0), q.droppedCount())
}

func TestQueueDropsOldestOnOverflow(t *testing.T) {
	q := newEventQueue(3)
	for i := 0; i < 5; i++ {
		q.push(makeEvent(fmt.Sprintf("e%d", i)))
	}

	assert.Equal(t, uint64(2), q.droppedCount())

	events := q.drain()
	assert.Len(t, events, 3)
	assert.Equal(t, "e2", events[0].EventID)
	assert.Equal(t, "e3", events[1].EventID)
	assert.Equal(t, "e4", events[2].EventID)
}

func TestQueueWrapAround(t *testing.T) {
	q := newEventQueue(4)
	q.push(makeEvent("a"))
	q.push(makeEvent("b"))
	_ = q.drain()

	for _, id := range []string{"c", "d", "e", "f"} {
		q.push(makeEvent(id))
	}

	events := q.drain()
	assert.Len(t, events, 4)
	assert.Equal(t, "c", events[0].EventID)
	assert.Equal(t, "f", events[3].EventID)
	assert.Equal(t, uint64(0), q.droppedCount())
}

func TestQueueDefaultCapacity(t *testing.T) {
	q := newEventQueue(0)
	assert.Equal(t, defaultQueueCapacity, len(q.buf))
}
