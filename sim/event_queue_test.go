package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEventQueue_TimestampOrdering tests that events are delivered in timestamp order
func TestEventQueue_TimestampOrdering(t *testing.T) {
	q := NewEventQueue()

	q.Schedule(NewArrivalEvent(10, 1))
	q.Schedule(NewArrivalEvent(5, 2))
	q.Schedule(NewDepartureEvent(15, 3, 0))

	var got []float64
	for q.Len() > 0 {
		got = append(got, q.PopNext().Timestamp())
	}
	assert.Equal(t, []float64{5, 10, 15}, got)
}

// TestEventQueue_SimultaneousEvents_FIFO tests that equal times keep insertion order
// regardless of event kind.
func TestEventQueue_SimultaneousEvents_FIFO(t *testing.T) {
	q := NewEventQueue()

	q.Schedule(NewDepartureEvent(7, 4, 0))
	q.Schedule(NewArrivalEvent(7, 1))
	q.Schedule(NewArrivalEvent(3, 9))
	q.Schedule(NewArrivalEvent(7, 2))
	q.Schedule(NewDepartureEvent(7, 3, 1))

	var got []PatientID
	for q.Len() > 0 {
		got = append(got, q.PopNext().Patient())
	}
	assert.Equal(t, []PatientID{9, 4, 1, 2, 3}, got)
}

func TestEventQueue_SequenceNumbers_StrictlyIncreasing(t *testing.T) {
	q := NewEventQueue()
	var last uint64
	for i := 0; i < 100; i++ {
		seq := q.Schedule(NewArrivalEvent(float64(100-i), PatientID(i)))
		if i > 0 {
			assert.Greater(t, seq, last)
		}
		last = seq
		if i%3 == 0 {
			q.PopNext()
		}
	}
}

func TestEventQueue_EmptyQueue(t *testing.T) {
	q := NewEventQueue()
	assert.Nil(t, q.PopNext())
	assert.Nil(t, q.Peek())
	assert.Equal(t, 0, q.Len())
}

func TestEventQueue_PeekDoesNotRemove(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(NewArrivalEvent(2, 1))
	q.Schedule(NewArrivalEvent(1, 2))

	assert.Equal(t, PatientID(2), q.Peek().Patient())
	assert.Equal(t, 2, q.Len())
}

func TestEventQueue_RejectsInvalidEvents(t *testing.T) {
	q := NewEventQueue()
	assert.Panics(t, func() { q.Schedule(nil) })
	assert.Panics(t, func() { q.Schedule(NewArrivalEvent(math.NaN(), 1)) })
	assert.Panics(t, func() { q.Schedule(NewArrivalEvent(math.Inf(1), 1)) })
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "ARRIVAL", EventArrival.String())
	assert.Equal(t, "DEPARTURE", EventDeparture.String())
	assert.Equal(t, "EventKind(7)", EventKind(7).String())
}
