package sim

import (
	"container/heap"
	"fmt"
	"math"
)

// scheduledEvent pairs an event with its insertion sequence number.
type scheduledEvent struct {
	ev  Event
	seq uint64
}

// eventHeap implements heap.Interface with deterministic ordering.
// Order by: timestamp → insertion sequence.
type eventHeap []scheduledEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].ev.Timestamp() != h[j].ev.Timestamp() {
		return h[i].ev.Timestamp() < h[j].ev.Timestamp()
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(scheduledEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue is the simulation's future event list. Events scheduled at the
// same time are delivered in the order they were scheduled.
type EventQueue struct {
	events  eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty queue whose sequence numbers start at 0.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Schedule adds an event and returns the sequence number it was given.
// Sequence numbers are strictly increasing for the life of the queue.
func (q *EventQueue) Schedule(ev Event) uint64 {
	if ev == nil {
		panic("EventQueue.Schedule: event must not be nil")
	}
	if t := ev.Timestamp(); math.IsNaN(t) || math.IsInf(t, 0) {
		panic(fmt.Sprintf("EventQueue.Schedule: %s for patient %d has non-finite time %v", ev.Kind(), ev.Patient(), t))
	}
	seq := q.nextSeq
	q.nextSeq++
	heap.Push(&q.events, scheduledEvent{ev: ev, seq: seq})
	return seq
}

// PopNext removes and returns the next event, or nil when the queue is empty.
func (q *EventQueue) PopNext() Event {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.events).(scheduledEvent).ev
}

// Peek returns the next event without removing it.
func (q *EventQueue) Peek() Event {
	if q.Len() == 0 {
		return nil
	}
	return q.events[0].ev
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return q.events.Len()
}
