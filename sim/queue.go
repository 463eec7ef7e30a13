// Implements the specialty wait queues. A patient is enqueued when no
// compatible doctor is free on arrival and dequeued when a doctor frees up.

package sim

import (
	"fmt"
	"strings"

	"github.com/clinic-sim/clinic-sim/sim/clinic"
)

// WaitQueue is a FIFO list of patients waiting for one specialty.
type WaitQueue struct {
	queue []PatientID
}

// Enqueue adds a patient to the back of the wait queue.
func (wq *WaitQueue) Enqueue(p PatientID) {
	wq.queue = append(wq.queue, p)
}

// Dequeue removes the patient at the front of the queue.
func (wq *WaitQueue) Dequeue() (PatientID, bool) {
	if len(wq.queue) == 0 {
		return 0, false
	}
	p := wq.queue[0]
	wq.queue = wq.queue[1:]
	return p, true
}

// Peek returns the patient at the front without removing it.
func (wq *WaitQueue) Peek() (PatientID, bool) {
	if len(wq.queue) == 0 {
		return 0, false
	}
	return wq.queue[0], true
}

// Len returns the number of waiting patients.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(int(val)))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// SpecialtyQueues maps each specialty to its wait queue. The General queue
// always exists; specialist queues are created on first use.
type SpecialtyQueues struct {
	queues map[clinic.Specialty]*WaitQueue
}

// NewSpecialtyQueues creates the queue set with an empty General queue.
func NewSpecialtyQueues() *SpecialtyQueues {
	return &SpecialtyQueues{
		queues: map[clinic.Specialty]*WaitQueue{clinic.General: {}},
	}
}

// Enqueue appends a patient to the tail of the queue for sp.
func (sq *SpecialtyQueues) Enqueue(sp clinic.Specialty, p PatientID) {
	q, ok := sq.queues[sp]
	if !ok {
		q = &WaitQueue{}
		sq.queues[sp] = q
	}
	q.Enqueue(p)
}

// Queue returns the wait queue for sp, or nil if none was ever created.
func (sq *SpecialtyQueues) Queue(sp clinic.Specialty) *WaitQueue {
	return sq.queues[sp]
}

// Len returns the number of patients waiting for sp.
func (sq *SpecialtyQueues) Len(sp clinic.Specialty) int {
	if q := sq.queues[sp]; q != nil {
		return q.Len()
	}
	return 0
}

// Total returns the number of patients waiting across all queues.
func (sq *SpecialtyQueues) Total() int {
	n := 0
	for _, q := range sq.queues {
		n += q.Len()
	}
	return n
}

// NextFor picks the next patient for a doctor of specialty own that just
// became free: its own queue first, then the other specialist queues in
// clinic.Specialists order, then the General queue.
func (sq *SpecialtyQueues) NextFor(own clinic.Specialty) (PatientID, clinic.Specialty, bool) {
	if p, ok := sq.dequeue(own); ok {
		return p, own, true
	}
	for _, sp := range clinic.Specialists() {
		if sp == own {
			continue
		}
		if p, ok := sq.dequeue(sp); ok {
			return p, sp, true
		}
	}
	if p, ok := sq.dequeue(clinic.General); ok {
		return p, clinic.General, true
	}
	return 0, "", false
}

func (sq *SpecialtyQueues) dequeue(sp clinic.Specialty) (PatientID, bool) {
	q := sq.queues[sp]
	if q == nil {
		return 0, false
	}
	return q.Dequeue()
}
