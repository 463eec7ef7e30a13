package sim

import "fmt"

// EventKind tags the two event variants.
type EventKind int

const (
	EventArrival EventKind = iota
	EventDeparture
)

func (k EventKind) String() string {
	switch k {
	case EventArrival:
		return "ARRIVAL"
	case EventDeparture:
		return "DEPARTURE"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event defines the interface for all simulation events.
// Events carry identifiers only; everything else is looked up from the
// Simulator state when the event executes.
type Event interface {
	Timestamp() float64
	Kind() EventKind
	Patient() PatientID
	Execute(*Simulator)
}

// ArrivalEvent represents a patient walking into the clinic.
type ArrivalEvent struct {
	time    float64
	patient PatientID
}

// NewArrivalEvent creates an ArrivalEvent at time t (minutes).
func NewArrivalEvent(t float64, patient PatientID) *ArrivalEvent {
	return &ArrivalEvent{time: t, patient: patient}
}

func (e *ArrivalEvent) Timestamp() float64 { return e.time }
func (e *ArrivalEvent) Kind() EventKind    { return EventArrival }
func (e *ArrivalEvent) Patient() PatientID { return e.patient }

// Execute assigns the patient to a doctor or parks it in its specialty queue.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	sim.handleArrival(e.patient, e.time)
}

// DepartureEvent represents the end of a consultation by a named doctor.
type DepartureEvent struct {
	time    float64
	patient PatientID
	doctor  int
}

// NewDepartureEvent creates a DepartureEvent at time t (minutes).
func NewDepartureEvent(t float64, patient PatientID, doctor int) *DepartureEvent {
	return &DepartureEvent{time: t, patient: patient, doctor: doctor}
}

func (e *DepartureEvent) Timestamp() float64 { return e.time }
func (e *DepartureEvent) Kind() EventKind    { return EventDeparture }
func (e *DepartureEvent) Patient() PatientID { return e.patient }

// Doctor returns the index of the doctor being freed.
func (e *DepartureEvent) Doctor() int { return e.doctor }

// Execute frees the doctor and pulls the next waiting patient, if any.
func (e *DepartureEvent) Execute(sim *Simulator) {
	sim.handleDeparture(e.patient, e.doctor, e.time)
}
