// sim/simulator.go
package sim

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clinic-sim/clinic-sim/sim/clinic"
)

// Simulator is the core object that holds simulation time, clinic state, and
// the event loop. A Simulator is owned by one goroutine; independent
// Simulators share nothing and may run concurrently.
type Simulator struct {
	cfg      Config
	dist     ServiceDistribution
	key      SimulationKey
	arrivals ArrivalGenerator

	Clock float64
	// events holds pending arrivals and departures
	events  *EventQueue
	gen     *Generators
	doctors *DoctorPool
	queues  *SpecialtyQueues
	triage  map[PatientID]clinic.Classification

	// per-patient timestamps, in minutes
	arrivalAt map[PatientID]float64
	startAt   map[PatientID]float64
	departAt  map[PatientID]float64
	duration  map[PatientID]float64

	// patients in the order their consultations started
	serviceOrder  []PatientID
	consultations []Consultation
	served        int
}

// NewSimulator validates cfg and returns a Simulator ready to Run. The
// patient list and specialty map are copied so later caller mutations
// cannot leak into a run.
func NewSimulator(cfg Config) (*Simulator, error) {
	if cfg.ArrivalPattern == "" {
		cfg.ArrivalPattern = PatternHomogeneous
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dist, err := ParseServiceDistribution(cfg.Distribution)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	var seed int64
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed = time.Now().UnixNano()
		logrus.Infof("No seed supplied; using %d", seed)
	}

	cfg.Patients = slices.Clone(cfg.Patients)
	cfg.DoctorSpecialties = maps.Clone(cfg.DoctorSpecialties)
	cfg.RateBlocks = slices.Clone(cfg.RateBlocks)
	cfg.ArrivalTimes = slices.Clone(cfg.ArrivalTimes)

	return &Simulator{
		cfg:      cfg,
		dist:     dist,
		key:      NewSimulationKey(seed),
		arrivals: NewArrivalGenerator(cfg),
	}, nil
}

// Key returns the SimulationKey every Run of this Simulator uses.
func (sim *Simulator) Key() SimulationKey {
	return sim.key
}

// Config returns the validated configuration.
func (sim *Simulator) Config() Config {
	return sim.cfg
}

// reset discards all state from a previous run and reseeds the stream.
func (sim *Simulator) reset() {
	sim.Clock = 0
	sim.events = NewEventQueue()
	sim.gen = NewGenerators(sim.key)
	sim.doctors = NewDoctorPool(sim.cfg.NumDoctors, sim.cfg.specialtyOf)
	sim.queues = NewSpecialtyQueues()
	sim.triage = make(map[PatientID]clinic.Classification)
	sim.arrivalAt = make(map[PatientID]float64)
	sim.startAt = make(map[PatientID]float64)
	sim.departAt = make(map[PatientID]float64)
	sim.duration = make(map[PatientID]float64)
	sim.serviceOrder = nil
	sim.consultations = nil
	sim.served = 0
}

// Run executes the whole simulation: it schedules every arrival, drains the
// event queue, then samples the minute-by-minute series and reduces the
// statistics. Each call starts from a fresh state, so repeated calls return
// identical results.
//
// An empty patient list aborts the run with ErrNoPatients and an empty,
// non-nil Result.
func (sim *Simulator) Run() (*Result, error) {
	sim.reset()
	if len(sim.cfg.Patients) == 0 {
		logrus.Warnf("Patient list is empty; nothing to simulate")
		return newEmptyResult(sim.key), ErrNoPatients
	}

	logrus.Infof("Starting simulation: rate=%.2f/h doctors=%d dist=%s mean=%.2fmin horizon=%.0fmin pattern=%s seed=%d",
		sim.cfg.ArrivalRate, sim.cfg.NumDoctors, sim.dist, sim.cfg.MeanServiceTime, sim.cfg.Horizon, sim.cfg.ArrivalPattern, sim.key)

	sim.scheduleArrivals()

	for sim.events.Len() > 0 {
		ev := sim.events.PopNext()
		if ev.Timestamp() < sim.Clock {
			panic(fmt.Sprintf("event %s for patient %d at %v is in the past (clock %v)", ev.Kind(), ev.Patient(), ev.Timestamp(), sim.Clock))
		}
		sim.Clock = ev.Timestamp()
		logrus.Debugf("[t=%09.3f] Executing %s for patient %d", sim.Clock, ev.Kind(), ev.Patient())
		ev.Execute(sim)
	}

	res := sim.collect()
	logrus.Infof("[t=%09.3f] Simulation ended: %d arrived, %d served, %d still waiting",
		sim.Clock, res.PatientsArrived, res.PatientsServed, res.StillQueued)
	return res, nil
}

// scheduleArrivals pre-populates the event queue, one arrival per patient
// record, in list order.
func (sim *Simulator) scheduleArrivals() {
	times := sim.arrivals.Generate(sim.gen, len(sim.cfg.Patients), sim.cfg.Horizon)
	for k, t := range times {
		pid := PatientID(k)
		sim.arrivalAt[pid] = t
		sim.events.Schedule(NewArrivalEvent(t, pid))
	}
	logrus.Debugf("Scheduled %d arrivals for %d patient records", len(times), len(sim.cfg.Patients))
}

func (sim *Simulator) handleArrival(pid PatientID, now float64) {
	tri := clinic.Classify(sim.cfg.Patients[pid].Profile())
	sim.triage[pid] = tri

	if idx, ok := sim.doctors.FirstAvailable(tri.Specialty); ok {
		sim.startConsultation(pid, idx, now)
		return
	}
	sim.queues.Enqueue(tri.Specialty, pid)
	logrus.Debugf("Patient %d waits for %s (%d in queue)", pid, tri.Specialty, sim.queues.Len(tri.Specialty))
}

func (sim *Simulator) handleDeparture(pid PatientID, idx int, now float64) {
	start, ok := sim.startAt[pid]
	if !ok {
		panic(fmt.Sprintf("departure for patient %d who was never served", pid))
	}
	if now < start {
		panic(fmt.Sprintf("patient %d departs at %v before starting at %v", pid, now, start))
	}
	if _, dup := sim.departAt[pid]; dup {
		panic(fmt.Sprintf("patient %d departs twice", pid))
	}
	sim.departAt[pid] = now
	sim.served++

	if !sim.doctors.Release(idx, pid, now) {
		logrus.Warnf("Departure of patient %d at %.6f does not match doctor %d; doctor left unchanged", pid, now, idx)
		return
	}

	next, from, ok := sim.queues.NextFor(sim.doctors.Doctor(idx).Specialty)
	if !ok {
		return
	}
	logrus.Debugf("Doctor %d takes patient %d from the %s queue", idx, next, from)
	sim.startConsultation(next, idx, now)
}

// startConsultation puts pid with doctor idx at time now and schedules the
// matching departure.
func (sim *Simulator) startConsultation(pid PatientID, idx int, now float64) {
	arrived, ok := sim.arrivalAt[pid]
	if !ok || now < arrived {
		panic(fmt.Sprintf("patient %d served at %v before arriving", pid, now))
	}
	if _, dup := sim.startAt[pid]; dup {
		panic(fmt.Sprintf("patient %d served twice", pid))
	}

	dur := sim.drawServiceTime()
	sim.doctors.Occupy(idx, pid, now, dur)
	sim.startAt[pid] = now
	sim.duration[pid] = dur
	sim.serviceOrder = append(sim.serviceOrder, pid)
	sim.events.Schedule(NewDepartureEvent(now+dur, pid, idx))

	p := sim.cfg.Patients[pid]
	tri := sim.triage[pid]
	sim.consultations = append(sim.consultations, Consultation{
		StartMinute:     int(math.Floor(now)),
		Start:           now,
		Duration:        dur,
		Doctor:          idx,
		DoctorSpecialty: sim.doctors.Doctor(idx).Specialty,
		Patient:         pid,
		PatientName:     p.DisplayName(),
		Specialty:       tri.Specialty,
		Note:            tri.Note(),
	})
}

// drawServiceTime draws a consultation length, substituting the configured
// mean for non-positive or non-finite draws.
func (sim *Simulator) drawServiceTime() float64 {
	mean := sim.cfg.MeanServiceTime
	d, err := sim.gen.NextServiceTime(mean, sim.dist)
	if err != nil {
		panic(err)
	}
	if !(d > 0) || math.IsInf(d, 0) {
		logrus.Warnf("Service time draw %v is not positive; using mean %.2f", d, mean)
		return mean
	}
	return d
}
