package sim

import (
	"fmt"
	"math"

	"github.com/clinic-sim/clinic-sim/sim/clinic"
)

// Tolerances for checking a departure against the doctor's recorded
// busy-until time.
const (
	busyUntilAbsTolerance = 1e-6
	busyUntilRelTolerance = 1e-9
)

// Doctor is one member of the pool. Busy holds iff the doctor has exactly
// one consultation in progress, which ends at BusyUntil.
type Doctor struct {
	ID            int
	Specialty     clinic.Specialty
	Busy          bool
	BusyUntil     float64
	BusyTime      float64   // cumulative consultation minutes
	Consultations int       // consultations started
	Durations     []float64 // one entry per consultation, in start order
	patient       PatientID
}

// DoctorPool holds a fixed set of doctors for one run.
type DoctorPool struct {
	doctors []*Doctor
}

// NewDoctorPool creates n free doctors; specialtyOf gives each its tag.
func NewDoctorPool(n int, specialtyOf func(int) clinic.Specialty) *DoctorPool {
	p := &DoctorPool{doctors: make([]*Doctor, n)}
	for i := range p.doctors {
		p.doctors[i] = &Doctor{ID: i, Specialty: specialtyOf(i)}
	}
	return p
}

// Len returns the number of doctors.
func (p *DoctorPool) Len() int {
	return len(p.doctors)
}

// Doctor returns doctor idx.
func (p *DoctorPool) Doctor(idx int) *Doctor {
	return p.doctors[idx]
}

// FirstAvailable scans doctors in ascending index order and returns the
// first free doctor whose specialty matches required; failing that, the
// first free general doctor. The ascending-index tie-break is part of the
// observable contract.
func (p *DoctorPool) FirstAvailable(required clinic.Specialty) (int, bool) {
	fallback := -1
	for i, d := range p.doctors {
		if d.Busy {
			continue
		}
		if d.Specialty == required {
			return i, true
		}
		if fallback < 0 && d.Specialty == clinic.General {
			fallback = i
		}
	}
	return fallback, fallback >= 0
}

// Occupy starts a consultation of duration dur at time now.
func (p *DoctorPool) Occupy(idx int, patient PatientID, now, dur float64) {
	d := p.doctors[idx]
	if d.Busy {
		panic(fmt.Sprintf("DoctorPool.Occupy: doctor %d already busy with patient %d", idx, d.patient))
	}
	d.Busy = true
	d.BusyUntil = now + dur
	d.BusyTime += dur
	d.Consultations++
	d.Durations = append(d.Durations, dur)
	d.patient = patient
}

// Release frees doctor idx at time now. It returns false, leaving the doctor
// untouched, when the doctor is not busy with that patient or its busy-until
// time disagrees with now beyond the tolerance.
func (p *DoctorPool) Release(idx int, patient PatientID, now float64) bool {
	if idx < 0 || idx >= len(p.doctors) {
		return false
	}
	d := p.doctors[idx]
	if !d.Busy || d.patient != patient || !closeEnough(d.BusyUntil, now) {
		return false
	}
	d.Busy = false
	return true
}

// BusyCount returns how many doctors are in a consultation.
func (p *DoctorPool) BusyCount() int {
	n := 0
	for _, d := range p.doctors {
		if d.Busy {
			n++
		}
	}
	return n
}

func closeEnough(a, b float64) bool {
	diff := math.Abs(a - b)
	return diff <= busyUntilAbsTolerance || diff <= busyUntilRelTolerance*math.Max(math.Abs(a), math.Abs(b))
}
