// Reduces per-patient timestamps and per-doctor counters into the series
// and summary statistics returned by Run.

package sim

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/clinic-sim/clinic-sim/sim/clinic"
	"github.com/clinic-sim/clinic-sim/sim/stats"
)

// Consultation is one entry of the consultation log, enough for a
// presentation layer to show who is with which doctor at minute m.
type Consultation struct {
	StartMinute     int              `json:"start_minute"`
	Start           float64          `json:"start"`
	Duration        float64          `json:"duration"`
	Doctor          int              `json:"doctor"`
	DoctorSpecialty clinic.Specialty `json:"doctor_specialty"`
	Patient         PatientID        `json:"patient"`
	PatientName     string           `json:"patient_name"`
	Specialty       clinic.Specialty `json:"specialty"`
	Note            string           `json:"note"`
}

// DoctorStats summarizes one doctor's run.
type DoctorStats struct {
	ID               int              `json:"id"`
	Specialty        clinic.Specialty `json:"specialty"`
	Consultations    int              `json:"consultations"`
	BusyTime         float64          `json:"busy_time"`
	OccupancyPct     float64          `json:"occupancy_pct"`
	MeanConsultation float64          `json:"mean_consultation"`
	P90Consultation  float64          `json:"p90_consultation"`
}

// Summary holds the global statistics of a run.
type Summary struct {
	MeanWait             float64 `json:"mean_wait"`
	WaitVariance         float64 `json:"wait_variance"`
	WaitP95              float64 `json:"wait_p95"`
	MeanConsultation     float64 `json:"mean_consultation"`
	ConsultationVariance float64 `json:"consultation_variance"`
	MeanTimeInClinic     float64 `json:"mean_time_in_clinic"`
	MeanQueueLength      float64 `json:"mean_queue_length"`
	MaxQueueLength       int     `json:"max_queue_length"`
	MeanOccupancy        float64 `json:"mean_occupancy"`
	PatientsServed       int     `json:"patients_served"`
}

// Result is everything a run produces. Per-patient series are ordered by
// service start.
type Result struct {
	Seed              int64          `json:"seed"`
	WaitTimes         []float64      `json:"wait_times"`
	ConsultationTimes []float64      `json:"consultation_times"`
	TimesInClinic     []float64      `json:"times_in_clinic"`
	QueueLengths      []int          `json:"queue_lengths"`
	Occupancy         []float64      `json:"occupancy"`
	Consultations     []Consultation `json:"consultations"`
	Doctors           []DoctorStats  `json:"doctors"`
	Summary           Summary        `json:"summary"`
	Districts         map[string]int `json:"districts"`
	PatientsArrived   int            `json:"patients_arrived"`
	PatientsServed    int            `json:"patients_served"`
	StillQueued       int            `json:"still_queued"`
}

// unknownDistrict tallies patients whose record has no district.
const unknownDistrict = "unknown"

func newEmptyResult(key SimulationKey) *Result {
	return &Result{
		Seed:              int64(key),
		WaitTimes:         []float64{},
		ConsultationTimes: []float64{},
		TimesInClinic:     []float64{},
		QueueLengths:      []int{},
		Occupancy:         []float64{},
		Consultations:     []Consultation{},
		Doctors:           []DoctorStats{},
		Districts:         map[string]int{},
	}
}

// collect builds the Result once the event queue has drained.
func (sim *Simulator) collect() *Result {
	res := newEmptyResult(sim.key)
	res.PatientsArrived = len(sim.arrivalAt)
	res.PatientsServed = sim.served
	res.StillQueued = sim.queues.Total()
	res.Consultations = append(res.Consultations, sim.consultations...)

	for _, pid := range sim.serviceOrder {
		arrived, start, dur := sim.arrivalAt[pid], sim.startAt[pid], sim.duration[pid]
		wait := math.Max(0, start-arrived)
		total := wait + dur
		if dep, ok := sim.departAt[pid]; ok {
			total = dep - arrived
		} else {
			logrus.Warnf("Patient %d has no recorded departure; using wait+duration", pid)
		}
		res.WaitTimes = append(res.WaitTimes, wait)
		res.ConsultationTimes = append(res.ConsultationTimes, dur)
		res.TimesInClinic = append(res.TimesInClinic, total)
	}

	arrivals := make([]float64, 0, len(sim.arrivalAt))
	for pid, t := range sim.arrivalAt {
		arrivals = append(arrivals, t)
		district := sim.cfg.Patients[pid].District
		if district == "" {
			district = unknownDistrict
		}
		res.Districts[district]++
	}
	starts := make([]float64, 0, len(sim.startAt))
	for _, t := range sim.startAt {
		starts = append(starts, t)
	}

	minutes := minuteMarks(sim.cfg.Horizon)
	res.QueueLengths = SampleQueueLengths(arrivals, starts, minutes)
	res.Occupancy = SampleOccupancy(sim.consultations, sim.doctors.Len(), minutes)
	res.Doctors = sim.doctorStats()
	res.Summary = summarize(res)
	return res
}

func (sim *Simulator) doctorStats() []DoctorStats {
	horizon := sim.cfg.Horizon
	clipped := make([]float64, sim.doctors.Len())
	for _, c := range sim.consultations {
		lo := math.Max(0, c.Start)
		hi := math.Min(horizon, c.Start+c.Duration)
		if hi > lo {
			clipped[c.Doctor] += hi - lo
		}
	}

	out := make([]DoctorStats, sim.doctors.Len())
	for i := range out {
		d := sim.doctors.Doctor(i)
		out[i] = DoctorStats{
			ID:               d.ID,
			Specialty:        d.Specialty,
			Consultations:    d.Consultations,
			BusyTime:         d.BusyTime,
			OccupancyPct:     100 * clipped[i] / horizon,
			MeanConsultation: stats.Mean(d.Durations),
			P90Consultation:  stats.Percentile(d.Durations, 90),
		}
	}
	return out
}

func summarize(res *Result) Summary {
	queue := stats.Float64s(res.QueueLengths)
	return Summary{
		MeanWait:             stats.Mean(res.WaitTimes),
		WaitVariance:         stats.Variance(res.WaitTimes),
		WaitP95:              stats.Percentile(res.WaitTimes, 95),
		MeanConsultation:     stats.Mean(res.ConsultationTimes),
		ConsultationVariance: stats.Variance(res.ConsultationTimes),
		MeanTimeInClinic:     stats.Mean(res.TimesInClinic),
		MeanQueueLength:      stats.Mean(queue),
		MaxQueueLength:       int(stats.Max(queue)),
		MeanOccupancy:        stats.Mean(res.Occupancy),
		PatientsServed:       res.PatientsServed,
	}
}

// Print writes a human-readable report of the run.
func (r *Result) Print(w io.Writer) {
	s := r.Summary
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Seed                 : %d\n", r.Seed)
	fmt.Fprintf(w, "Patients Arrived     : %d\n", r.PatientsArrived)
	fmt.Fprintf(w, "Patients Served      : %d\n", s.PatientsServed)
	fmt.Fprintf(w, "Still Waiting        : %d\n", r.StillQueued)
	if s.PatientsServed > 0 {
		fmt.Fprintf(w, "Mean Wait            : %.2f min (var %.2f, p95 %.2f)\n", s.MeanWait, s.WaitVariance, s.WaitP95)
		fmt.Fprintf(w, "Mean Consultation    : %.2f min (var %.2f)\n", s.MeanConsultation, s.ConsultationVariance)
		fmt.Fprintf(w, "Mean Time in Clinic  : %.2f min\n", s.MeanTimeInClinic)
	}
	fmt.Fprintf(w, "Queue Length         : mean %.2f, max %d\n", s.MeanQueueLength, s.MaxQueueLength)
	fmt.Fprintf(w, "Mean Occupancy       : %.2f%%\n", s.MeanOccupancy)

	if len(r.Doctors) > 0 {
		fmt.Fprintln(w, "=== Doctors ===")
		for _, d := range r.Doctors {
			fmt.Fprintf(w, "Doctor %d (%s): consultations=%d busy=%.1fmin occupancy=%.1f%% mean=%.2f p90=%.2f\n",
				d.ID, d.Specialty, d.Consultations, d.BusyTime, d.OccupancyPct, d.MeanConsultation, d.P90Consultation)
		}
	}

	if len(r.Districts) > 0 {
		fmt.Fprintln(w, "=== Districts ===")
		names := make([]string, 0, len(r.Districts))
		for name := range r.Districts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "%-20s : %d\n", name, r.Districts[name])
		}
	}
}
