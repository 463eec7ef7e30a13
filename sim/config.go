package sim

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/clinic-sim/clinic-sim/sim/clinic"
)

var (
	// ErrInvalidConfiguration is wrapped by every validation failure.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrNoPatients is returned by Run when the patient list is empty.
	ErrNoPatients = errors.New("no patients to simulate")
)

// Config is everything a run needs. The patient list and specialty map are
// treated as read-only snapshots for the lifetime of the Simulator.
type Config struct {
	ArrivalRate     float64 // patients per hour, >= 0
	NumDoctors      int     // >= 0
	Distribution    string  // exponential | normal | uniform | constant
	MeanServiceTime float64 // minutes, > 0
	Horizon         float64 // minutes, > 0
	Seed            *int64  // nil draws a seed from the wall clock
	ArrivalPattern  ArrivalPattern
	RateBlocks      []RateBlock // nonhomogeneous only; nil selects DefaultRateProfile
	ArrivalTimes    []float64   // trace only
	Patients        []Patient
	// DoctorSpecialties maps doctor index to specialty; unassigned indices are General.
	DoctorSpecialties map[int]clinic.Specialty
}

// DefaultConfig mirrors the clinic's stock scenario.
func DefaultConfig() Config {
	return Config{
		ArrivalRate:     10,
		NumDoctors:      3,
		Distribution:    DistExponential.String(),
		MeanServiceTime: 15,
		Horizon:         120,
		ArrivalPattern:  PatternHomogeneous,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// Validate checks every recognized option. The patient list is not checked
// here: an empty list is a run-time condition (ErrNoPatients).
func (c *Config) Validate() error {
	if err := validateFinite("arrival rate", c.ArrivalRate); err != nil {
		return err
	}
	if c.ArrivalRate < 0 {
		return invalid("arrival rate must be >= 0, got %f", c.ArrivalRate)
	}
	if c.NumDoctors < 0 {
		return invalid("doctor count must be >= 0, got %d", c.NumDoctors)
	}
	if _, err := ParseServiceDistribution(c.Distribution); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if err := validateFinite("mean service time", c.MeanServiceTime); err != nil {
		return err
	}
	if c.MeanServiceTime <= 0 {
		return invalid("mean service time must be > 0, got %f", c.MeanServiceTime)
	}
	if err := validateFinite("horizon", c.Horizon); err != nil {
		return err
	}
	if c.Horizon <= 0 {
		return invalid("horizon must be > 0, got %f", c.Horizon)
	}
	if err := c.validateArrivals(); err != nil {
		return err
	}
	for idx, sp := range c.DoctorSpecialties {
		if idx < 0 || idx >= c.NumDoctors {
			return invalid("specialty assigned to doctor %d, but only %d doctors exist", idx, c.NumDoctors)
		}
		if sp != "" && !sp.IsValid() {
			return invalid("doctor %d: unknown specialty %q", idx, sp)
		}
	}
	return nil
}

func (c *Config) validateArrivals() error {
	switch c.ArrivalPattern {
	case PatternHomogeneous, "":
		return nil
	case PatternNonHomogeneous:
		blocks := append([]RateBlock(nil), c.RateBlocks...)
		for i, b := range blocks {
			for _, v := range []float64{b.Start, b.End, b.RatePerHour} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return invalid("rate block %d must be finite", i)
				}
			}
			if b.Start < 0 {
				return invalid("rate block %d starts before 0", i)
			}
		}
		sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Start < blocks[j].Start })
		for i := 1; i < len(blocks); i++ {
			prev, cur := blocks[i-1], blocks[i]
			if prev.End > prev.Start && cur.End > cur.Start && cur.Start < prev.End {
				return invalid("rate blocks [%g,%g) and [%g,%g) overlap", prev.Start, prev.End, cur.Start, cur.End)
			}
		}
		return nil
	case PatternTrace:
		for i, t := range c.ArrivalTimes {
			if math.IsNaN(t) || t < 0 {
				return invalid("arrival time %d must be >= 0, got %f", i, t)
			}
			if i > 0 && t < c.ArrivalTimes[i-1] {
				return invalid("arrival times must be non-decreasing (index %d)", i)
			}
		}
		return nil
	default:
		return invalid("unknown arrival pattern %q; valid: homogeneous, nonhomogeneous, trace", c.ArrivalPattern)
	}
}

func validateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid("%s must be a finite number, got %f", name, v)
	}
	return nil
}

// specialtyOf returns the configured specialty of doctor idx.
func (c *Config) specialtyOf(idx int) clinic.Specialty {
	if sp, ok := c.DoctorSpecialties[idx]; ok && sp != "" {
		return sp
	}
	return clinic.General
}
