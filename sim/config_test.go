package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinic-sim/clinic-sim/sim/clinic"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10.0, cfg.ArrivalRate)
	assert.Equal(t, 3, cfg.NumDoctors)
	assert.Equal(t, "exponential", cfg.Distribution)
	assert.Equal(t, 15.0, cfg.MeanServiceTime)
	assert.Equal(t, 120.0, cfg.Horizon)
}

func TestConfigValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative rate", func(c *Config) { c.ArrivalRate = -1 }},
		{"NaN rate", func(c *Config) { c.ArrivalRate = math.NaN() }},
		{"negative doctors", func(c *Config) { c.NumDoctors = -2 }},
		{"unknown distribution", func(c *Config) { c.Distribution = "lognormal" }},
		{"zero mean", func(c *Config) { c.MeanServiceTime = 0 }},
		{"negative mean", func(c *Config) { c.MeanServiceTime = -5 }},
		{"zero horizon", func(c *Config) { c.Horizon = 0 }},
		{"infinite horizon", func(c *Config) { c.Horizon = math.Inf(1) }},
		{"unknown pattern", func(c *Config) { c.ArrivalPattern = "bursty" }},
		{"overlapping blocks", func(c *Config) {
			c.ArrivalPattern = PatternNonHomogeneous
			c.RateBlocks = []RateBlock{{Start: 30, End: 90, RatePerHour: 5}, {Start: 0, End: 60, RatePerHour: 5}}
		}},
		{"block before zero", func(c *Config) {
			c.ArrivalPattern = PatternNonHomogeneous
			c.RateBlocks = []RateBlock{{Start: -10, End: 60, RatePerHour: 5}}
		}},
		{"decreasing trace", func(c *Config) {
			c.ArrivalPattern = PatternTrace
			c.ArrivalTimes = []float64{0, 5, 3}
		}},
		{"negative trace time", func(c *Config) {
			c.ArrivalPattern = PatternTrace
			c.ArrivalTimes = []float64{-1}
		}},
		{"specialty index out of range", func(c *Config) {
			c.DoctorSpecialties = map[int]clinic.Specialty{3: clinic.Cardiology}
		}},
		{"unknown specialty", func(c *Config) {
			c.DoctorSpecialties = map[int]clinic.Specialty{0: "astrology"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), "got %v", err)
		})
	}
}

func TestConfigValidate_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rate", func(c *Config) { c.ArrivalRate = 0 }},
		{"zero doctors", func(c *Config) { c.NumDoctors = 0 }},
		{"distribution alias", func(c *Config) { c.Distribution = "Exponencial" }},
		{"fractional horizon", func(c *Config) { c.Horizon = 12.5 }},
		{"adjacent blocks", func(c *Config) {
			c.ArrivalPattern = PatternNonHomogeneous
			c.RateBlocks = []RateBlock{{Start: 60, End: 120, RatePerHour: 5}, {Start: 0, End: 60, RatePerHour: 20}}
		}},
		{"degenerate block ignored", func(c *Config) {
			c.ArrivalPattern = PatternNonHomogeneous
			c.RateBlocks = []RateBlock{{Start: 0, End: 60, RatePerHour: 5}, {Start: 30, End: 30, RatePerHour: 50}}
		}},
		{"trace with ties", func(c *Config) {
			c.ArrivalPattern = PatternTrace
			c.ArrivalTimes = []float64{0, 0, 4.5}
		}},
		{"specialists", func(c *Config) {
			c.DoctorSpecialties = map[int]clinic.Specialty{0: clinic.Cardiology, 2: clinic.Ophthalmology, 1: ""}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestConfig_SpecialtyOf_DefaultsToGeneral(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DoctorSpecialties = map[int]clinic.Specialty{1: clinic.Neurology, 2: ""}

	assert.Equal(t, clinic.General, cfg.specialtyOf(0))
	assert.Equal(t, clinic.Neurology, cfg.specialtyOf(1))
	assert.Equal(t, clinic.General, cfg.specialtyOf(2))
}
