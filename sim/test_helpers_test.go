package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clinic-sim/clinic-sim/sim/clinic"
)

// sampleDescriptions covers every specialty plus a few general complaints.
var sampleDescriptions = []string{
	"gripe", "arritmia", "acne", "enxaqueca", "fratura do pulso",
	"ansiedade", "asma", "gastrite", "diabetes tipo 2", "glaucoma",
	"febre", "dor no peito", "check-up anual",
}

func seedPtr(v int64) *int64 { return &v }

// testPatients builds one anonymous patient per description.
func testPatients(descriptions ...string) []Patient {
	out := make([]Patient, len(descriptions))
	for i, d := range descriptions {
		out[i] = Patient{ID: fmt.Sprintf("p%d", i), Description: d}
	}
	return out
}

// newTestConfig returns a trace-driven config with constant 10-minute
// consultations and general doctors.
func newTestConfig(t *testing.T, doctors int, horizon float64, arrivals []float64, patients []Patient) Config {
	t.Helper()
	return Config{
		ArrivalRate:     10,
		NumDoctors:      doctors,
		Distribution:    "constant",
		MeanServiceTime: 10,
		Horizon:         horizon,
		Seed:            seedPtr(7),
		ArrivalPattern:  PatternTrace,
		ArrivalTimes:    arrivals,
		Patients:        patients,
	}
}

// busyClinicConfig is an overloaded clinic: 30 patients/hour against three
// doctors with a 15-minute mean consultation.
func busyClinicConfig(seed int64) Config {
	patients := make([]Patient, 200)
	for i := range patients {
		patients[i] = Patient{
			ID:          fmt.Sprintf("p%d", i),
			Age:         20 + i%70,
			Description: sampleDescriptions[i%len(sampleDescriptions)],
			District:    []string{"Lisboa", "Porto", "Braga", ""}[i%4],
		}
	}
	return Config{
		ArrivalRate:       30,
		NumDoctors:        3,
		Distribution:      "exponential",
		MeanServiceTime:   15,
		Horizon:           240,
		Seed:              seedPtr(seed),
		ArrivalPattern:    PatternHomogeneous,
		Patients:          patients,
		DoctorSpecialties: map[int]clinic.Specialty{0: clinic.Cardiology},
	}
}

func mustRun(t *testing.T, cfg Config) *Result {
	t.Helper()
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	res, err := s.Run()
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}
