package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/clinic-sim/clinic-sim/sim"
	"github.com/clinic-sim/clinic-sim/sim/clinic"
)

// defaultPatientLimit caps how many dataset records become patients.
const defaultPatientLimit = 200

// Scenario is the YAML form of a simulation run.
// All keys must be listed here to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	LambdaRate          float64         `yaml:"lambda_rate" json:"lambda_rate"`
	NumDoctors          int             `yaml:"num_doctors" json:"num_doctors"`
	ServiceDistribution string          `yaml:"service_distribution" json:"service_distribution"`
	MeanServiceTime     float64         `yaml:"mean_service_time" json:"mean_service_time"`
	SimulationTime      float64         `yaml:"simulation_time" json:"simulation_time"`
	Seed                *int64          `yaml:"seed,omitempty" json:"seed,omitempty"`
	ArrivalPattern      string          `yaml:"arrival_pattern" json:"arrival_pattern"`
	RateBlocks          []sim.RateBlock `yaml:"rate_blocks,omitempty" json:"rate_blocks,omitempty"`
	ArrivalTimes        []float64       `yaml:"arrival_times,omitempty" json:"arrival_times,omitempty"`
	DatasetFile         string          `yaml:"dataset_file,omitempty" json:"dataset_file,omitempty"`
	PatientLimit        int             `yaml:"patient_limit" json:"patient_limit"`
	DoctorSpecialties   map[int]string  `yaml:"doctor_specialties,omitempty" json:"doctor_specialties,omitempty"`
}

// DefaultScenario returns the stock clinic scenario.
func DefaultScenario() *Scenario {
	def := sim.DefaultConfig()
	return &Scenario{
		LambdaRate:          def.ArrivalRate,
		NumDoctors:          def.NumDoctors,
		ServiceDistribution: def.Distribution,
		MeanServiceTime:     def.MeanServiceTime,
		SimulationTime:      def.Horizon,
		ArrivalPattern:      string(def.ArrivalPattern),
		PatientLimit:        defaultPatientLimit,
	}
}

// LoadScenario reads a scenario file on top of DefaultScenario, so keys the
// file omits keep their defaults. Unknown keys are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*Scenario, error) {
	sc := DefaultScenario()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	return sc, nil
}

// ToConfig turns the scenario into a sim.Config for the given patients.
func (sc *Scenario) ToConfig(patients []sim.Patient) (sim.Config, error) {
	var specialties map[int]clinic.Specialty
	if len(sc.DoctorSpecialties) > 0 {
		specialties = make(map[int]clinic.Specialty, len(sc.DoctorSpecialties))
		for idx, tag := range sc.DoctorSpecialties {
			sp, err := clinic.ParseSpecialty(tag)
			if err != nil {
				return sim.Config{}, fmt.Errorf("%w: doctor %d: %v", sim.ErrInvalidConfiguration, idx, err)
			}
			specialties[idx] = sp
		}
	}
	return sim.Config{
		ArrivalRate:       sc.LambdaRate,
		NumDoctors:        sc.NumDoctors,
		Distribution:      sc.ServiceDistribution,
		MeanServiceTime:   sc.MeanServiceTime,
		Horizon:           sc.SimulationTime,
		Seed:              sc.Seed,
		ArrivalPattern:    sim.ArrivalPattern(sc.ArrivalPattern),
		RateBlocks:        sc.RateBlocks,
		ArrivalTimes:      sc.ArrivalTimes,
		Patients:          patients,
		DoctorSpecialties: specialties,
	}, nil
}
