package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/clinic-sim/clinic-sim/sim"
	"github.com/clinic-sim/clinic-sim/sim/clinic"
)

func TestLoadScenario_AllKeys(t *testing.T) {
	// GIVEN a scenario file setting every tuning key
	sc, err := LoadScenario("testdata/scenario.yaml")
	require.NoError(t, err)

	// THEN each key lands in its field
	assert.Equal(t, 18.0, sc.LambdaRate)
	assert.Equal(t, 4, sc.NumDoctors)
	assert.Equal(t, "normal", sc.ServiceDistribution)
	assert.Equal(t, 12.0, sc.MeanServiceTime)
	assert.Equal(t, 240.0, sc.SimulationTime)
	require.NotNil(t, sc.Seed)
	assert.Equal(t, int64(42), *sc.Seed)
	assert.Equal(t, "nonhomogeneous", sc.ArrivalPattern)
	assert.Equal(t, []sim.RateBlock{{Start: 0, End: 120, RatePerHour: 12}, {Start: 120, End: 240, RatePerHour: 24}}, sc.RateBlocks)
	assert.Equal(t, 50, sc.PatientLimit)
	assert.Equal(t, map[int]string{0: "cardiologia", 1: "dermatology"}, sc.DoctorSpecialties)
}

func TestLoadScenario_UnknownKeyRejected(t *testing.T) {
	// num_doctor (missing s) must not be silently ignored
	_, err := LoadScenario("testdata/typo.yaml")
	assert.Error(t, err)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestParseScenario_OmittedKeysKeepDefaults(t *testing.T) {
	sc, err := parseScenario([]byte("num_doctors: 7\n"))
	require.NoError(t, err)

	def := DefaultScenario()
	assert.Equal(t, 7, sc.NumDoctors)
	assert.Equal(t, def.LambdaRate, sc.LambdaRate)
	assert.Equal(t, def.MeanServiceTime, sc.MeanServiceTime)
	assert.Equal(t, def.PatientLimit, sc.PatientLimit)
	assert.Nil(t, sc.Seed)
}

func TestParseScenario_EmptyDocumentIsDefault(t *testing.T) {
	sc, err := parseScenario(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultScenario(), sc)
}

func TestScenarioToConfig(t *testing.T) {
	sc, err := LoadScenario("testdata/scenario.yaml")
	require.NoError(t, err)
	patients := SyntheticPatients(3, 1)

	cfg, err := sc.ToConfig(patients)
	require.NoError(t, err)

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, sim.PatternNonHomogeneous, cfg.ArrivalPattern)
	assert.Equal(t, 240.0, cfg.Horizon)
	assert.Equal(t, map[int]clinic.Specialty{0: clinic.Cardiology, 1: clinic.Dermatology}, cfg.DoctorSpecialties)
	assert.Len(t, cfg.Patients, 3)
}

func TestScenarioToConfig_UnknownSpecialty(t *testing.T) {
	sc := DefaultScenario()
	sc.DoctorSpecialties = map[int]string{0: "astrologia"}

	_, err := sc.ToConfig(nil)
	assert.True(t, errors.Is(err, sim.ErrInvalidConfiguration))
}

func TestDefaultScenario_MatchesEngineDefaults(t *testing.T) {
	cfg, err := DefaultScenario().ToConfig(nil)
	require.NoError(t, err)

	want := sim.DefaultConfig()
	assert.Equal(t, want.ArrivalRate, cfg.ArrivalRate)
	assert.Equal(t, want.NumDoctors, cfg.NumDoctors)
	assert.Equal(t, want.Distribution, cfg.Distribution)
	assert.Equal(t, want.MeanServiceTime, cfg.MeanServiceTime)
	assert.Equal(t, want.Horizon, cfg.Horizon)
	assert.Equal(t, want.ArrivalPattern, cfg.ArrivalPattern)
}
