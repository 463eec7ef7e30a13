package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/clinic-sim/clinic-sim/sim"
)

func runDefaultScenario(t *testing.T, sc *Scenario) *sim.Result {
	t.Helper()
	cfg, err := sc.ToConfig(SyntheticPatients(sc.PatientLimit, 1))
	require.NoError(t, err)
	s, err := sim.NewSimulator(cfg)
	require.NoError(t, err)
	res, err := s.Run()
	require.NoError(t, err)
	return res
}

func TestRunReport_SaveWritesJSON(t *testing.T) {
	// GIVEN a finished run
	sc := DefaultScenario()
	s := int64(3)
	sc.Seed = &s
	res := runDefaultScenario(t, sc)
	started := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	// WHEN its report is saved
	report := NewRunReport(sc, res, started, 1500*time.Millisecond)
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, report.Save(path))

	// THEN the file round-trips the identifiers and the series
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	_, err = uuid.Parse(decoded["run_id"].(string))
	assert.NoError(t, err, "run_id must be a UUID")
	assert.Equal(t, float64(1500), decoded["wall_clock_ms"])
	assert.Equal(t, "2024-05-01T09:00:00Z", decoded["started_at"])

	scenario := decoded["scenario"].(map[string]any)
	assert.Equal(t, float64(10), scenario["lambda_rate"])
	assert.Equal(t, float64(3), scenario["seed"])

	result := decoded["result"].(map[string]any)
	assert.Equal(t, float64(3), result["seed"])
	assert.Len(t, result["queue_lengths"], 120)
	assert.Contains(t, result, "summary")
}

func TestNewRunReport_UniqueRunIDs(t *testing.T) {
	res := &sim.Result{}
	a := NewRunReport(DefaultScenario(), res, time.Now(), 0)
	b := NewRunReport(DefaultScenario(), res, time.Now(), 0)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunReport_SaveToMissingDirectoryFails(t *testing.T) {
	report := NewRunReport(DefaultScenario(), &sim.Result{}, time.Now(), 0)
	err := report.Save(filepath.Join(t.TempDir(), "no", "such", "dir", "r.json"))
	assert.Error(t, err)
}
