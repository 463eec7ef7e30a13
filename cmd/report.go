package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	sim "github.com/clinic-sim/clinic-sim/sim"
)

// RunReport is the JSON document written by --results-path.
type RunReport struct {
	RunID       string      `json:"run_id"`
	StartedAt   time.Time   `json:"started_at"`
	WallClockMs int64       `json:"wall_clock_ms"`
	Scenario    *Scenario   `json:"scenario"`
	Result      *sim.Result `json:"result"`
}

// NewRunReport stamps a result with a fresh run identifier.
func NewRunReport(sc *Scenario, res *sim.Result, started time.Time, elapsed time.Duration) *RunReport {
	return &RunReport{
		RunID:       uuid.NewString(),
		StartedAt:   started.UTC(),
		WallClockMs: elapsed.Milliseconds(),
		Scenario:    sc,
		Result:      res,
	}
}

// Save writes the report as indented JSON.
func (r *RunReport) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
