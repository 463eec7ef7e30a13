package cmd

import (
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/clinic-sim/clinic-sim/sim"
)

var (
	// CLI flags for the scenario; each overrides the YAML value only when set
	configPath      string  // Scenario YAML file
	seed            int64   // Seed for arrivals and consultation lengths
	lambdaRate      float64 // Patient arrivals per hour
	numDoctors      int     // Number of doctors
	distribution    string  // Consultation length distribution
	meanServiceTime float64 // Mean consultation length (minutes)
	horizon         float64 // Simulated time (minutes)
	arrivalPattern  string  // homogeneous, nonhomogeneous or trace
	datasetFile     string  // People dataset (JSON)
	patientLimit    int     // Max patients drawn from the dataset

	logLevel    string // Log verbosity level
	resultsPath string // File to save the JSON run report to
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "clinic-sim",
	Short: "Discrete-event simulator for a medical clinic",
}

// runCmd executes one scenario and prints its metrics
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the clinic simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		sc := resolveScenario(cmd)
		patients := resolvePatients(sc)

		cfg, err := sc.ToConfig(patients)
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}

		startTime := time.Now()
		res, err := s.Run()
		if errors.Is(err, sim.ErrNoPatients) {
			logrus.Warnf("No patients to simulate; check the dataset")
		} else if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		res.Print(os.Stdout)

		if resultsPath != "" {
			report := NewRunReport(sc, res, startTime, time.Since(startTime))
			if err := report.Save(resultsPath); err != nil {
				logrus.Fatalf("Saving results: %v", err)
			}
			logrus.Infof("Run %s saved to %s", report.RunID, resultsPath)
		}
		logrus.Info("Simulation complete.")
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func newSeed() int64 {
	return time.Now().UnixNano()
}

// resolveScenario loads --config (or the defaults) and applies every flag
// the user set explicitly.
func resolveScenario(cmd *cobra.Command) *Scenario {
	sc := DefaultScenario()
	if configPath != "" {
		loaded, err := LoadScenario(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		sc = loaded
	}
	applyFlagOverrides(cmd, sc)
	return sc
}

func applyFlagOverrides(cmd *cobra.Command, sc *Scenario) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		s := seed
		sc.Seed = &s
	}
	if flags.Changed("lambda-rate") {
		sc.LambdaRate = lambdaRate
	}
	if flags.Changed("num-doctors") {
		sc.NumDoctors = numDoctors
	}
	if flags.Changed("distribution") {
		sc.ServiceDistribution = distribution
	}
	if flags.Changed("mean-service-time") {
		sc.MeanServiceTime = meanServiceTime
	}
	if flags.Changed("horizon") {
		sc.SimulationTime = horizon
	}
	if flags.Changed("arrival-pattern") {
		sc.ArrivalPattern = arrivalPattern
	}
	if flags.Changed("dataset") {
		sc.DatasetFile = datasetFile
	}
	if flags.Changed("patient-limit") {
		sc.PatientLimit = patientLimit
	}
}

// resolvePatients loads the scenario's dataset, or makes synthetic walk-ins
// when none is configured.
func resolvePatients(sc *Scenario) []sim.Patient {
	patientSeed := newSeed()
	if sc.Seed != nil {
		patientSeed = *sc.Seed
	}
	if sc.DatasetFile == "" {
		limit := sc.PatientLimit
		if limit <= 0 {
			limit = defaultPatientLimit
		}
		return SyntheticPatients(limit, patientSeed)
	}
	patients, err := LoadPatients(sc.DatasetFile, sc.PatientLimit, rand.New(rand.NewSource(patientSeed)))
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	return patients
}

// registerScenarioFlags attaches the scenario flags shared by run and sweep.
func registerScenarioFlags(cmd *cobra.Command) {
	def := DefaultScenario()
	cmd.Flags().StringVar(&configPath, "config", "", "Scenario YAML file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for arrivals and consultation lengths (default: wall clock)")
	cmd.Flags().Float64Var(&lambdaRate, "lambda-rate", def.LambdaRate, "Patient arrivals per hour")
	cmd.Flags().IntVar(&numDoctors, "num-doctors", def.NumDoctors, "Number of doctors")
	cmd.Flags().StringVar(&distribution, "distribution", def.ServiceDistribution, "Consultation length distribution (exponential, normal, uniform, constant)")
	cmd.Flags().Float64Var(&meanServiceTime, "mean-service-time", def.MeanServiceTime, "Mean consultation length (minutes)")
	cmd.Flags().Float64Var(&horizon, "horizon", def.SimulationTime, "Simulated time (minutes)")
	cmd.Flags().StringVar(&arrivalPattern, "arrival-pattern", def.ArrivalPattern, "Arrival pattern (homogeneous, nonhomogeneous, trace)")
	cmd.Flags().StringVar(&datasetFile, "dataset", "", "People dataset (JSON array)")
	cmd.Flags().IntVar(&patientLimit, "patient-limit", def.PatientLimit, "Patients to simulate: dataset cap, or synthetic walk-ins when no dataset is set")
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Save the run report as JSON to this file")

	rootCmd.AddCommand(runCmd)
}
