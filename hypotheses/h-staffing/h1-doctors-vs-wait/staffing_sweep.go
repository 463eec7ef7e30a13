// H1 Staffing Sweep: doctors vs. waiting
//
// Hypothesis: for a fixed arrival rate, mean wait falls sharply once the
// doctor count exceeds the offered load (rate * mean consultation / 60) and
// flattens after that.
//
// This program runs the clinic across a grid of doctor counts and arrival
// rates, several seeds per cell, and writes one CSV row per run.
//
// Usage: go run staffing_sweep.go --output staffing.csv --seeds 10
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/clinic-sim/clinic-sim/sim"
)

func main() {
	output := flag.String("output", "staffing.csv", "CSV file to write")
	seeds := flag.Int("seeds", 10, "Seeds per (doctors, rate) cell")
	meanService := flag.Float64("mean-service-time", 15, "Mean consultation length (minutes)")
	horizon := flag.Float64("horizon", 480, "Simulated minutes per run")
	flag.Parse()

	f, err := os.Create(*output)
	if err != nil {
		logrus.Fatalf("Failed to create %s: %v", *output, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	_ = w.Write([]string{"doctors", "rate", "seed", "offered_load", "mean_wait", "wait_p95", "mean_queue", "mean_occupancy", "served", "still_queued"})

	patients := make([]sim.Patient, 1000)
	for i := range patients {
		patients[i] = sim.Patient{ID: strconv.Itoa(i + 1)}
	}

	for doctors := 1; doctors <= 8; doctors++ {
		for _, rate := range []float64{8, 12, 16, 20, 24} {
			for s := 1; s <= *seeds; s++ {
				seed := int64(s)
				cfg := sim.DefaultConfig()
				cfg.NumDoctors = doctors
				cfg.ArrivalRate = rate
				cfg.MeanServiceTime = *meanService
				cfg.Horizon = *horizon
				cfg.Seed = &seed
				cfg.Patients = patients

				simulator, err := sim.NewSimulator(cfg)
				if err != nil {
					logrus.Fatalf("doctors=%d rate=%g: %v", doctors, rate, err)
				}
				res, err := simulator.Run()
				if err != nil {
					logrus.Fatalf("doctors=%d rate=%g: %v", doctors, rate, err)
				}
				sum := res.Summary
				_ = w.Write([]string{
					strconv.Itoa(doctors),
					fmt.Sprintf("%g", rate),
					strconv.FormatInt(seed, 10),
					fmt.Sprintf("%.3f", rate*(*meanService)/60),
					fmt.Sprintf("%.3f", sum.MeanWait),
					fmt.Sprintf("%.3f", sum.WaitP95),
					fmt.Sprintf("%.3f", sum.MeanQueueLength),
					fmt.Sprintf("%.2f", sum.MeanOccupancy),
					strconv.Itoa(res.PatientsServed),
					strconv.Itoa(res.StillQueued),
				})
			}
		}
		fmt.Fprintf(os.Stderr, "doctors=%d done\n", doctors)
	}
}
