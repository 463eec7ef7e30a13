package sim

import (
	"math"
	"sort"
)

// ArrivalPattern selects how arrival times are generated.
type ArrivalPattern string

const (
	// PatternHomogeneous draws exponential gaps at a constant rate.
	PatternHomogeneous ArrivalPattern = "homogeneous"
	// PatternNonHomogeneous draws exponential gaps at a per-block rate.
	PatternNonHomogeneous ArrivalPattern = "nonhomogeneous"
	// PatternTrace replays caller-supplied arrival times.
	PatternTrace ArrivalPattern = "trace"
)

// RateBlock is a time window [Start, End) with its own arrival rate.
type RateBlock struct {
	Start       float64 `yaml:"start" json:"start"`
	End         float64 `yaml:"end" json:"end"`
	RatePerHour float64 `yaml:"rate" json:"rate"`
}

// DefaultRateProfile splits the horizon into quarters: ramp-up, peak,
// peak-plus and wind-down, scaled from the base rate.
func DefaultRateProfile(horizon, ratePerHour float64) []RateBlock {
	q := horizon / 4
	return []RateBlock{
		{Start: 0, End: q, RatePerHour: 0.5 * ratePerHour},
		{Start: q, End: 2 * q, RatePerHour: 1.5 * ratePerHour},
		{Start: 2 * q, End: 3 * q, RatePerHour: 2.0 * ratePerHour},
		{Start: 3 * q, End: horizon, RatePerHour: 0.5 * ratePerHour},
	}
}

// ArrivalGenerator produces arrival times in minutes, sorted ascending.
// The result never holds more than maxArrivals entries and every time is
// strictly below the horizon. Arrival k is consumed by patient k.
type ArrivalGenerator interface {
	Generate(gen *Generators, maxArrivals int, horizon float64) []float64
}

// NewArrivalGenerator creates an ArrivalGenerator from a validated Config.
func NewArrivalGenerator(cfg Config) ArrivalGenerator {
	switch cfg.ArrivalPattern {
	case PatternNonHomogeneous:
		blocks := cfg.RateBlocks
		if len(blocks) == 0 {
			blocks = DefaultRateProfile(cfg.Horizon, cfg.ArrivalRate)
		}
		return newPiecewiseArrivals(blocks)
	case PatternTrace:
		return &traceArrivals{times: append([]float64(nil), cfg.ArrivalTimes...)}
	default:
		return &homogeneousArrivals{ratePerHour: cfg.ArrivalRate}
	}
}

type homogeneousArrivals struct {
	ratePerHour float64
}

func (a *homogeneousArrivals) Generate(gen *Generators, maxArrivals int, horizon float64) []float64 {
	var times []float64
	t := gen.NextInterarrival(a.ratePerHour)
	for len(times) < maxArrivals && t < horizon {
		times = append(times, t)
		t += gen.NextInterarrival(a.ratePerHour)
	}
	return times
}

type piecewiseArrivals struct {
	blocks []RateBlock
}

func newPiecewiseArrivals(blocks []RateBlock) *piecewiseArrivals {
	sorted := append([]RateBlock(nil), blocks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	return &piecewiseArrivals{blocks: sorted}
}

// Generate restarts the exponential clock at each block start; a gap that
// overshoots the block end is discarded.
func (a *piecewiseArrivals) Generate(gen *Generators, maxArrivals int, horizon float64) []float64 {
	var times []float64
	for _, b := range a.blocks {
		end := math.Min(b.End, horizon)
		if end-b.Start <= 0 || b.RatePerHour <= 0 {
			continue
		}
		t := b.Start + gen.NextInterarrival(b.RatePerHour)
		for len(times) < maxArrivals && t < end {
			times = append(times, t)
			t += gen.NextInterarrival(b.RatePerHour)
		}
		if len(times) >= maxArrivals {
			break
		}
	}
	return times
}

type traceArrivals struct {
	times []float64
}

func (a *traceArrivals) Generate(_ *Generators, maxArrivals int, horizon float64) []float64 {
	var times []float64
	for _, t := range a.times {
		if len(times) >= maxArrivals || t >= horizon {
			break
		}
		times = append(times, t)
	}
	return times
}
