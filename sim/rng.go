package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey, configuration and patient list
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Generators ===

// Generators draws inter-arrival gaps and consultation durations from a
// single stream owned by one simulation run.
//
// Thread-safety: NOT thread-safe. Each Simulator owns its own Generators.
type Generators struct {
	key SimulationKey
	rng *rand.Rand
}

// NewGenerators creates a Generators seeded from key.
func NewGenerators(key SimulationKey) *Generators {
	return &Generators{
		key: key,
		rng: rand.New(rand.NewSource(int64(key))),
	}
}

// Key returns the SimulationKey the stream was seeded with.
func (g *Generators) Key() SimulationKey {
	return g.key
}

// NextInterarrival returns an exponentially distributed gap in minutes for a
// Poisson process of ratePerHour arrivals per hour. A non-positive rate means
// no further arrivals and yields +Inf.
func (g *Generators) NextInterarrival(ratePerHour float64) float64 {
	if ratePerHour <= 0 {
		return math.Inf(1)
	}
	perMinute := ratePerHour / 60.0
	return g.rng.ExpFloat64() / perMinute
}

// NextServiceTime returns a consultation duration in minutes.
//
//   - exponential: scale = mean
//   - normal: N(mean, 0.2*mean), clamped to at least 0.1
//   - uniform: U[0.5*mean, 1.5*mean]
//   - constant: mean
func (g *Generators) NextServiceTime(mean float64, dist ServiceDistribution) (float64, error) {
	switch dist {
	case DistExponential:
		return g.rng.ExpFloat64() * mean, nil
	case DistNormal:
		return math.Max(0.1, mean+g.rng.NormFloat64()*0.2*mean), nil
	case DistUniform:
		return 0.5*mean + g.rng.Float64()*mean, nil
	case DistConstant:
		return mean, nil
	default:
		return 0, fmt.Errorf("%w: service distribution %s", ErrInvalidConfiguration, dist)
	}
}
