package sim

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHomogeneousArrivals_StopsAtHorizon(t *testing.T) {
	// GIVEN a busy clinic and plenty of patient records
	gen := NewGenerators(NewSimulationKey(42))
	a := NewArrivalGenerator(Config{ArrivalPattern: PatternHomogeneous, ArrivalRate: 60})

	// WHEN arrivals are generated for one hour
	times := a.Generate(gen, 1000, 60)

	// THEN all are inside the horizon, sorted, and roughly one per minute
	assert.NotEmpty(t, times)
	assert.True(t, sort.Float64sAreSorted(times))
	for _, x := range times {
		assert.Less(t, x, 60.0)
		assert.Greater(t, x, 0.0)
	}
	assert.InDelta(t, 60, len(times), 25)
}

func TestHomogeneousArrivals_StopsWhenPatientsExhausted(t *testing.T) {
	gen := NewGenerators(NewSimulationKey(42))
	a := NewArrivalGenerator(Config{ArrivalPattern: PatternHomogeneous, ArrivalRate: 600})

	times := a.Generate(gen, 5, 480)
	assert.Len(t, times, 5)
}

func TestHomogeneousArrivals_ZeroRate_NoArrivals(t *testing.T) {
	gen := NewGenerators(NewSimulationKey(42))
	a := NewArrivalGenerator(Config{ArrivalPattern: PatternHomogeneous, ArrivalRate: 0})

	assert.Empty(t, a.Generate(gen, 10, 480))
}

func TestDefaultRateProfile_FourQuarters(t *testing.T) {
	blocks := DefaultRateProfile(120, 10)
	assert.Equal(t, []RateBlock{
		{Start: 0, End: 30, RatePerHour: 5},
		{Start: 30, End: 60, RatePerHour: 15},
		{Start: 60, End: 90, RatePerHour: 20},
		{Start: 90, End: 120, RatePerHour: 5},
	}, blocks)
}

func TestPiecewiseArrivals_SkipsDegenerateBlocks(t *testing.T) {
	// GIVEN blocks out of order, one with zero duration and one with zero rate
	gen := NewGenerators(NewSimulationKey(3))
	a := NewArrivalGenerator(Config{
		ArrivalPattern: PatternNonHomogeneous,
		RateBlocks: []RateBlock{
			{Start: 60, End: 120, RatePerHour: 120},
			{Start: 10, End: 10, RatePerHour: 1000},
			{Start: 0, End: 60, RatePerHour: 0},
		},
	})

	// WHEN generated
	times := a.Generate(gen, 1000, 120)

	// THEN every arrival comes from the only live block
	assert.NotEmpty(t, times)
	assert.True(t, sort.Float64sAreSorted(times))
	for _, x := range times {
		assert.GreaterOrEqual(t, x, 60.0)
		assert.Less(t, x, 120.0)
	}
}

func TestPiecewiseArrivals_ClippedToHorizon(t *testing.T) {
	gen := NewGenerators(NewSimulationKey(3))
	a := NewArrivalGenerator(Config{
		ArrivalPattern: PatternNonHomogeneous,
		RateBlocks:     []RateBlock{{Start: 0, End: 1000, RatePerHour: 600}},
	})

	for _, x := range a.Generate(gen, 10000, 30) {
		assert.Less(t, x, 30.0)
	}
}

func TestPiecewiseArrivals_DefaultProfile_PeakIsBusier(t *testing.T) {
	gen := NewGenerators(NewSimulationKey(11))
	a := NewArrivalGenerator(Config{ArrivalPattern: PatternNonHomogeneous, ArrivalRate: 60, Horizon: 480})

	times := a.Generate(gen, 100000, 480)

	var rampUp, peakPlus int
	for _, x := range times {
		switch {
		case x < 120:
			rampUp++
		case x >= 240 && x < 360:
			peakPlus++
		}
	}
	// expected 60 vs 240 arrivals
	assert.Greater(t, peakPlus, 2*rampUp)
}

func TestTraceArrivals_ReplaysUntilHorizonOrExhaustion(t *testing.T) {
	a := NewArrivalGenerator(Config{ArrivalPattern: PatternTrace, ArrivalTimes: []float64{0, 1, 2, 50, 80}})

	assert.Equal(t, []float64{0, 1, 2, 50}, a.Generate(nil, 10, 60))
	assert.Equal(t, []float64{0, 1}, a.Generate(nil, 2, 60))
}
