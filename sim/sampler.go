package sim

import (
	"math"
	"slices"
)

// minuteMarks is the number of integer minute marks 0..n-1 inside the horizon.
func minuteMarks(horizon float64) int {
	if horizon <= 0 {
		return 0
	}
	return int(math.Ceil(horizon))
}

// SampleQueueLengths replays recorded timestamps at each minute mark m:
// (patients arrived by m) - (patients whose service started by m), floored
// at zero. starts holds only patients that were served.
func SampleQueueLengths(arrivals, starts []float64, minutes int) []int {
	a := slices.Clone(arrivals)
	s := slices.Clone(starts)
	slices.Sort(a)
	slices.Sort(s)

	out := make([]int, minutes)
	ai, si := 0, 0
	for m := 0; m < minutes; m++ {
		mark := float64(m)
		for ai < len(a) && a[ai] <= mark {
			ai++
		}
		for si < len(s) && s[si] <= mark {
			si++
		}
		out[m] = max(0, ai-si)
	}
	return out
}

// SampleOccupancy returns, for each minute mark m, the percentage of doctors
// with a consultation covering m, i.e. start <= m < start+duration.
func SampleOccupancy(consultations []Consultation, numDoctors, minutes int) []float64 {
	out := make([]float64, minutes)
	if numDoctors <= 0 || minutes == 0 {
		return out
	}

	busy := make([]int, minutes)
	// consultations of one doctor never overlap; lastMarked keeps a shared
	// boundary minute from being counted twice
	lastMarked := make([]int, numDoctors)
	for i := range lastMarked {
		lastMarked[i] = -1
	}
	for _, c := range consultations {
		first := int(math.Ceil(c.Start))
		end := int(math.Ceil(c.Start + c.Duration)) // exclusive
		first = max(first, lastMarked[c.Doctor]+1, 0)
		end = min(end, minutes)
		for m := first; m < end; m++ {
			busy[m]++
		}
		if end-1 > lastMarked[c.Doctor] {
			lastMarked[c.Doctor] = end - 1
		}
	}
	for m, n := range busy {
		out[m] = math.Min(100, 100*float64(n)/float64(numDoctors))
	}
	return out
}
