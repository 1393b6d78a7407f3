// Package profile summarises sampled one-dimensional energy profiles: value
// ranges, local minima and the barrier between the two deepest wells.
//
// Non-finite samples (the +Inf produced where a smoothed density vanishes)
// are skipped by the statistics and never reported as extrema.
package profile

import "math"

// Stats holds single-pass statistics of the finite samples of a profile.
type Stats struct {
	Length   int
	Finite   int
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Mean     float64
	Variance float64
	Range    float64 // max - min
}

func emptyStats(n int) Stats {
	return Stats{
		Length:   n,
		Min:      math.NaN(),
		MinPos:   -1,
		Max:      math.NaN(),
		MaxPos:   -1,
		Mean:     math.NaN(),
		Variance: math.NaN(),
		Range:    math.NaN(),
	}
}

// Calculate computes Stats using Welford's update for mean and variance.
func Calculate(y []float64) Stats {
	s := emptyStats(len(y))

	var mean, m2 float64
	count := 0
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		if count == 0 || v < s.Min {
			s.Min, s.MinPos = v, i
		}
		if count == 0 || v > s.Max {
			s.Max, s.MaxPos = v, i
		}

		count++
		delta := v - mean
		mean += delta / float64(count)
		m2 += delta * (v - mean)
	}

	if count == 0 {
		return s
	}

	s.Finite = count
	s.Mean = mean
	s.Variance = m2 / float64(count)
	s.Range = s.Max - s.Min
	return s
}
