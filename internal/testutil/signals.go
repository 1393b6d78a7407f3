// Package testutil holds deterministic inputs and tolerance assertions
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// PositiveNoise returns length samples in (0, 1] drawn with a fixed seed,
// shaped like a sampled Boltzmann factor.
func PositiveNoise(seed int64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = 1 - rng.Float64()
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Constant generates a signal holding value everywhere.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Bump returns exp(-((i-center)/width)^2) for i in [0, length).
func Bump(length int, center, width float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		u := (float64(i) - center) / width
		out[i] = math.Exp(-u * u)
	}
	return out
}
