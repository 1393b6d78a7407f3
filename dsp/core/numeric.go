// Package core holds small numeric helpers shared by the dsp and energy
// packages.
package core

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps, absolute or
// relative to the larger magnitude.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	return diff/largest <= eps
}

// NegLog returns -ln(x). Zero maps to +Inf and negative values to NaN.
func NegLog(x float64) float64 {
	return -math.Log(x)
}

// NegLogTo writes -ln(src[i]) to dst[i] for the common length.
func NegLogTo(dst, src []float64) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = -math.Log(src[i])
	}
}

// Trapezoid integrates the samples y taken at the positions x with the
// trapezoid rule. Fewer than two samples, mismatched lengths or unsorted
// positions integrate to 0.
func Trapezoid(x, y []float64) float64 {
	// integrate.Trapezoidal panics on each of these.
	if len(y) < 2 || len(x) != len(y) || !sort.Float64sAreSorted(x) {
		return 0
	}
	return integrate.Trapezoidal(x, y)
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
