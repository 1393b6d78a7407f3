// Package grid sizes and indexes the uniform sample grids used by the
// smoothing pipeline.
//
// Point counts carry a 0.1*dx guard term so that a range which is an exact
// multiple of dx in real arithmetic does not lose or gain a point to
// floating-point round-off:
//
//	N_pot    = floor((upper - lower - 0.1*dx) / dx) + 2
//	N_kernel = 2 * (floor((halfWidth - 0.1*dx) / dx) + 1) + 1
//
// The kernel count is always odd, so its center index (N_kernel-1)/2 is
// well defined.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned for degenerate grid parameters.
var (
	ErrInvalidStep      = errors.New("grid: step must be finite and > 0")
	ErrInvalidRange     = errors.New("grid: upper bound must be finite and > lower bound")
	ErrInvalidHalfWidth = errors.New("grid: half width must be finite and > 0")
	ErrTooManyPoints    = errors.New("grid: point count exceeds limit")
)

// MaxPoints bounds the number of points in any grid.
const MaxPoints = math.MaxInt32

// guard is the round-off allowance, as a fraction of the step.
const guard = 0.1

// Uniform is an equally spaced grid of N points starting at Start.
type Uniform struct {
	Start float64
	Step  float64
	N     int

	centered bool
}

// Count returns the number of points covering [lower, upper] at step dx.
func Count(lower, upper, dx float64) (int, error) {
	if err := validateStep(dx); err != nil {
		return 0, err
	}
	if !isFinite(lower) || !isFinite(upper) || upper <= lower {
		return 0, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, lower, upper)
	}

	// Counts are formed in float64 and bounded before the int conversion,
	// which would otherwise wrap for tiny steps.
	n := math.Floor((upper-lower-guard*dx)/dx) + 2
	if !isFinite(n) || n > MaxPoints {
		return 0, fmt.Errorf("%w: [%g, %g] at step %g", ErrTooManyPoints, lower, upper, dx)
	}
	return int(n), nil
}

// KernelCount returns the odd number of points covering [-halfWidth, halfWidth]
// at step dx. Half widths below 0.1*dx collapse to a single center point.
func KernelCount(halfWidth, dx float64) (int, error) {
	if err := validateStep(dx); err != nil {
		return 0, err
	}
	if !isFinite(halfWidth) || halfWidth <= 0 {
		return 0, fmt.Errorf("%w: %g", ErrInvalidHalfWidth, halfWidth)
	}

	n := 2*(math.Floor((halfWidth-guard*dx)/dx)+1) + 1
	if !isFinite(n) || n > MaxPoints {
		return 0, fmt.Errorf("%w: half width %g at step %g", ErrTooManyPoints, halfWidth, dx)
	}
	return int(n), nil
}

// New returns the domain grid over [lower, upper] with step dx.
func New(lower, upper, dx float64) (Uniform, error) {
	n, err := Count(lower, upper, dx)
	if err != nil {
		return Uniform{}, err
	}
	return Uniform{Start: lower, Step: dx, N: n}, nil
}

// NewSymmetric returns the kernel grid over [-halfWidth, halfWidth] with step
// dx. Points are placed at (k-c)*dx so the center sample sits exactly at 0.
func NewSymmetric(halfWidth, dx float64) (Uniform, error) {
	n, err := KernelCount(halfWidth, dx)
	if err != nil {
		return Uniform{}, err
	}
	c := (n - 1) / 2
	return Uniform{Start: -float64(c) * dx, Step: dx, N: n, centered: true}, nil
}

// Symmetric reports whether the grid was built by NewSymmetric.
func (g Uniform) Symmetric() bool { return g.centered }

// Len returns the number of grid points.
func (g Uniform) Len() int { return g.N }

// At returns the position of point i.
func (g Uniform) At(i int) float64 {
	if g.centered {
		return float64(i-g.Center()) * g.Step
	}
	return g.Start + float64(i)*g.Step
}

// End returns the position of the last point.
func (g Uniform) End() float64 {
	if g.N == 0 {
		return g.Start
	}
	return g.At(g.N - 1)
}

// Center returns the middle index (N-1)/2.
func (g Uniform) Center() int { return (g.N - 1) / 2 }

// Points returns all grid positions.
func (g Uniform) Points() []float64 {
	out := make([]float64, g.N)
	for i := range out {
		out[i] = g.At(i)
	}
	return out
}

func validateStep(dx float64) error {
	if !isFinite(dx) || dx <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidStep, dx)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
