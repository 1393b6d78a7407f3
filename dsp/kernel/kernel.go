// Package kernel provides finite-support smoothing kernels and their sampled
// form on a symmetric grid.
//
// Two kernels are built in:
//
//   - Piecewise: a quadratic kernel that vanishes at and beyond ±sigma and
//     integrates to exactly 1.
//   - Gaussian: the normal density with standard deviation sigma. It has
//     infinite support, so sampling it on [-sigma, sigma] keeps only about
//     68.3% of its mass. That truncation is not renormalised unless
//     [WithRenormalize] is given; see [TruncatedMass].
package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Errors returned by kernel construction.
var (
	ErrNilFunc  = errors.New("kernel: nil kernel function")
	ErrUnknown  = errors.New("kernel: unknown type")
	ErrZeroMass = errors.New("kernel: sampled kernel has zero mass")
)

// Func evaluates a kernel of width parameter sigma at offset x.
type Func func(x, sigma float64) float64

// Type identifies a built-in kernel.
type Type int

const (
	TypePiecewise Type = iota
	TypeGaussian
)

var names = map[Type]string{
	TypePiecewise: "piecewise",
	TypeGaussian:  "gaussian",
}

// Piecewise evaluates the three-region quadratic kernel:
//
//	2*(1 - |x|/sigma)^2 / sigma   for sigma/2 <= |x| < sigma
//	(1 - 2*(x/sigma)^2) / sigma   for |x| < sigma/2
//	0                             for |x| >= sigma
//
// Both branches meet at 1/(2*sigma) for |x| = sigma/2.
func Piecewise(x, sigma float64) float64 {
	if x <= -sigma || x >= sigma {
		return 0
	}

	if x <= -0.5*sigma {
		v := 1 + x/sigma
		return 2 * v * v / sigma
	}
	if x >= 0.5*sigma {
		v := 1 - x/sigma
		return 2 * v * v / sigma
	}

	v := x / sigma
	return (1 - 2*v*v) / sigma
}

// Gaussian evaluates the normal density with standard deviation sigma.
func Gaussian(x, sigma float64) float64 {
	coeff := 1 / (math.Sqrt(2*math.Pi) * sigma)
	return coeff * math.Exp(-0.5*x*x/(sigma*sigma))
}

// TruncatedMass returns the exact integral of kernel t over
// [-halfWidth, halfWidth]. A value below 1 is the mass a sampled kernel loses
// to its support window.
func TruncatedMass(t Type, halfWidth, sigma float64) float64 {
	if halfWidth <= 0 || sigma <= 0 {
		return 0
	}

	u := halfWidth / sigma
	switch t {
	case TypePiecewise:
		switch {
		case u >= 1:
			return 1
		case u <= 0.5:
			return 2*u - 4*u*u*u/3
		default:
			r := 1 - u
			return 5.0/6.0 + 4*(0.125-r*r*r)/3
		}
	case TypeGaussian:
		return math.Erf(u / math.Sqrt2)
	default:
		return math.NaN()
	}
}

// Func returns the function for t, or nil for an unknown type.
func (t Type) Func() Func {
	switch t {
	case TypePiecewise:
		return Piecewise
	case TypeGaussian:
		return Gaussian
	default:
		return nil
	}
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a case-insensitive kernel name.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range names {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Names lists the registered kernel names in type order.
func Names() []string {
	return []string{names[TypePiecewise], names[TypeGaussian]}
}
