// Package potential provides one-dimensional potential energy functions that
// can be plugged into the smoothing pipeline.
package potential

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned by ParseType for names that are not registered.
var ErrUnknown = errors.New("potential: unknown type")

// Func evaluates a potential at position x. Implementations must be pure and
// defined for every finite x.
type Func func(x float64) float64

// Type identifies a built-in potential.
type Type int

const (
	// TypeDoubleWell is the symmetric quartic double well 0.25*x^4 - 0.5*x^2.
	TypeDoubleWell Type = iota
	// TypeTiltedQuartic is the asymmetric quartic x^4 - 4*x^2 + 0.2*x.
	TypeTiltedQuartic
)

var names = map[Type]string{
	TypeDoubleWell:    "double-well",
	TypeTiltedQuartic: "tilted-quartic",
}

// DoubleWell has minima at x = ±1 with depth -0.25 and a barrier at x = 0.
func DoubleWell(x float64) float64 {
	x2 := x * x
	return 0.25*x2*x2 - 0.5*x2
}

// TiltedQuartic is a deeper double well whose left minimum is lowered by a
// small linear tilt.
func TiltedQuartic(x float64) float64 {
	x2 := x * x
	return x2*x2 - 4*x2 + 0.2*x
}

// Scaled returns beta*fn(x). With beta = 1/kT it turns exp(-U) into the
// Boltzmann factor at temperature T.
func Scaled(fn Func, beta float64) Func {
	if beta == 1 {
		return fn
	}
	return func(x float64) float64 {
		return beta * fn(x)
	}
}

// Func returns the function for t, or nil for an unknown type.
func (t Type) Func() Func {
	switch t {
	case TypeDoubleWell:
		return DoubleWell
	case TypeTiltedQuartic:
		return TiltedQuartic
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

// ParseType resolves a case-insensitive potential name.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range names {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Names lists the registered potential names in type order.
func Names() []string {
	out := make([]string, 0, len(names))
	for t := TypeDoubleWell; t <= TypeTiltedQuartic; t++ {
		out = append(out, names[t])
	}
	return out
}
