package kernel

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-boltz/dsp/grid"
)

// Option configures kernel sampling.
type Option func(*config)

type config struct {
	supportScale float64
	renormalize  bool
}

func defaultConfig() config {
	return config{supportScale: 1}
}

// WithSupportScale samples on [-s*sigma, s*sigma] instead of [-sigma, sigma].
// Non-positive values are ignored.
func WithSupportScale(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.supportScale = s
		}
	}
}

// WithRenormalize rescales the samples so that their sum times dx is 1.
func WithRenormalize() Option {
	return func(c *config) {
		c.renormalize = true
	}
}

// Samples is a kernel evaluated on a symmetric grid.
type Samples struct {
	Grid   grid.Uniform
	Values []float64
	Sigma  float64
}

// Sample evaluates fn on the symmetric grid of half width sigma (scaled by
// WithSupportScale) and step dx.
func Sample(fn Func, sigma, dx float64, opts ...Option) (Samples, error) {
	if fn == nil {
		return Samples{}, ErrNilFunc
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	g, err := grid.NewSymmetric(cfg.supportScale*sigma, dx)
	if err != nil {
		return Samples{}, fmt.Errorf("kernel: %w", err)
	}

	values := make([]float64, g.Len())
	for k := range values {
		values[k] = fn(g.At(k), sigma)
	}

	s := Samples{Grid: g, Values: values, Sigma: sigma}
	if cfg.renormalize {
		mass := s.Mass()
		if mass == 0 {
			return Samples{}, ErrZeroMass
		}
		vecmath.ScaleBlockInPlace(s.Values, 1/mass)
	}

	return s, nil
}

// Len returns the number of samples.
func (s Samples) Len() int { return len(s.Values) }

// Center returns the index of the x = 0 sample.
func (s Samples) Center() int { return s.Grid.Center() }

// Mass returns the rectangle-rule integral sum(values) * dx.
func (s Samples) Mass() float64 {
	return vecmath.Sum(s.Values) * s.Grid.Step
}
