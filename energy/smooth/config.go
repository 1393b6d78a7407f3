package smooth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-boltz/dsp/conv"
	"github.com/cwbudde/algo-boltz/dsp/grid"
	"github.com/cwbudde/algo-boltz/dsp/kernel"
	"github.com/cwbudde/algo-boltz/energy/potential"
)

// Errors returned by Config.Validate.
var (
	ErrNilPotential = errors.New("smooth: nil potential function")
	ErrNilKernel    = errors.New("smooth: nil kernel function")
	ErrInvalidBeta  = errors.New("smooth: beta must be finite and > 0")
)

// Config describes one smoothing run. Each run owns its buffers, so several
// configurations may be evaluated concurrently.
type Config struct {
	// XLower and XUpper bound the potential domain.
	XLower float64
	XUpper float64
	// Dx is the grid step shared by domain and kernel.
	Dx float64
	// Sigma is the kernel width parameter and support half width.
	Sigma float64

	Potential potential.Func
	Kernel    kernel.Func
	Method    conv.Method

	// SupportScale widens the sampled kernel support to SupportScale*Sigma.
	// Zero means 1.
	SupportScale float64
	// RenormalizeKernel rescales the sampled kernel to unit mass.
	RenormalizeKernel bool
	// NormalizeDensity divides the Boltzmann factor by its trapezoid
	// integral before smoothing.
	NormalizeDensity bool
	// Beta multiplies the potential inside the exponential. Zero means 1.
	Beta float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the reference run: double well on [-2, 2], dx = 0.01,
// piecewise kernel with sigma = 0.5, direct convolution.
func DefaultConfig() Config {
	return Config{
		XLower:       -2,
		XUpper:       2,
		Dx:           0.01,
		Sigma:        0.5,
		Potential:    potential.DoubleWell,
		Kernel:       kernel.Piecewise,
		Method:       conv.MethodDirect,
		SupportScale: 1,
		Beta:         1,
	}
}

// NewConfig applies opts to DefaultConfig. Values are not checked here;
// call Validate (Run does) to reject degenerate settings.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithDomain sets the potential domain bounds.
func WithDomain(lower, upper float64) Option {
	return func(c *Config) {
		c.XLower = lower
		c.XUpper = upper
	}
}

// WithStep sets the grid step.
func WithStep(dx float64) Option {
	return func(c *Config) { c.Dx = dx }
}

// WithSigma sets the kernel width.
func WithSigma(sigma float64) Option {
	return func(c *Config) { c.Sigma = sigma }
}

// WithPotential sets the potential function.
func WithPotential(fn potential.Func) Option {
	return func(c *Config) { c.Potential = fn }
}

// WithKernel sets the kernel function.
func WithKernel(fn kernel.Func) Option {
	return func(c *Config) { c.Kernel = fn }
}

// WithMethod selects the convolution algorithm.
func WithMethod(m conv.Method) Option {
	return func(c *Config) { c.Method = m }
}

// WithSupportScale widens the kernel support to s*sigma.
func WithSupportScale(s float64) Option {
	return func(c *Config) { c.SupportScale = s }
}

// WithRenormalizedKernel rescales the sampled kernel to unit mass.
func WithRenormalizedKernel() Option {
	return func(c *Config) { c.RenormalizeKernel = true }
}

// WithNormalizedDensity normalises the Boltzmann factor before smoothing.
func WithNormalizedDensity() Option {
	return func(c *Config) { c.NormalizeDensity = true }
}

// WithBeta sets the inverse temperature.
func WithBeta(beta float64) Option {
	return func(c *Config) { c.Beta = beta }
}

// Validate reports the first degenerate setting.
func (c Config) Validate() error {
	if _, err := grid.Count(c.XLower, c.XUpper, c.Dx); err != nil {
		return fmt.Errorf("smooth: %w", err)
	}
	if _, err := grid.KernelCount(c.Sigma*c.supportScale(), c.Dx); err != nil {
		return fmt.Errorf("smooth: %w", err)
	}
	if c.Potential == nil {
		return ErrNilPotential
	}
	if c.Kernel == nil {
		return ErrNilKernel
	}
	if b := c.beta(); math.IsNaN(b) || math.IsInf(b, 0) || b <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidBeta, b)
	}
	if c.Method < conv.MethodDirect || c.Method > conv.MethodAuto {
		return fmt.Errorf("smooth: %w: %v", conv.ErrUnknownMethod, c.Method)
	}
	return nil
}

func (c Config) supportScale() float64 {
	if c.SupportScale == 0 {
		return 1
	}
	return c.SupportScale
}

func (c Config) beta() float64 {
	if c.Beta == 0 {
		return 1
	}
	return c.Beta
}
