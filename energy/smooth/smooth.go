// Package smooth runs the Boltzmann smoothing pipeline: it samples a
// potential U on a uniform grid, convolves the Boltzmann factor exp(-U) with
// a finite-support kernel, and recovers the effective potential
// -ln(exp(-U) * K).
//
// The stages run strictly in sequence:
//
//  1. grid sizing (dsp/grid),
//  2. sampling of U, exp(-U) and the kernel,
//  3. clipped convolution (dsp/conv), scaled by dx,
//  4. inversion by a pointwise negative logarithm.
//
// Boundary contributions are clipped, not wrapped or extended, so the
// smoothed density under-integrates near the domain edges. Where it is
// exactly zero the recovered potential is +Inf; no sentinel is substituted.
package smooth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-boltz/dsp/conv"
	"github.com/cwbudde/algo-boltz/dsp/core"
	"github.com/cwbudde/algo-boltz/dsp/grid"
	"github.com/cwbudde/algo-boltz/dsp/kernel"
	"github.com/cwbudde/algo-boltz/energy/potential"
)

// Result holds every sequence produced by a run, indexed like Grid.
type Result struct {
	Grid   grid.Uniform
	Kernel kernel.Samples

	Potential []float64
	Boltzmann []float64
	Convolved []float64
	Recovered []float64
}

// Run validates cfg and executes the pipeline.
func Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := grid.New(cfg.XLower, cfg.XUpper, cfg.Dx)
	if err != nil {
		return nil, fmt.Errorf("smooth: %w", err)
	}

	kopts := []kernel.Option{kernel.WithSupportScale(cfg.supportScale())}
	if cfg.RenormalizeKernel {
		kopts = append(kopts, kernel.WithRenormalize())
	}
	ks, err := kernel.Sample(cfg.Kernel, cfg.Sigma, cfg.Dx, kopts...)
	if err != nil {
		return nil, fmt.Errorf("smooth: %w", err)
	}

	res := &Result{
		Grid:      g,
		Kernel:    ks,
		Potential: make([]float64, g.Len()),
		Boltzmann: make([]float64, g.Len()),
		Recovered: make([]float64, g.Len()),
	}

	u := potential.Scaled(cfg.Potential, cfg.beta())
	for i := range res.Potential {
		res.Potential[i] = cfg.Potential(g.At(i))
		res.Boltzmann[i] = math.Exp(-u(g.At(i)))
	}

	if cfg.NormalizeDensity {
		z := core.Trapezoid(g.Points(), res.Boltzmann)
		if z > 0 && core.IsFinite(z) {
			vecmath.ScaleBlockInPlace(res.Boltzmann, 1/z)
		}
	}

	res.Convolved, err = conv.ClippedWith(cfg.Method, res.Boltzmann, ks.Values, cfg.Dx)
	if err != nil {
		return nil, fmt.Errorf("smooth: %w", err)
	}

	Invert(res.Recovered, res.Convolved)
	return res, nil
}

// Invert writes -ln(src[i]) into dst[i]. A zero density gives +Inf and a
// negative one NaN; both are kept as is.
func Invert(dst, src []float64) {
	core.NegLogTo(dst, src)
}

// Recover returns -ln(density) as a new slice.
func Recover(density []float64) []float64 {
	out := make([]float64, len(density))
	Invert(out, density)
	return out
}

// Len returns the number of domain points.
func (r *Result) Len() int { return r.Grid.Len() }

// X returns the position of domain point i.
func (r *Result) X(i int) float64 { return r.Grid.At(i) }

// Mass returns sum(B)*dx before and sum(Bconv)*dx after smoothing. With a
// kernel of mass at most 1, out never exceeds in.
func (r *Result) Mass() (in, out float64) {
	dx := r.Grid.Step
	return vecmath.Sum(r.Boltzmann) * dx, vecmath.Sum(r.Convolved) * dx
}

// Difference returns Bconv - B pointwise.
func (r *Result) Difference() []float64 {
	out := make([]float64, len(r.Convolved))
	for i := range out {
		out[i] = r.Convolved[i] - r.Boltzmann[i]
	}
	return out
}
