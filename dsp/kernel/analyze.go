package kernel

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Analysis holds numerically computed properties of a sampled kernel.
type Analysis struct {
	// Length is the number of samples (always odd).
	Length int
	// Mass is sum(K) * dx, ideally close to 1.
	Mass float64
	// Peak is the largest sample value and PeakX its position.
	Peak  float64
	PeakX float64
	// CenterValue is the sample at x = 0.
	CenterValue float64
	// EdgeValue is the larger of the two outermost samples.
	EdgeValue float64
	// Asymmetry is max |K[k] - K[n-1-k]|.
	Asymmetry float64
	// FWHM is the full width at half maximum, NaN when the kernel does not
	// drop to half its peak inside the support.
	FWHM float64
}

// Analyze computes the properties of s.
func Analyze(s Samples) Analysis {
	n := s.Len()
	if n == 0 {
		return Analysis{FWHM: math.NaN()}
	}

	a := Analysis{
		Length:      n,
		Mass:        s.Mass(),
		CenterValue: s.Values[s.Center()],
		EdgeValue:   math.Max(math.Abs(s.Values[0]), math.Abs(s.Values[n-1])),
	}

	peakIdx := 0
	for k, v := range s.Values {
		if v > s.Values[peakIdx] {
			peakIdx = k
		}
		if d := math.Abs(v - s.Values[n-1-k]); d > a.Asymmetry {
			a.Asymmetry = d
		}
	}
	a.Peak = s.Values[peakIdx]
	a.PeakX = s.Grid.At(peakIdx)
	if vecmath.MaxAbs(s.Values) == 0 {
		a.FWHM = math.NaN()
		return a
	}

	a.FWHM = fullWidthHalfMax(s, peakIdx)
	return a
}

func fullWidthHalfMax(s Samples, peakIdx int) float64 {
	half := 0.5 * s.Values[peakIdx]
	dx := s.Grid.Step

	right := math.NaN()
	for j := peakIdx + 1; j < s.Len(); j++ {
		if s.Values[j] < half {
			prev := s.Values[j-1]
			right = s.Grid.At(j-1) + (prev-half)/(prev-s.Values[j])*dx
			break
		}
	}

	left := math.NaN()
	for j := peakIdx - 1; j >= 0; j-- {
		if s.Values[j] < half {
			prev := s.Values[j+1]
			left = s.Grid.At(j+1) - (prev-half)/(prev-s.Values[j])*dx
			break
		}
	}

	return right - left
}
