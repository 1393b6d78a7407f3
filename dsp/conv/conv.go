package conv

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-boltz/dsp/core"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrEvenKernel     = errors.New("conv: kernel length must be odd")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
	ErrUnknownMethod  = errors.New("conv: unknown method")
)

// Mode specifies the output mode for linear convolution.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input,
	// aligned on the kernel center. This is the clipped convolution
	// without the scale factor.
	ModeSame

	// ModeValid returns only the portion where the inputs fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// directThreshold is the kernel length up to which direct convolution beats
// the FFT path.
const directThreshold = 64

// simdThreshold is the kernel span from which the vecmath inner loop is used.
const simdThreshold = 4

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is O(N*M); Convolve switches to overlap-add for long kernels.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution into dst, which must have length
// len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	core.Zero(dst)

	m := len(b)
	temp := scratchFor(m)
	for i, av := range a {
		// dst[i:i+m] += av * b
		scaleAdd(dst[i:i+m], b, av, temp)
	}
}

// scratchFor returns the scaled-kernel buffer used by scaleAdd, or nil when
// the kernel is short enough for the scalar loop.
func scratchFor(m int) []float64 {
	if m < simdThreshold {
		return nil
	}
	return make([]float64, m)
}

// scaleAdd accumulates w*taps into dst, which has len(taps) samples. A nil
// temp selects the scalar loop; otherwise temp holds at least len(taps)
// samples and the vecmath kernels do the work.
func scaleAdd(dst, taps []float64, w float64, temp []float64) {
	if temp == nil {
		for k, v := range taps {
			dst[k] += w * v
		}
		return
	}

	// Scale the taps by the current input sample, then accumulate.
	buf := temp[:len(taps)]
	vecmath.ScaleBlock(buf, taps, w)
	vecmath.AddBlockInPlace(dst, buf)
}

// Convolve performs linear convolution, using the direct loop for kernels up
// to 64 taps and FFT overlap-add otherwise.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	// Convolution commutes; treat the shorter input as the kernel.
	if len(b) > len(a) {
		a, b = b, a
	}
	if len(b) <= directThreshold {
		return Direct(a, b)
	}
	return OverlapAddConvolve(a, b)
}

// ConvolveMode performs linear convolution with the given output mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}
	return trimToMode(full, len(a), len(b), mode), nil
}

// trimToMode extracts the part of a full convolution result selected by mode.
func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeSame:
		// Skip the kernel half that hangs off the left edge.
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		return full
	}
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func lengthError(want, got int) error {
	return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, want, got)
}
