package conv

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-boltz/dsp/core"
)

// Method selects the clipped convolution algorithm.
type Method int

const (
	// MethodDirect runs the O(N*M) accumulation loop.
	MethodDirect Method = iota
	// MethodFFT uses FFT overlap-add and trims to the signal length.
	MethodFFT
	// MethodAuto picks direct for kernels up to 64 taps, FFT above.
	MethodAuto
)

var methodNames = [...]string{
	MethodDirect: "direct",
	MethodFFT:    "fft",
	MethodAuto:   "auto",
}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod resolves a case-insensitive method name.
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Clipped convolves signal with the center-aligned odd-length kernel,
// multiplying every contribution by scale. The result has len(signal)
// samples; contributions whose target index falls outside the signal are
// dropped.
func Clipped(signal, kernel []float64, scale float64) ([]float64, error) {
	if err := validateClipped(signal, kernel); err != nil {
		return nil, err
	}

	out := make([]float64, len(signal))
	clippedTo(out, signal, kernel, scale)
	return out, nil
}

// ClippedTo is Clipped writing into dst, which must have len(signal) samples.
// dst is zeroed before accumulation.
func ClippedTo(dst, signal, kernel []float64, scale float64) error {
	if err := validateClipped(signal, kernel); err != nil {
		return err
	}
	if len(dst) != len(signal) {
		return lengthError(len(signal), len(dst))
	}

	clippedTo(dst, signal, kernel, scale)
	return nil
}

// ClippedFFT computes the same result as Clipped through the full FFT
// convolution, keeping the slice aligned on the kernel center.
func ClippedFFT(signal, kernel []float64, scale float64) ([]float64, error) {
	if err := validateClipped(signal, kernel); err != nil {
		return nil, err
	}

	full, err := OverlapAddConvolve(signal, kernel)
	if err != nil {
		return nil, err
	}
	return scaled(trimToMode(full, len(signal), len(kernel), ModeSame), scale), nil
}

// ClippedWith dispatches to the algorithm selected by method. MethodAuto
// leaves the choice to ConvolveMode.
func ClippedWith(method Method, signal, kernel []float64, scale float64) ([]float64, error) {
	switch method {
	case MethodDirect:
		return Clipped(signal, kernel, scale)
	case MethodFFT:
		return ClippedFFT(signal, kernel, scale)
	case MethodAuto:
		if err := validateClipped(signal, kernel); err != nil {
			return nil, err
		}
		same, err := ConvolveMode(signal, kernel, ModeSame)
		if err != nil {
			return nil, err
		}
		return scaled(same, scale), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}
}

// scaled returns a copy of x multiplied by scale.
func scaled(x []float64, scale float64) []float64 {
	out := make([]float64, len(x))
	vecmath.ScaleBlock(out, x, scale)
	return out
}

func validateClipped(signal, kernel []float64) error {
	if len(signal) == 0 {
		return ErrEmptyInput
	}
	if len(kernel) == 0 {
		return ErrEmptyKernel
	}
	if len(kernel)%2 == 0 {
		return fmt.Errorf("%w: %d", ErrEvenKernel, len(kernel))
	}
	return nil
}

// clippedTo restricts k to the taps whose target i+k-c lies in [0, n), so
// the inner loop never needs a bounds test.
func clippedTo(dst, signal, kernel []float64, scale float64) {
	core.Zero(dst)

	n := len(signal)
	m := len(kernel)
	c := (m - 1) / 2
	temp := scratchFor(m)

	for i, s := range signal {
		// Sample i feeds targets i-c .. i+c; keep those inside [0, n).
		kLo := max(0, c-i)
		kHi := min(m, n-i+c)
		if kLo >= kHi {
			continue
		}

		scaleAdd(dst[i+kLo-c:i+kHi-c], kernel[kLo:kHi], s*scale, temp)
	}
}
