package conv

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-boltz/internal/testutil"
)

// referenceClipped is the plain accumulation loop with an explicit bounds test.
func referenceClipped(signal, kernel []float64, scale float64) []float64 {
	out := make([]float64, len(signal))
	c := (len(kernel) - 1) / 2
	for i := range signal {
		for k := range kernel {
			target := i + k - c
			if target >= 0 && target < len(signal) {
				out[target] += signal[i] * kernel[k] * scale
			}
		}
	}
	return out
}

func TestClippedMatchesReference(t *testing.T) {
	sizes := []struct {
		signal, kernel int
	}{
		{1, 1},
		{5, 1},
		{5, 3},
		{3, 7},
		{16, 5},
		{401, 101},
		{50, 99},
	}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("signal=%d_kernel=%d", size.signal, size.kernel), func(t *testing.T) {
			signal := testutil.PositiveNoise(1, size.signal)
			kernel := testutil.PositiveNoise(2, size.kernel)

			got, err := Clipped(signal, kernel, 0.01)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != size.signal {
				t.Fatalf("len = %d, want %d", len(got), size.signal)
			}
			testutil.RequireSliceNearlyEqual(t, got, referenceClipped(signal, kernel, 0.01), 1e-12)
		})
	}
}

func TestClippedHandComputed(t *testing.T) {
	got, err := Clipped([]float64{1, 2, 3, 4}, []float64{1, 10, 100}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// out[t] = sum_i s[i] * K[t - i + 1]
	want := []float64{10 + 2, 100 + 20 + 3, 200 + 30 + 4, 300 + 40}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestClippedDiracKernelIsIdentity(t *testing.T) {
	const dx = 0.01
	signal := testutil.PositiveNoise(3, 401)

	got, err := Clipped(signal, []float64{1 / dx}, dx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, signal, 1e-14)
}

func TestClippedImpulseResponse(t *testing.T) {
	const dx = 0.5
	kernel := []float64{1, 2, 3, 4, 5}

	got, err := Clipped(testutil.Impulse(9, 4), kernel, dx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 0, 0.5, 1, 1.5, 2, 2.5, 0, 0}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)

	// Near the edge the leading taps fall off the domain.
	got, err = Clipped(testutil.Impulse(9, 0), kernel, dx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = []float64{1.5, 2, 2.5, 0, 0, 0, 0, 0, 0}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)
}

func TestClippedConstantInterior(t *testing.T) {
	const dx = 0.1
	kernel := []float64{1, 3, 2, 3, 1} // sum*dx = 1

	got, err := Clipped(testutil.Constant(2, 20), kernel, dx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 2; i < 18; i++ {
		if math.Abs(got[i]-2) > 1e-12 {
			t.Fatalf("interior[%d] = %v, want 2", i, got[i])
		}
	}
	if got[0] >= 2 || got[19] >= 2 {
		t.Fatalf("edges should lose mass: %v, %v", got[0], got[19])
	}
}

func TestClippedLinearity(t *testing.T) {
	const dx = 0.01
	const a, b = 2.5, -0.75

	b1 := testutil.PositiveNoise(10, 200)
	b2 := testutil.PositiveNoise(11, 200)
	kernel := testutil.Bump(31, 15, 6)

	mix := make([]float64, len(b1))
	for i := range mix {
		mix[i] = a*b1[i] + b*b2[i]
	}

	c1, _ := Clipped(b1, kernel, dx)
	c2, _ := Clipped(b2, kernel, dx)
	cm, err := Clipped(mix, kernel, dx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := make([]float64, len(c1))
	for i := range want {
		want[i] = a*c1[i] + b*c2[i]
	}
	testutil.RequireSliceNearlyEqual(t, cm, want, 1e-12)
}

func TestClippedNeverGainsMass(t *testing.T) {
	const dx = 0.01

	kernel := testutil.Bump(101, 50, 20)
	vecmath.ScaleBlockInPlace(kernel, 1/(vecmath.Sum(kernel)*dx))

	for seed := int64(0); seed < 5; seed++ {
		signal := testutil.PositiveNoise(seed, 401)
		out, err := Clipped(signal, kernel, dx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		in := vecmath.Sum(signal) * dx
		got := vecmath.Sum(out) * dx
		if got > in+1e-12 {
			t.Fatalf("seed %d: output mass %v exceeds input mass %v", seed, got, in)
		}
		if got > in-1e-6 {
			t.Fatalf("seed %d: expected boundary loss, got %v vs %v", seed, got, in)
		}
	}
}

func TestClippedPreservesSymmetry(t *testing.T) {
	signal := testutil.Bump(201, 100, 30)
	kernel := testutil.Bump(41, 20, 8)

	out, err := Clipped(signal, kernel, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireMirrored(t, out, 0, len(out)-1, 1e-12)
}

func TestClippedToZeroesDestination(t *testing.T) {
	signal := []float64{1, 2, 3}
	dst := []float64{99, 99, 99}

	if err := ClippedTo(dst, signal, []float64{1}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, dst, signal, 0)
}

func TestClippedFFTMatchesDirect(t *testing.T) {
	for _, kernelLen := range []int{1, 3, 65, 101, 501} {
		signal := testutil.PositiveNoise(4, 401)
		kernel := testutil.Bump(kernelLen, float64(kernelLen-1)/2, float64(kernelLen)/4+1)

		direct, err := Clipped(signal, kernel, 0.01)
		if err != nil {
			t.Fatalf("direct: %v", err)
		}
		fft, err := ClippedFFT(signal, kernel, 0.01)
		if err != nil {
			t.Fatalf("fft: %v", err)
		}
		testutil.RequireSliceNearlyEqual(t, fft, direct, 1e-10)
	}
}

func TestClippedWith(t *testing.T) {
	signal := testutil.PositiveNoise(5, 128)
	kernel := testutil.Bump(81, 40, 10)
	want := referenceClipped(signal, kernel, 0.02)

	for _, m := range []Method{MethodDirect, MethodFFT, MethodAuto} {
		got, err := ClippedWith(m, signal, kernel, 0.02)
		if err != nil {
			t.Fatalf("%v: %v", m, err)
		}
		testutil.RequireSliceNearlyEqual(t, got, want, 1e-10)
	}

	if _, err := ClippedWith(Method(7), signal, kernel, 1); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestClippedAutoShortKernels(t *testing.T) {
	tests := []struct {
		name      string
		signalLen int
		kernel    []float64
	}{
		{name: "scalar loop", signalLen: 50, kernel: []float64{0.25, 0.5, 0.25}},
		{name: "vecmath loop", signalLen: 50, kernel: testutil.Bump(21, 10, 4)},
		{name: "kernel longer than signal", signalLen: 5, kernel: testutil.Bump(9, 4, 2)},
		{name: "dirac", signalLen: 7, kernel: []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := testutil.PositiveNoise(21, tt.signalLen)
			got, err := ClippedWith(MethodAuto, signal, tt.kernel, 0.1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, referenceClipped(signal, tt.kernel, 0.1), 1e-12)
		})
	}
}

func TestClippedErrors(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		kernel []float64
		want   error
	}{
		{name: "empty signal", signal: nil, kernel: []float64{1}, want: ErrEmptyInput},
		{name: "empty kernel", signal: []float64{1}, kernel: nil, want: ErrEmptyKernel},
		{name: "even kernel", signal: []float64{1, 2}, kernel: []float64{1, 1}, want: ErrEvenKernel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Clipped(tt.signal, tt.kernel, 1); !errors.Is(err, tt.want) {
				t.Fatalf("Clipped: expected %v, got %v", tt.want, err)
			}
			if _, err := ClippedFFT(tt.signal, tt.kernel, 1); !errors.Is(err, tt.want) {
				t.Fatalf("ClippedFFT: expected %v, got %v", tt.want, err)
			}
			if _, err := ClippedWith(MethodAuto, tt.signal, tt.kernel, 1); !errors.Is(err, tt.want) {
				t.Fatalf("ClippedWith(auto): expected %v, got %v", tt.want, err)
			}
		})
	}

	err := ClippedTo(make([]float64, 2), []float64{1, 2, 3}, []float64{1}, 1)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{MethodDirect, MethodFFT, MethodAuto} {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMethod(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMethod("winograd"); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
	if Method(-1).String() != "Method(-1)" {
		t.Fatalf("unexpected name %q", Method(-1).String())
	}
}
