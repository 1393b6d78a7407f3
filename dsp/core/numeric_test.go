package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e6, 1e6+1e-7, 0) {
		t.Fatal("expected relative comparison with default epsilon")
	}
}

func TestNegLog(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "one", in: 1, want: 0},
		{name: "e", in: math.E, want: -1},
		{name: "zero", in: 0, want: math.Inf(1)},
		{name: "negative", in: -1, want: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NegLog(tt.in)
			switch {
			case math.IsNaN(tt.want):
				if !math.IsNaN(got) {
					t.Fatalf("NegLog(%v) = %v, want NaN", tt.in, got)
				}
			case math.IsInf(tt.want, 1):
				if !math.IsInf(got, 1) {
					t.Fatalf("NegLog(%v) = %v, want +Inf", tt.in, got)
				}
			default:
				if math.Abs(got-tt.want) > 1e-15 {
					t.Fatalf("NegLog(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestNegLogTo(t *testing.T) {
	src := []float64{1, math.Exp(-2), 0}
	dst := make([]float64, 2)
	NegLogTo(dst, src)

	if dst[0] != 0 || math.Abs(dst[1]-2) > 1e-15 {
		t.Fatalf("unexpected dst: %v", dst)
	}
}

func TestTrapezoid(t *testing.T) {
	// Integral of x on [0, 1] is exact under the trapezoid rule.
	x := make([]float64, 11)
	for i := range x {
		x[i] = float64(i) / 10
	}
	if got := Trapezoid(x, x); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("Trapezoid = %v, want 0.5", got)
	}

	tests := []struct {
		name string
		x, y []float64
	}{
		{name: "single sample", x: []float64{0}, y: []float64{3}},
		{name: "length mismatch", x: []float64{0, 1, 2}, y: []float64{1, 1}},
		{name: "unsorted", x: []float64{1, 0}, y: []float64{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trapezoid(tt.x, tt.y); got != 0 {
				t.Fatalf("Trapezoid = %v, want 0", got)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) || IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) {
		t.Fatal("IsFinite misclassified a value")
	}
}
