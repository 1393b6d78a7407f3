package report

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/cwbudde/algo-boltz/energy/smooth"
)

func reference(t *testing.T, opts ...smooth.Option) *smooth.Result {
	t.Helper()
	res, err := smooth.Run(smooth.NewConfig(opts...))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

func TestWriteTableDefault(t *testing.T) {
	res := reference(t)

	var buf bytes.Buffer
	if err := WriteTable(&buf, res); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 401 {
		t.Fatalf("rows = %d, want 401", len(lines))
	}

	for _, idx := range []int{0, 200, 400} {
		fields := strings.Fields(lines[idx])
		if len(fields) != 5 {
			t.Fatalf("row %d has %d columns, want 5", idx, len(fields))
		}
		want := []float64{res.X(idx), res.Potential[idx], res.Boltzmann[idx], res.Convolved[idx], res.Recovered[idx]}
		for c, f := range fields {
			if dot := strings.IndexByte(f, '.'); dot < 0 || len(f)-dot-1 != 6 {
				t.Fatalf("row %d col %d = %q, want 6 decimals", idx, c, f)
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				t.Fatalf("row %d col %d: %v", idx, c, err)
			}
			if math.Abs(v-want[c]) > 5e-7 {
				t.Fatalf("row %d col %d = %v, want %v", idx, c, v, want[c])
			}
		}
	}

	if !strings.HasPrefix(lines[200], "0.000000 0.000000 1.000000 ") {
		t.Fatalf("unexpected center row %q", lines[200])
	}
}

func TestWriteTableFileLayout(t *testing.T) {
	res := reference(t)

	var buf bytes.Buffer
	if err := WriteTable(&buf, res, FileOptions()...); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 402 {
		t.Fatalf("lines = %d, want header + 401", len(lines))
	}
	if lines[0] != "X\tPotential(X)\tExp(-Potential(X))\tConvolved Exp(-Potential(X))\tPotential from Convolved Density" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if got := lines[1]; !strings.HasPrefix(got, "-2.0000\t2.0000\t0.1353\t") {
		t.Fatalf("unexpected first row %q", got)
	}
	if n := len(strings.Split(lines[1], "\t")); n != 5 {
		t.Fatalf("first row has %d columns, want 5", n)
	}
}

func TestWriteTableKeepsInfinity(t *testing.T) {
	wall := func(x float64) float64 {
		if x < 0 {
			return 1e4
		}
		return 0
	}
	res := reference(t, smooth.WithPotential(wall))

	var buf bytes.Buffer
	if err := WriteTable(&buf, res, WithPrecision(2)); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	first, _, _ := strings.Cut(buf.String(), "\n")
	if first != "-2.00 10000.00 0.00 0.00 +Inf" {
		t.Fatalf("unexpected first row %q", first)
	}
}

func TestWriteKernel(t *testing.T) {
	res := reference(t)

	var buf bytes.Buffer
	if err := WriteKernel(&buf, res.Kernel, WithHeader(), WithSeparator(",")); err != nil {
		t.Fatalf("WriteKernel: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 102 {
		t.Fatalf("lines = %d, want header + 101", len(lines))
	}
	if lines[0] != "X,Kernel(X)" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "-0.500000,0.000000" || lines[51] != "0.000000,2.000000" || lines[101] != "0.500000,0.000000" {
		t.Fatalf("unexpected rows %q %q %q", lines[1], lines[51], lines[101])
	}
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	f := applyOptions([]Option{WithPrecision(-3), WithSeparator(""), nil})
	if f != defaultFormat() {
		t.Fatalf("invalid options changed format: %+v", f)
	}
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWriteTablePropagatesErrors(t *testing.T) {
	res := reference(t)

	if err := WriteTable(failingWriter{}, res); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected errDiskFull, got %v", err)
	}
	if err := WriteKernel(failingWriter{}, res.Kernel, WithHeader()); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected errDiskFull, got %v", err)
	}
}
