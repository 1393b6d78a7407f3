// Package report writes smoothing results as fixed-precision text tables.
//
// The main table has one row per domain point with the columns
//
//	x  U(x)  exp(-U(x))  convolved exp(-U(x))  -ln(convolved)
//
// Non-finite values are written as formatted by fmt (+Inf, NaN).
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/algo-boltz/dsp/kernel"
	"github.com/cwbudde/algo-boltz/energy/smooth"
)

// Header is the column header line of the result table.
var Header = []string{
	"X",
	"Potential(X)",
	"Exp(-Potential(X))",
	"Convolved Exp(-Potential(X))",
	"Potential from Convolved Density",
}

// KernelHeader is the column header line of the kernel table.
var KernelHeader = []string{"X", "Kernel(X)"}

// Option configures table output.
type Option func(*format)

type format struct {
	precision int
	separator string
	header    bool
}

func defaultFormat() format {
	return format{precision: 6, separator: " "}
}

// WithPrecision sets the number of decimal places. Negative values are ignored.
func WithPrecision(n int) Option {
	return func(f *format) {
		if n >= 0 {
			f.precision = n
		}
	}
}

// WithSeparator sets the column separator. Empty separators are ignored.
func WithSeparator(sep string) Option {
	return func(f *format) {
		if sep != "" {
			f.separator = sep
		}
	}
}

// WithHeader emits a header line before the rows.
func WithHeader() Option {
	return func(f *format) {
		f.header = true
	}
}

// FileOptions returns the layout used for output files: four decimals,
// tab separated, with a header line.
func FileOptions() []Option {
	return []Option{WithPrecision(4), WithSeparator("\t"), WithHeader()}
}

// WriteTable writes one row per domain point of r.
func WriteTable(w io.Writer, r *smooth.Result, opts ...Option) error {
	f := applyOptions(opts)
	tw := newTableWriter(w, f)

	if f.header {
		tw.header(Header)
	}
	for i := 0; i < r.Len(); i++ {
		tw.row(r.X(i), r.Potential[i], r.Boltzmann[i], r.Convolved[i], r.Recovered[i])
	}

	return tw.flush("result table")
}

// WriteKernel writes the sampled kernel as x, K(x) rows.
func WriteKernel(w io.Writer, s kernel.Samples, opts ...Option) error {
	f := applyOptions(opts)
	tw := newTableWriter(w, f)

	if f.header {
		tw.header(KernelHeader)
	}
	for k, v := range s.Values {
		tw.row(s.Grid.At(k), v)
	}

	return tw.flush("kernel table")
}

func applyOptions(opts []Option) format {
	f := defaultFormat()
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// tableWriter buffers rows and keeps the first write error.
type tableWriter struct {
	bw  *bufio.Writer
	f   format
	buf []byte
	err error
}

func newTableWriter(w io.Writer, f format) *tableWriter {
	return &tableWriter{bw: bufio.NewWriter(w), f: f}
}

func (t *tableWriter) header(cols []string) {
	if t.err != nil {
		return
	}
	for i, c := range cols {
		if i > 0 {
			_, t.err = t.bw.WriteString(t.f.separator)
		}
		if t.err == nil {
			_, t.err = t.bw.WriteString(c)
		}
	}
	if t.err == nil {
		t.err = t.bw.WriteByte('\n')
	}
}

func (t *tableWriter) row(values ...float64) {
	if t.err != nil {
		return
	}
	t.buf = t.buf[:0]
	for i, v := range values {
		if i > 0 {
			t.buf = append(t.buf, t.f.separator...)
		}
		t.buf = strconv.AppendFloat(t.buf, v, 'f', t.f.precision, 64)
	}
	t.buf = append(t.buf, '\n')
	_, t.err = t.bw.Write(t.buf)
}

func (t *tableWriter) flush(what string) error {
	if t.err == nil {
		t.err = t.bw.Flush()
	}
	if t.err != nil {
		return fmt.Errorf("report: failed to write %s: %w", what, t.err)
	}
	return nil
}
