// Command boltzconv smooths a 1-D potential by convolving its Boltzmann
// factor exp(-U) with a finite-support kernel and inverting the result.
//
// Usage:
//
//	boltzconv [flags]
//
// Without flags it runs the double well on [-2, 2] with dx = 0.01 and the
// piecewise kernel at sigma = 0.5, writing five columns to stdout:
//
//	x  U(x)  exp(-U(x))  convolved exp(-U(x))  -ln(convolved)
//
// Examples:
//
//	boltzconv
//	boltzconv -kernel gaussian -potential tilted-quartic -o output_data.txt
//	boltzconv -config run.env -sigma 0.25 -summary
//	boltzconv -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-boltz/dsp/conv"
	"github.com/cwbudde/algo-boltz/dsp/kernel"
	"github.com/cwbudde/algo-boltz/energy/potential"
	"github.com/cwbudde/algo-boltz/energy/report"
	"github.com/cwbudde/algo-boltz/energy/smooth"
	"github.com/cwbudde/algo-boltz/internal/config"
	"github.com/cwbudde/algo-boltz/stats/profile"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	xmin, xmax  float64
	dx, sigma   float64
	potential   string
	kernel      string
	method      string
	support     float64
	renormalize bool
	normalize   bool
	beta        float64
	output      string
	precision   int
	header      bool
	kernelTable bool
	summary     bool
	list        bool
}

func run(args []string, stdout, stderr io.Writer) int {
	def := smooth.DefaultConfig()

	var o options
	fs := flag.NewFlagSet("boltzconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "read KEY=VALUE run parameters from `file` before applying flags")
	fs.Float64Var(&o.xmin, "xmin", def.XLower, "lower domain bound")
	fs.Float64Var(&o.xmax, "xmax", def.XUpper, "upper domain bound")
	fs.Float64Var(&o.dx, "dx", def.Dx, "grid step")
	fs.Float64Var(&o.sigma, "sigma", def.Sigma, "kernel width")
	fs.StringVar(&o.potential, "potential", potential.TypeDoubleWell.String(), "potential function (see -list)")
	fs.StringVar(&o.kernel, "kernel", kernel.TypePiecewise.String(), "kernel function (see -list)")
	fs.StringVar(&o.method, "method", def.Method.String(), "convolution method: direct, fft or auto")
	fs.Float64Var(&o.support, "support", def.SupportScale, "kernel support half width in units of sigma")
	fs.BoolVar(&o.renormalize, "renormalize", false, "rescale the sampled kernel to unit mass")
	fs.BoolVar(&o.normalize, "normalize", false, "normalise exp(-U) by its trapezoid integral before smoothing")
	fs.Float64Var(&o.beta, "beta", def.Beta, "inverse temperature applied inside the exponential")
	fs.StringVar(&o.output, "o", "", "write the table to `file` (4 decimals, tab separated, header)")
	fs.IntVar(&o.precision, "precision", 6, "decimal places")
	fs.BoolVar(&o.header, "header", false, "print a header line")
	fs.BoolVar(&o.kernelTable, "kernel-table", false, "print the sampled kernel before the result table")
	fs.BoolVar(&o.summary, "summary", false, "print a well/barrier summary to stderr")
	fs.BoolVar(&o.list, "list", false, "list potentials, kernels and methods")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: boltzconv [flags]\n\n")
		fmt.Fprintf(stderr, "Smooths a potential through its Boltzmann factor and prints\n")
		fmt.Fprintf(stderr, "x, U, exp(-U), the convolved density and the recovered potential.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  boltzconv\n")
		fmt.Fprintf(stderr, "  boltzconv -kernel gaussian -potential tilted-quartic -o output_data.txt\n")
		fmt.Fprintf(stderr, "  boltzconv -config run.env -sigma 0.25 -summary\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if o.list {
		printList(stdout)
		return 0
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := buildConfig(o, set)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	res, err := smooth.Run(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if err := writeOutput(o, set, res, stdout); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if o.summary {
		if err := printSummary(stderr, res); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}
	return 0
}

// buildConfig starts from the defaults, applies the config file if any and
// then every flag given on the command line.
func buildConfig(o options, set map[string]bool) (smooth.Config, error) {
	cfg := smooth.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath, cfg); err != nil {
			return cfg, err
		}
	}

	if set["xmin"] {
		cfg.XLower = o.xmin
	}
	if set["xmax"] {
		cfg.XUpper = o.xmax
	}
	if set["dx"] {
		cfg.Dx = o.dx
	}
	if set["sigma"] {
		cfg.Sigma = o.sigma
	}
	if set["support"] {
		cfg.SupportScale = o.support
	}
	if set["beta"] {
		cfg.Beta = o.beta
	}
	if set["renormalize"] {
		cfg.RenormalizeKernel = o.renormalize
	}
	if set["normalize"] {
		cfg.NormalizeDensity = o.normalize
	}
	if set["potential"] {
		t, err := potential.ParseType(o.potential)
		if err != nil {
			return cfg, err
		}
		cfg.Potential = t.Func()
	}
	if set["kernel"] {
		t, err := kernel.ParseType(o.kernel)
		if err != nil {
			return cfg, err
		}
		cfg.Kernel = t.Func()
	}
	if set["method"] {
		m, err := conv.ParseMethod(o.method)
		if err != nil {
			return cfg, err
		}
		cfg.Method = m
	}
	return cfg, nil
}

func writeOutput(o options, set map[string]bool, res *smooth.Result, stdout io.Writer) (err error) {
	// The kernel table is a diagnostic and always goes to stdout, ahead of
	// the result table wherever that is written.
	if o.kernelTable {
		kopts := []report.Option{report.WithPrecision(o.precision)}
		if o.header {
			kopts = append(kopts, report.WithHeader())
		}
		if err := report.WriteKernel(stdout, res.Kernel, kopts...); err != nil {
			return err
		}
	}

	w := stdout
	var opts []report.Option
	if o.output != "" {
		f, cerr := os.Create(o.output)
		if cerr != nil {
			return fmt.Errorf("failed to open output file: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		w = f
		opts = report.FileOptions()
	}
	if set["precision"] || o.output == "" {
		opts = append(opts, report.WithPrecision(o.precision))
	}
	if o.header {
		opts = append(opts, report.WithHeader())
	}

	return report.WriteTable(w, res, opts...)
}

func printList(w io.Writer) {
	fmt.Fprintln(w, "potentials:")
	for _, n := range potential.Names() {
		fmt.Fprintf(w, "  %s\n", n)
	}
	fmt.Fprintln(w, "kernels:")
	for _, n := range kernel.Names() {
		fmt.Fprintf(w, "  %s\n", n)
	}
	fmt.Fprintln(w, "methods:")
	for m := conv.MethodDirect; m <= conv.MethodAuto; m++ {
		fmt.Fprintf(w, "  %s\n", m)
	}
}

func printSummary(w io.Writer, res *smooth.Result) error {
	in, out := res.Mass()
	raw := profile.Calculate(res.Potential)
	rec := profile.Calculate(res.Recovered)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "points\t%d\n", res.Len())
	fmt.Fprintf(tw, "kernel taps\t%d\n", res.Kernel.Len())
	fmt.Fprintf(tw, "kernel mass\t%.6f\n", res.Kernel.Mass())
	fmt.Fprintf(tw, "density mass\t%.6f -> %.6f\n", in, out)
	fmt.Fprintf(tw, "non-finite recovered\t%d\n", rec.Length-rec.Finite)
	fmt.Fprintf(tw, "\t\n")
	fmt.Fprintf(tw, "Profile\tMin\tx(Min)\tMax\tBarrier L\tBarrier R\n")
	fmt.Fprintf(tw, "-------\t---\t------\t---\t---------\t---------\n")
	summaryRow(tw, "raw", res, res.Potential, raw)
	summaryRow(tw, "recovered", res, res.Recovered, rec)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func summaryRow(w io.Writer, label string, res *smooth.Result, y []float64, s profile.Stats) {
	// No finite sample: there is no minimum to place on the grid.
	if s.Finite == 0 {
		fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\n", label)
		return
	}

	left, right := "-", "-"
	if b, ok := profile.Wells(y); ok {
		left = fmt.Sprintf("%.6f", b.HeightLeft)
		right = fmt.Sprintf("%.6f", b.HeightRight)
	}
	fmt.Fprintf(w, "%s\t%.6f\t%.4f\t%.6f\t%s\t%s\n",
		label, s.Min, res.X(s.MinPos), s.Max, left, right)
}
