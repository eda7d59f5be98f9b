package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/phaseplot/internal/analysis"
	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/systems"
	"github.com/san-kum/phaseplot/internal/trajectory"
	"github.com/spf13/cobra"
)

var (
	x0, y0       float64
	tStart, tEnd float64
	samples      int
	method       string
	paramFlags   map[string]string
	plotWidth    int
	plotHeight   int
)

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace [system]",
		Short: "integrate one initial condition and chart x(t), y(t)",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrace,
	}
	cmd.Flags().Float64Var(&x0, "x0", 1, "initial x")
	cmd.Flags().Float64Var(&y0, "y0", 0, "initial y")
	cmd.Flags().Float64Var(&tStart, "t-start", -10, "time domain start (<= 0)")
	cmd.Flags().Float64Var(&tEnd, "t-end", 10, "time domain end (>= 0)")
	cmd.Flags().IntVar(&samples, "samples", 0, "time samples (0 = settings)")
	cmd.Flags().StringVar(&method, "method", "", "integrator: euler, rk4, rk45")
	cmd.Flags().StringToStringVar(&paramFlags, "param", nil, "system parameter, e.g. --param mu=2")
	cmd.Flags().IntVar(&plotWidth, "width", 80, "chart width")
	cmd.Flags().IntVar(&plotHeight, "height", 12, "chart height")
	return cmd
}

func runTrace(cmd *cobra.Command, args []string) error {
	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}
	sys, err := systems.Lookup(args[0], params)
	if err != nil {
		return err
	}
	dom, err := field.NewTimeDomain(tStart, tEnd)
	if err != nil {
		return err
	}

	opts := settings.Integration
	if samples > 0 {
		opts.Samples = samples
	}
	if method != "" {
		opts.Method = method
	}

	tr, err := trajectory.Integrate(sys.Field(), field.Point{X: x0, Y: y0}, dom, opts)
	times, path := tr.Chronological()
	if len(path) < 2 {
		if err != nil {
			return err
		}
		return fmt.Errorf("trajectory has %d samples; widen the time domain", len(path))
	}

	xs := make([]float64, len(path))
	ys := make([]float64, len(path))
	for k, p := range path {
		xs[k], ys[k] = p.X, p.Y
	}

	fmt.Println(asciigraph.PlotMany([][]float64{xs, ys},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption(fmt.Sprintf("%s: x(t) red, y(t) blue, t in [%g, %g]", sys.Name(), times[0], times[len(times)-1])),
	))
	fmt.Println()
	fmt.Print(analysis.ToASCII(nil, plotWidth, plotHeight*2, path))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BRANCH\tSAMPLES\tSTEPS\tREJECTED\tEVALS\tSTATUS")
	for _, b := range []struct {
		name string
		br   trajectory.Branch
	}{{trajectory.NegativeBranch, tr.Negative}, {trajectory.PositiveBranch, tr.Positive}} {
		status := "ok"
		if b.br.Err != nil {
			status = b.br.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n", b.name, b.br.Len(), b.br.Stats.Steps, b.br.Stats.Rejected, b.br.Stats.Evaluations, status)
	}
	w.Flush()

	if crossings, _ := analysis.Crossings(tr.Positive.Times, tr.Positive.Points, 0); len(crossings) > 1 {
		fmt.Printf("\nx = 0 upward crossings: %d, mean period %.4g\n", len(crossings), (crossings[len(crossings)-1]-crossings[0])/float64(len(crossings)-1))
	}
	return nil
}

func parseParams(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("--param %s=%s: %w", k, v, err)
		}
		out[k] = f
	}
	return out, nil
}
