package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/phaseplot/internal/analysis"
	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/metrics"
	"github.com/san-kum/phaseplot/internal/portrait"
	"github.com/san-kum/phaseplot/internal/systems"
	"github.com/spf13/cobra"
)

var (
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	lyapDt     float64
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [preset|scene.yaml]",
		Short: "classify equilibria and measure trajectory periods",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	cmd.Flags().StringVar(&sweepParam, "sweep", "", "sweep a system parameter and track the first point's equilibrium")
	cmd.Flags().Float64Var(&sweepFrom, "from", -1, "sweep start")
	cmd.Flags().Float64Var(&sweepTo, "to", 1, "sweep end")
	cmd.Flags().IntVar(&sweepSteps, "steps", 21, "sweep steps")
	cmd.Flags().Float64Var(&lyapDt, "lyapunov-dt", 0.01, "step for the Lyapunov estimate (0 disables)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(args[0])
	if err != nil {
		return err
	}
	m, err := buildModel(scene)
	if err != nil {
		return err
	}
	f := m.Field()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINT\tEQUILIBRIUM\tKIND\tEIGENVALUES\tTRACE\tDET")
	for _, pt := range m.Points() {
		eq, err := classifyNear(f, pt.Point())
		if err != nil {
			fmt.Fprintf(w, "(%g, %g)\t-\t%v\t\t\t\n", pt.X, pt.Y, err)
			continue
		}
		fmt.Fprintf(w, "(%g, %g)\t(%.4g, %.4g)\t%s\t%.4g, %.4g\t%.4g\t%.4g\n",
			pt.X, pt.Y, eq.Point.X, eq.Point.Y, eq.Kind, eq.Eigenvalues[0], eq.Eigenvalues[1], eq.Trace, eq.Det)
	}
	w.Flush()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := m.ComputeTrajectoriesParallel(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	var energy metrics.Energy
	if sys, err := systems.Lookup(scene.System.Name, scene.System.Params); err == nil {
		if e, ok := sys.(energetic); ok {
			energy = e.Energy
		}
	}

	fmt.Fprintln(w, "INITIAL\tLABEL\tSAMPLES\tPERIOD\tLYAPUNOV\tARC\tIN VIEW\tENERGY DRIFT\tSTATUS")
	for _, r := range results {
		ms := []metrics.Metric{metrics.NewArcLength(), metrics.NewContainment(m.Viewport())}
		if energy != nil {
			ms = append(ms, metrics.NewEnergyDrift(energy))
		}
		times, path := r.Trajectory.Chronological()
		vals := metrics.Evaluate(times, path, ms...)
		drift := "-"
		if energy != nil {
			drift = fmt.Sprintf("%.3g", vals["energy_drift"])
		}

		period := "-"
		// The t = 0 anchor may sit off the even grid; skip it.
		if b := r.Trajectory.Positive; b.Len() > 1 {
			xs := make([]float64, b.Len()-1)
			for k, p := range b.Points[1:] {
				xs[k] = p.X
			}
			if T, err := analysis.DominantPeriod(b.Times[1:], xs); err == nil {
				period = fmt.Sprintf("%.4g", T)
			}
		}

		lyap := "-"
		if horizon := m.TimeDomain().End; lyapDt > 0 && horizon > 0 {
			lyap = fmt.Sprintf("%.4g", analysis.LyapunovExponent(f, r.Condition.Point().State(), lyapDt, horizon, 1e-8))
		}

		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		fmt.Fprintf(w, "(%g, %g)\t%s\t%d\t%s\t%s\t%.4g\t%.0f%%\t%s\t%s\n", r.Condition.X, r.Condition.Y, r.Condition.Label,
			len(path), period, lyap, vals["arc_length"], 100*vals["containment"], drift, status)
	}
	w.Flush()

	if sweepParam != "" {
		return runSweep(scene.System.Name, scene.System.Params, firstPoint(m.Points()))
	}
	return nil
}

// energetic systems conserve (or dissipate) an energy function.
type energetic interface {
	Energy(x, y float64) float64
}

// classifyNear classifies p, or the equilibrium Newton's method finds from
// p when p itself is not one.
func classifyNear(f field.Field, p field.Point) (analysis.Equilibrium, error) {
	eq, err := analysis.Classify(f, p, 0)
	if !errors.Is(err, analysis.ErrNotEquilibrium) {
		return eq, err
	}
	q, rerr := analysis.Refine(f, p, 0, 50)
	if rerr != nil {
		return eq, rerr
	}
	return analysis.Classify(f, q, 0)
}

func runSweep(system string, params map[string]float64, guess field.Point) error {
	sys, err := systems.Lookup(system, params)
	if err != nil {
		return err
	}
	points, err := analysis.Sweep(sys, sweepParam, sweepFrom, sweepTo, sweepSteps, guess)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tEQUILIBRIUM\tKIND\tRATE\n", sweepParam)
	for _, sp := range points {
		if sp.Err != nil {
			fmt.Fprintf(w, "%.4g\t-\t%v\t\n", sp.Param, sp.Err)
			continue
		}
		eq := sp.Equilibrium
		fmt.Fprintf(w, "%.4g\t(%.4g, %.4g)\t%s\t%.4g\n", sp.Param, eq.Point.X, eq.Point.Y, eq.Kind, eq.Rate())
	}
	w.Flush()

	for _, i := range analysis.Transitions(points) {
		fmt.Printf("%s -> %s between %s = %.4g and %.4g\n",
			points[i-1].Equilibrium.Kind, points[i].Equilibrium.Kind, sweepParam, points[i-1].Param, points[i].Param)
	}
	return nil
}

func firstPoint(points []portrait.PointAnnotation) field.Point {
	if len(points) == 0 {
		return field.Point{}
	}
	return points[0].Point()
}
