// Package trajectory integrates a single initial condition forward and
// backward in time from t = 0.
package trajectory

import (
	"errors"
	"fmt"

	"github.com/san-kum/phaseplot/internal/dynamo"
	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/integrators"
)

const (
	NegativeBranch = "negative"
	PositiveBranch = "positive"
)

// Branch is one time direction of a trajectory. Points[k] is the state at
// Times[k]. A failed branch carries Err and no points.
type Branch struct {
	Times  []float64
	Points []field.Point
	Stats  integrators.Statistics
	Err    error
}

func (b Branch) Len() int { return len(b.Points) }

// Trajectory holds both halves of an integrated path. Negative runs outward
// from the sample nearest t = 0 toward the domain start; Positive runs from
// t = 0 to the domain end.
type Trajectory struct {
	Negative Branch
	Positive Branch
}

// Chronological returns the whole path in increasing time order.
func (tr Trajectory) Chronological() ([]float64, []field.Point) {
	n := tr.Negative.Len() + tr.Positive.Len()
	times := make([]float64, 0, n)
	points := make([]field.Point, 0, n)
	for k := tr.Negative.Len() - 1; k >= 0; k-- {
		times = append(times, tr.Negative.Times[k])
		points = append(points, tr.Negative.Points[k])
	}
	times = append(times, tr.Positive.Times...)
	points = append(points, tr.Positive.Points...)
	return times, points
}

// Err joins the branch errors.
func (tr Trajectory) Err() error {
	return errors.Join(tr.Negative.Err, tr.Positive.Err)
}

// Integrate computes both branches of the trajectory through x0. The branches
// are integrated independently from x0 at t = 0. A degenerate domain yields
// two empty branches. Branch failures are recorded on the branch and returned
// joined; the other branch is still computed.
func Integrate(sys dynamo.System, x0 field.Point, dom field.TimeDomain, opts Options) (Trajectory, error) {
	var tr Trajectory

	if sys.StateDim() != 2 {
		return tr, fmt.Errorf("trajectory: system has %d state variables: %w", sys.StateDim(), dynamo.ErrDimensionMismatch)
	}
	if !x0.IsFinite() {
		return tr, fmt.Errorf("trajectory: initial condition %v: %w", x0, field.ErrInvalidGeometry)
	}
	if err := dom.Validate(); err != nil {
		return tr, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return tr, err
	}
	stepper, err := integrators.ByName(opts.Method)
	if err != nil {
		return tr, err
	}

	neg, pos := Split(TimePoints(dom, opts.Samples))
	solveOpts := opts.solverOptions()

	tr.Negative = integrate(sys, stepper, x0, neg, solveOpts, NegativeBranch)
	tr.Positive = integrate(sys, stepper, x0, pos, solveOpts, PositiveBranch)

	return tr, tr.Err()
}

func integrate(sys dynamo.System, stepper dynamo.Stepper, x0 field.Point, times []float64, opts integrators.Options, name string) Branch {
	if len(times) == 0 {
		return Branch{}
	}

	// Both branches are anchored at x0, t = 0.
	grid := times
	anchored := times[0] != 0
	if anchored {
		grid = make([]float64, 0, len(times)+1)
		grid = append(grid, 0)
		grid = append(grid, times...)
	}

	states, stats, err := integrators.Solve(sys, stepper, x0.State(), grid, opts)
	if err != nil {
		var ie *dynamo.IntegrationError
		if errors.As(err, &ie) {
			ie.Branch = name
		}
		return Branch{Stats: stats, Err: err}
	}
	if anchored {
		states = states[1:]
	}

	b := Branch{
		Times:  append([]float64(nil), times...),
		Points: make([]field.Point, len(states)),
		Stats:  stats,
	}
	for k, s := range states {
		b.Points[k] = field.PointOf(s)
	}
	return b
}
