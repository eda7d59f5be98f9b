package portrait

import (
	"context"
	"time"

	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/trajectory"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one initial condition. Err is non-nil when
// either branch failed; the other branch is still populated.
type Result struct {
	Condition  InitialCondition
	Trajectory trajectory.Trajectory
	Err        error
}

// ClippedPositive returns the forward-time samples that fall inside vp.
func (r Result) ClippedPositive(vp field.Viewport) []field.Point {
	return Clip(vp, r.Trajectory.Positive.Points)
}

// Artifacts is everything a renderer or exporter needs.
type Artifacts struct {
	Viewport     field.Viewport
	TimeDomain   field.TimeDomain
	Field        *field.Grid
	Trajectories []Result
	Points       []PointAnnotation
	Circles      []CircleAnnotation
}

// ComputeTrajectories integrates every initial condition in insertion order.
// Cancellation is checked between conditions; the results finished so far are
// returned with the context error.
func (m *Model) ComputeTrajectories(ctx context.Context) ([]Result, error) {
	conds := m.InitialConditions()
	results := make([]Result, 0, len(conds))
	for i, ic := range conds {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, m.integrate(i, ic))
	}
	return results, nil
}

// ComputeTrajectoriesParallel returns the same results as
// ComputeTrajectories, integrating up to the configured number of conditions
// at once.
func (m *Model) ComputeTrajectoriesParallel(ctx context.Context) ([]Result, error) {
	conds := m.InitialConditions()
	results := make([]Result, len(conds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, ic := range conds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = m.integrate(i, ic)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (m *Model) integrate(idx int, ic InitialCondition) Result {
	dom := m.domain
	if ic.Domain != nil {
		dom = *ic.Domain
	}

	start := time.Now()
	tr, err := trajectory.Integrate(m.field, ic.Point(), dom, m.trajOpts)
	fields := []zap.Field{
		zap.Int("index", idx),
		zap.Float64("x0", ic.X),
		zap.Float64("y0", ic.Y),
		zap.Float64("t_start", dom.Start),
		zap.Float64("t_end", dom.End),
		zap.Int("negative_points", tr.Negative.Len()),
		zap.Int("positive_points", tr.Positive.Len()),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		m.logger.Warn("Trajectory integration failed.", append(fields, zap.Error(err))...)
	} else {
		m.logger.Debug("Trajectory integrated.", fields...)
	}

	return Result{Condition: ic, Trajectory: tr, Err: err}
}

// Compute samples the direction field and integrates all trajectories.
func (m *Model) Compute(ctx context.Context, nx, ny int) (*Artifacts, error) {
	grid, err := m.DirectionField(nx, ny)
	if err != nil {
		return nil, err
	}

	var results []Result
	if m.workers > 1 {
		results, err = m.ComputeTrajectoriesParallel(ctx)
	} else {
		results, err = m.ComputeTrajectories(ctx)
	}
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	m.logger.Info("Phase portrait computed.",
		zap.Int("grid_x", nx),
		zap.Int("grid_y", ny),
		zap.Int("trajectories", len(results)),
		zap.Int("failed", failed),
		zap.Int("points", len(m.points)),
		zap.Int("circles", len(m.circles)),
	)

	return &Artifacts{
		Viewport:     m.viewport,
		TimeDomain:   m.domain,
		Field:        grid,
		Trajectories: results,
		Points:       m.Points(),
		Circles:      m.Circles(),
	}, nil
}
