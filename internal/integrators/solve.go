package integrators

import (
	"math"

	"github.com/san-kum/phaseplot/internal/dynamo"
)

// Options controls Solve. Zero values select the defaults noted per field.
type Options struct {
	// Tolerance bounds the local error of adaptive steppers
	// (default dynamo.DefaultTolerance).
	Tolerance dynamo.Tolerance

	// InitialStep, if > 0, is the size of the first adaptive trial step.
	// Otherwise one hundredth of the whole time span is tried first.
	InitialStep float64

	// MinStep, if > 0, is the smallest adaptive step before giving up with
	// dynamo.ErrStepTooSmall (default 1e-12 of the time span).
	MinStep float64

	// MaxSteps, if > 0, caps accepted plus rejected steps (default 500000).
	MaxSteps int

	// Substeps is the number of fixed steps per sample interval for
	// non-adaptive steppers (default 10).
	Substeps int
}

const (
	defaultMaxSteps = 500000
	defaultSubsteps = 10
)

// Statistics describes the work done by one Solve call.
type Statistics struct {
	Steps       int
	Rejected    int
	Evaluations int
}

type countingSystem struct {
	dynamo.System
	evals int
}

func (c *countingSystem) Derive(x dynamo.State, t float64) dynamo.State {
	c.evals++
	return c.System.Derive(x, t)
}

// Solve integrates dyn from x0, given at times[0], through every later entry
// of times and returns one state per entry. times must be monotone; it may run
// backward. Adaptive steppers land exactly on each sample time. On failure the
// states computed so far are returned together with a *dynamo.IntegrationError.
func Solve(dyn dynamo.System, stepper dynamo.Stepper, x0 dynamo.State, times []float64, opts Options) (states []dynamo.State, stats Statistics, err error) {
	if len(times) == 0 {
		return nil, stats, nil
	}
	if len(x0) != dyn.StateDim() {
		return nil, stats, &dynamo.IntegrationError{Time: times[0], State: x0.Clone(), Wrapped: dynamo.ErrDimensionMismatch}
	}
	if !x0.IsValid() {
		return nil, stats, &dynamo.IntegrationError{Time: times[0], State: x0.Clone(), Wrapped: dynamo.ErrInvalidState}
	}

	opts = opts.withDefaults(times)
	counter := &countingSystem{System: dyn}
	defer func() { stats.Evaluations = counter.evals }()

	states = make([]dynamo.State, 1, len(times))
	states[0] = x0.Clone()

	adaptive, isAdaptive := stepper.(dynamo.AdaptiveStepper)
	s := &solver{
		dyn:   counter,
		opts:  opts,
		stats: &stats,
		h:     opts.InitialStep,
	}

	x := x0.Clone()
	for i := 1; i < len(times); i++ {
		if isAdaptive {
			x, err = s.adaptiveInterval(adaptive, x, times[i-1], times[i])
		} else {
			x, err = s.fixedInterval(stepper, x, times[i-1], times[i])
		}
		if err != nil {
			return states, stats, err
		}
		states = append(states, x.Clone())
	}

	return states, stats, nil
}

func (o Options) withDefaults(times []float64) Options {
	span := math.Abs(times[len(times)-1] - times[0])
	if o.Tolerance.Abs <= 0 && o.Tolerance.Rel <= 0 {
		o.Tolerance = dynamo.DefaultTolerance()
	}
	if o.MinStep <= 0 {
		o.MinStep = 1e-12 * math.Max(1, span)
	}
	if o.InitialStep <= 0 {
		o.InitialStep = math.Max(span/100, o.MinStep)
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = defaultMaxSteps
	}
	if o.Substeps <= 0 {
		o.Substeps = defaultSubsteps
	}
	return o
}

type solver struct {
	dyn   *countingSystem
	opts  Options
	stats *Statistics
	h     float64 // magnitude of the next adaptive trial step
}

func (s *solver) fail(t float64, x dynamo.State, cause error) error {
	return &dynamo.IntegrationError{
		Step:    s.stats.Steps,
		Time:    t,
		State:   x.Clone(),
		Wrapped: cause,
	}
}

// cause distinguishes a singular right-hand side from a plain blow-up.
func (s *solver) cause(x dynamo.State, t float64, fallback error) error {
	if !s.dyn.Derive(x, t).IsValid() {
		return dynamo.ErrSingularField
	}
	return fallback
}

func (s *solver) adaptiveInterval(stepper dynamo.AdaptiveStepper, x dynamo.State, ta, tb float64) (dynamo.State, error) {
	dir := 1.0
	if tb < ta {
		dir = -1.0
	}

	t := ta
	for t != tb {
		if s.stats.Steps+s.stats.Rejected >= s.opts.MaxSteps {
			return x, s.fail(t, x, dynamo.ErrMaxSteps)
		}

		remaining := math.Abs(tb - t)
		h := s.h
		clipped := false
		if h >= remaining {
			h = remaining
			clipped = true
		}

		xNew, errNorm, dtNew := stepper.StepAdaptive(s.dyn, x, t, dir*h, s.opts.Tolerance)

		if !xNew.IsValid() || math.IsNaN(errNorm) || math.IsInf(errNorm, 0) {
			s.stats.Rejected++
			s.h = h * 0.2
			if s.h < s.opts.MinStep {
				return x, s.fail(t, x, s.cause(x, t, dynamo.ErrInvalidState))
			}
			continue
		}

		if errNorm > 1 {
			s.stats.Rejected++
			s.h = math.Abs(dtNew)
			if s.h < s.opts.MinStep {
				return x, s.fail(t, x, s.cause(x, t, dynamo.ErrStepTooSmall))
			}
			continue
		}

		x = xNew
		s.stats.Steps++
		if clipped {
			t = tb
			s.h = math.Max(s.h, math.Abs(dtNew))
		} else {
			t += dir * h
			s.h = math.Abs(dtNew)
		}
	}

	return x, nil
}

func (s *solver) fixedInterval(stepper dynamo.Stepper, x dynamo.State, ta, tb float64) (dynamo.State, error) {
	n := s.opts.Substeps
	dt := (tb - ta) / float64(n)

	for k := 0; k < n; k++ {
		if s.stats.Steps >= s.opts.MaxSteps {
			return x, s.fail(ta+float64(k)*dt, x, dynamo.ErrMaxSteps)
		}
		t := ta + float64(k)*dt
		next := stepper.Step(s.dyn, x, t, dt)
		if !next.IsValid() {
			return x, s.fail(t, x, s.cause(x, t, dynamo.ErrInvalidState))
		}
		x = next
		s.stats.Steps++
	}

	return x, nil
}
