package dynamo

import (
	"math"
)

// State is a point in phase space. Planar systems use two components.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	return math.Sqrt(dot(s, s))
}

// Distance is the Euclidean distance to o over their common components.
func (s State) Distance(o State) float64 {
	d := s.Sub(o)
	return d.Norm()
}

// Sub returns s - o. Components missing from o count as zero.
func (s State) Sub(o State) State {
	return s.Axpy(-1, o)
}

// Axpy returns s + a*v as a new state. Components missing from v count as
// zero.
func (s State) Axpy(a float64, v State) State {
	out := s.Clone()
	for i := range out[:min(len(out), len(v))] {
		out[i] += a * v[i]
	}
	return out
}

func dot(a, b State) float64 {
	sum := 0.0
	for i := range a[:min(len(a), len(b))] {
		sum += a[i] * b[i]
	}
	return sum
}

// System is the right-hand side of dX/dt = f(X, t). Implementations must be
// safe to call from several goroutines at once.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Stepper interface {
	Step(dyn System, x State, t, dt float64) State
}

// AdaptiveStepper advances one step and reports the scaled local error
// (accepted when <= 1) together with a suggested next step size.
type AdaptiveStepper interface {
	Stepper
	StepAdaptive(dyn System, x State, t, dt float64, tol Tolerance) (State, float64, float64)
	Order() int
}

// Tolerance mixes absolute and relative error bounds per component.
type Tolerance struct {
	Abs float64
	Rel float64
}

func DefaultTolerance() Tolerance {
	return Tolerance{Abs: 1e-10, Rel: 1e-8}
}

// Configurable systems expose named scalar parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
