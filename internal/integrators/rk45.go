package integrators

import (
	"math"

	"github.com/san-kum/phaseplot/internal/dynamo"
)

// tableau is an explicit embedded Runge-Kutta pair. Row i of a holds the
// weights of stages 0..i-1 for stage i. err holds b - b̂, the difference
// between the propagated and the embedded weights, one entry per stage.
type tableau struct {
	c   []float64
	a   [][]float64
	b   []float64
	err []float64
}

// dormandPrince is DOPRI5. The last stage is evaluated at the new state, so
// its derivative could seed the next step (FSAL); Solve does not reuse it.
var dormandPrince = tableau{
	c: []float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1},
	a: [][]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	},
	b: []float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0},
	err: []float64{
		35.0/384 - 5179.0/57600,
		0,
		500.0/1113 - 7571.0/16695,
		125.0/192 - 393.0/640,
		-2187.0/6784 + 92097.0/339200,
		11.0/84 - 187.0/2100,
		-1.0 / 40,
	},
}

// stages evaluates every stage derivative for a step of size dt from x.
func (tb *tableau) stages(dyn dynamo.System, x dynamo.State, t, dt float64) []dynamo.State {
	k := make([]dynamo.State, len(tb.c))
	for i := range k {
		xi := x
		for j, aij := range tb.a[i] {
			if aij != 0 {
				xi = xi.Axpy(dt*aij, k[j])
			}
		}
		k[i] = dyn.Derive(xi, t+tb.c[i]*dt)
	}
	return k
}

func combine(x dynamo.State, dt float64, w []float64, k []dynamo.State) dynamo.State {
	out := x
	for i, wi := range w {
		if wi != 0 {
			out = out.Axpy(dt*wi, k[i])
		}
	}
	return out
}

// RK45 is the Dormand-Prince 5(4) embedded pair. The fifth-order solution is
// propagated and the fourth-order one only feeds the error estimate.
type RK45 struct {
	tab      *tableau
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		tab:      &dormandPrince,
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) Order() int { return 5 }

func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	newX, _, _ := r.StepAdaptive(dyn, x, t, dt, dynamo.DefaultTolerance())
	return newX
}

// StepAdaptive takes one trial step of size dt (negative dt integrates
// backward in time). It returns the candidate state, the RMS error scaled by
// tol, and the step size suggested for the next attempt, carrying the sign of
// dt. The caller decides whether to accept the step.
func (r *RK45) StepAdaptive(dyn dynamo.System, x dynamo.State, t, dt float64, tol dynamo.Tolerance) (dynamo.State, float64, float64) {
	k := r.tab.stages(dyn, x, t, dt)
	xNew := combine(x, dt, r.tab.b, k)
	errEst := combine(make(dynamo.State, len(x)), dt, r.tab.err, k)

	errRatio := scaledRMS(errEst, x, xNew, tol)
	return xNew, errRatio, dt * r.stepFactor(errRatio)
}

// scaledRMS is the root mean square of e measured against the mixed
// tolerance of the larger of the old and new states.
func scaledRMS(e, x, xNew dynamo.State, tol dynamo.Tolerance) float64 {
	if len(e) == 0 {
		return 0
	}
	sum := 0.0
	for i := range e {
		scale := tol.Abs + tol.Rel*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		if scale == 0 {
			scale = 1e-300
		}
		q := e[i] / scale
		sum += q * q
	}
	return math.Sqrt(sum / float64(len(e)))
}

// stepFactor shrinks rejected steps with the fourth-order exponent and grows
// accepted ones with the fifth-order exponent, within [minScale, maxScale].
func (r *RK45) stepFactor(errRatio float64) float64 {
	switch {
	case errRatio > 1:
		return math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
	case errRatio > 0:
		return math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	default:
		return r.maxScale
	}
}
