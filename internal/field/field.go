package field

import (
	"github.com/san-kum/phaseplot/internal/dynamo"
)

// Func is one component of a vector field. Autonomous fields ignore t.
type Func func(x, y, t float64) float64

// Field is the planar vector field (dx/dt, dy/dt) = (F1, F2).
type Field struct {
	f1, f2   Func
	autonomy bool
}

// New builds a time-independent field. Time is threaded through Evaluate and
// ignored.
func New(f1, f2 func(x, y float64) float64) Field {
	return Field{
		f1:       func(x, y, _ float64) float64 { return f1(x, y) },
		f2:       func(x, y, _ float64) float64 { return f2(x, y) },
		autonomy: true,
	}
}

// NewTimeVarying builds a field whose components depend on time.
func NewTimeVarying(f1, f2 Func) Field {
	return Field{f1: f1, f2: f2}
}

// Autonomous reports whether the field ignores time.
func (f Field) Autonomous() bool { return f.autonomy }

// Valid reports whether both component functions are set.
func (f Field) Valid() bool { return f.f1 != nil && f.f2 != nil }

func (f Field) Evaluate(x, y, t float64) (dx, dy float64) {
	return f.f1(x, y, t), f.f2(x, y, t)
}

// EvaluateGrid applies the field over the meshgrid xs × ys. The results are
// indexed [j][i] for ys[j], xs[i], the layout numpy's meshgrid produces.
func (f Field) EvaluateGrid(xs, ys []float64, t float64) (dx, dy [][]float64) {
	dx = make([][]float64, len(ys))
	dy = make([][]float64, len(ys))
	for j, y := range ys {
		dx[j] = make([]float64, len(xs))
		dy[j] = make([]float64, len(xs))
		for i, x := range xs {
			dx[j][i], dy[j][i] = f.Evaluate(x, y, t)
		}
	}
	return dx, dy
}

func (f Field) StateDim() int { return 2 }

// Derive implements dynamo.System.
func (f Field) Derive(s dynamo.State, t float64) dynamo.State {
	dx, dy := f.Evaluate(s[0], s[1], t)
	return dynamo.State{dx, dy}
}
