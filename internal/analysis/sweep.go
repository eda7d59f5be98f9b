package analysis

import (
	"fmt"

	"github.com/san-kum/phaseplot/internal/dynamo"
	"github.com/san-kum/phaseplot/internal/field"
	"gonum.org/v1/gonum/floats"
)

// Tunable is a parameterised system that can produce its field.
type Tunable interface {
	dynamo.Configurable
	Field() field.Field
}

type SweepPoint struct {
	Param       float64
	Equilibrium Equilibrium
	Err         error
}

// Sweep classifies the equilibrium near guess for steps values of param
// spread over [lo, hi]. The equilibrium is re-located with Refine at every
// step starting from the previous one. The original parameter value is
// restored before returning.
func Sweep(sys Tunable, param string, lo, hi float64, steps int, guess field.Point) ([]SweepPoint, error) {
	orig, ok := sys.GetParams()[param]
	if !ok {
		return nil, fmt.Errorf("analysis: system has no parameter %q", param)
	}
	if steps < 2 {
		steps = 2
	}
	defer func() { _ = sys.SetParam(param, orig) }()

	values := floats.Span(make([]float64, steps), lo, hi)
	out := make([]SweepPoint, 0, steps)
	p := guess
	for _, v := range values {
		if err := sys.SetParam(param, v); err != nil {
			return out, err
		}
		f := sys.Field()

		sp := SweepPoint{Param: v}
		found, err := Refine(f, p, 0, 50)
		if err != nil {
			sp.Err = err
			out = append(out, sp)
			continue
		}
		p = found
		sp.Equilibrium, sp.Err = Classify(f, found, 0)
		out = append(out, sp)
	}
	return out, nil
}

// Transitions returns the indices where the equilibrium kind changes.
func Transitions(points []SweepPoint) []int {
	var idx []int
	for i := 1; i < len(points); i++ {
		if points[i].Err == nil && points[i-1].Err == nil &&
			points[i].Equilibrium.Kind != points[i-1].Equilibrium.Kind {
			idx = append(idx, i)
		}
	}
	return idx
}
