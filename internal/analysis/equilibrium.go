package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/phaseplot/internal/field"
	"gonum.org/v1/gonum/mat"
)

// Kind is the qualitative type of an equilibrium.
type Kind int

const (
	NonHyperbolic Kind = iota
	StableNode
	UnstableNode
	Saddle
	StableFocus
	UnstableFocus
	Center
)

func (k Kind) String() string {
	switch k {
	case StableNode:
		return "stable node"
	case UnstableNode:
		return "unstable node"
	case Saddle:
		return "saddle"
	case StableFocus:
		return "stable focus"
	case UnstableFocus:
		return "unstable focus"
	case Center:
		return "center"
	}
	return "non-hyperbolic"
}

var (
	ErrNotEquilibrium = errors.New("analysis: field does not vanish at point")
	ErrNoConvergence  = errors.New("analysis: equilibrium search did not converge")
)

const (
	// EquilibriumTolerance bounds |f(p)| for p to count as an equilibrium.
	EquilibriumTolerance = 1e-6
	eigenTolerance       = 1e-9
	jacobianStep         = 1e-6
)

type Equilibrium struct {
	Point       field.Point
	Kind        Kind
	Eigenvalues [2]complex128
	Trace       float64
	Det         float64
}

func (e Equilibrium) Stable() bool {
	return e.Kind == StableNode || e.Kind == StableFocus
}

// Jacobian estimates Df at p with central differences.
func Jacobian(f field.Field, p field.Point, t float64) *mat.Dense {
	hx := jacobianStep * math.Max(1, math.Abs(p.X))
	hy := jacobianStep * math.Max(1, math.Abs(p.Y))

	f1xp, f2xp := f.Evaluate(p.X+hx, p.Y, t)
	f1xm, f2xm := f.Evaluate(p.X-hx, p.Y, t)
	f1yp, f2yp := f.Evaluate(p.X, p.Y+hy, t)
	f1ym, f2ym := f.Evaluate(p.X, p.Y-hy, t)

	return mat.NewDense(2, 2, []float64{
		(f1xp - f1xm) / (2 * hx), (f1yp - f1ym) / (2 * hy),
		(f2xp - f2xm) / (2 * hx), (f2yp - f2ym) / (2 * hy),
	})
}

// Classify linearises f at p and names the equilibrium.
func Classify(f field.Field, p field.Point, t float64) (Equilibrium, error) {
	dx, dy := f.Evaluate(p.X, p.Y, t)
	if r := math.Hypot(dx, dy); !(r <= EquilibriumTolerance) {
		return Equilibrium{Point: p}, fmt.Errorf("%w: |f(%g, %g)| = %g", ErrNotEquilibrium, p.X, p.Y, r)
	}

	j := Jacobian(f, p, t)
	var eig mat.Eigen
	if !eig.Factorize(j, mat.EigenNone) {
		return Equilibrium{Point: p}, fmt.Errorf("analysis: eigen decomposition failed at (%g, %g)", p.X, p.Y)
	}
	vals := eig.Values(nil)

	eq := Equilibrium{
		Point:       p,
		Eigenvalues: [2]complex128{vals[0], vals[1]},
		Trace:       mat.Trace(j),
		Det:         mat.Det(j),
	}
	eq.Kind = kindOf(eq.Eigenvalues)
	return eq, nil
}

func kindOf(ev [2]complex128) Kind {
	re0, re1 := real(ev[0]), real(ev[1])
	complexPair := math.Abs(imag(ev[0])) > eigenTolerance

	if complexPair {
		switch {
		case math.Abs(re0) <= eigenTolerance:
			return Center
		case re0 < 0:
			return StableFocus
		default:
			return UnstableFocus
		}
	}

	if math.Abs(re0) <= eigenTolerance || math.Abs(re1) <= eigenTolerance {
		return NonHyperbolic
	}
	switch {
	case re0 < 0 && re1 < 0:
		return StableNode
	case re0 > 0 && re1 > 0:
		return UnstableNode
	}
	return Saddle
}

// Refine runs Newton's method from guess until |f| falls below
// EquilibriumTolerance.
func Refine(f field.Field, guess field.Point, t float64, maxIter int) (field.Point, error) {
	p := guess
	for i := 0; i < maxIter; i++ {
		dx, dy := f.Evaluate(p.X, p.Y, t)
		if math.Hypot(dx, dy) <= EquilibriumTolerance {
			return p, nil
		}

		var step mat.VecDense
		if err := step.SolveVec(Jacobian(f, p, t), mat.NewVecDense(2, []float64{-dx, -dy})); err != nil {
			return p, fmt.Errorf("%w: singular Jacobian at (%g, %g)", ErrNoConvergence, p.X, p.Y)
		}
		p.X += step.AtVec(0)
		p.Y += step.AtVec(1)
		if !p.IsFinite() {
			break
		}
	}
	return p, fmt.Errorf("%w after %d iterations from (%g, %g)", ErrNoConvergence, maxIter, guess.X, guess.Y)
}

// Spiral reports the angular frequency of a focus or center, or 0.
func (e Equilibrium) Spiral() float64 {
	return math.Abs(imag(e.Eigenvalues[0]))
}

// Rate is the largest real part among the eigenvalues.
func (e Equilibrium) Rate() float64 {
	return math.Max(real(e.Eigenvalues[0]), real(e.Eigenvalues[1]))
}

func (e Equilibrium) String() string {
	return fmt.Sprintf("%s at (%.4g, %.4g), eigenvalues %.4g, %.4g",
		e.Kind, e.Point.X, e.Point.Y, roundC(e.Eigenvalues[0]), roundC(e.Eigenvalues[1]))
}

func roundC(c complex128) complex128 {
	if cmplx.IsNaN(c) {
		return c
	}
	r := func(v float64) float64 {
		if math.Abs(v) < eigenTolerance {
			return 0
		}
		return v
	}
	return complex(r(real(c)), r(imag(c)))
}
