package integrators

import "github.com/san-kum/phaseplot/internal/dynamo"

// Euler is the explicit first-order method. Only useful for comparison.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (Euler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return x.Axpy(dt, dyn.Derive(x, t))
}
