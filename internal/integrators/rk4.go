package integrators

import "github.com/san-kum/phaseplot/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta stepper. It holds no state, so
// one value can drive several trajectories at once.
type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	half := dt / 2
	k1 := dyn.Derive(x, t)
	k2 := dyn.Derive(x.Axpy(half, k1), t+half)
	k3 := dyn.Derive(x.Axpy(half, k2), t+half)
	k4 := dyn.Derive(x.Axpy(dt, k3), t+dt)

	out := x.Axpy(dt/6, k1)
	out = out.Axpy(dt/3, k2)
	out = out.Axpy(dt/3, k3)
	return out.Axpy(dt/6, k4)
}
