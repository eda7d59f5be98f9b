// Package dynamo provides the numeric primitives shared by the phase-portrait
// core.
//
// The package defines the fundamental interfaces and types used to integrate
// planar ordinary differential equations dX/dt = f(X, t):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE right-hand sides
//   - [Stepper]: single-step numerical integrator
//   - [AdaptiveStepper]: stepper with an embedded error estimate
//   - [IntegrationError]: failure of one integration branch
//
// # Example
//
//	f := field.New(func(x, y float64) float64 { return y },
//		func(x, y float64) float64 { return -x })
//	next := integrators.NewRK4().Step(f, dynamo.State{2, 0}, 0, 0.01)
//
// # Thread Safety
//
// Systems and steppers in this module hold no per-call state, so a single
// value may be shared across goroutines integrating independent trajectories.
package dynamo
