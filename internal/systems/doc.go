// Package systems is a catalog of planar dynamical systems that can be drawn
// as phase portraits.
//
// Each system holds its parameters and implements [dynamo.Configurable]. The
// vector field it hands out through Field is a snapshot: changing a parameter
// afterwards does not affect fields already built.
//
//   - [Linear]: x' = Ax, including the harmonic oscillator and nodes
//   - [VanDerPol]: relaxation oscillator with a limit cycle
//   - [Duffing]: cubic stiffness oscillator, optionally periodically forced
//   - [Pendulum]: damped nonlinear pendulum
//   - [DoubleWell]: particle in a bistable potential
//   - [LotkaVolterra]: predator-prey populations
//
// Use [Lookup] to build a system by name:
//
//	sys, err := systems.Lookup("vanderpol", map[string]float64{"mu": 2})
//	f := sys.Field()
package systems
