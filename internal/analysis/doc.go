// Package analysis characterises what a phase portrait shows.
//
//   - [Classify]: equilibrium type from the eigenvalues of the Jacobian
//   - [Refine]: Newton iteration toward a nearby equilibrium
//   - [Sweep]: equilibrium type across a parameter range
//   - [DominantPeriod]: oscillation period of a sampled trajectory
//   - [LyapunovExponent]: average separation rate of nearby trajectories
//   - [Crossings]: section points where a trajectory crosses a line
//   - [ToASCII]: quick text rendering of trajectories
//
// # Linearisation
//
// The Jacobian is estimated with central differences, so Classify works for
// any field, not just linear ones:
//
//	eq, err := analysis.Classify(sys.Field(), field.Point{}, 0)
//	if err == nil && eq.Kind == analysis.Saddle {
//	    // unstable, with one stable direction
//	}
package analysis
