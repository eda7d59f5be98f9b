// Package portrait assembles a phase portrait: a vector field over a fixed
// viewport, the direction-field grid, trajectories through user-supplied
// initial conditions, and point and circle annotations.
//
// A Model is built once with New and then only grows through its Add
// methods. Computing artifacts never mutates it, so repeated calls return
// identical results. The Add methods are not safe for concurrent use; the
// Compute methods may run concurrently with each other.
//
// Failures are local. An initial condition whose integration fails reports
// the error in its Result and the remaining conditions are still computed.
package portrait
