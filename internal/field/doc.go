// Package field defines planar vector fields, the viewing window and time
// domain they are studied over, and the direction-field sampler that turns a
// field into a grid of unit arrows.
//
// A [Field] wraps two scalar component functions. It is immutable and safe
// for concurrent use, and it satisfies [dynamo.System] so the integrators can
// consume it directly:
//
//	f := field.New(
//		func(x, y float64) float64 { return y },
//		func(x, y float64) float64 { return -x },
//	)
//	grid, err := field.NewSampler(f, vp).Sample(15, 15)
//
// Evaluation never panics on singular points. NaN and infinite components are
// passed through; the sampler keeps them on the affected sample so renderers
// can mask it.
package field
