package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/phaseplot/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// DefaultResolution is the quiver density used when a caller does not choose
// one.
const DefaultResolution = 15

// ErrInvalidResolution is returned for grids with fewer than two columns or
// rows.
var ErrInvalidResolution = errors.New("field: grid resolution must be at least 2x2")

// parallelRows is the row count above which Sample fans out.
const parallelRows = 64

// Sample is one arrow of the direction field. DX, DY is the unit direction,
// or (0, 0) where the raw magnitude is exactly zero. Magnitude is the raw
// hypot of the field vector.
type Sample struct {
	X, Y      float64
	DX, DY    float64
	Magnitude float64
}

// Singular reports whether the field was NaN or infinite at this sample.
func (s Sample) Singular() bool {
	return !finite(s.DX) || !finite(s.DY) || !finite(s.Magnitude)
}

// Equilibrium reports whether the field vanished exactly at this sample.
func (s Sample) Equilibrium() bool { return s.Magnitude == 0 }

// Grid is an Nx × Ny direction field, stored row-major: Samples[j*Nx+i]
// holds the arrow at (Xs[i], Ys[j]).
type Grid struct {
	Nx, Ny  int
	Xs, Ys  []float64
	Time    float64
	Samples []Sample
}

func (g *Grid) At(i, j int) Sample {
	return g.Samples[j*g.Nx+i]
}

// MaxMagnitude is the largest finite raw magnitude on the grid.
func (g *Grid) MaxMagnitude() float64 {
	max := 0.0
	for _, s := range g.Samples {
		if finite(s.Magnitude) && s.Magnitude > max {
			max = s.Magnitude
		}
	}
	return max
}

// Sampler evaluates a field over a viewport.
type Sampler struct {
	field    Field
	viewport Viewport
	time     float64
}

func NewSampler(f Field, vp Viewport) *Sampler {
	return &Sampler{field: f, viewport: vp}
}

// AtTime returns a sampler that evaluates time-varying fields at t.
func (s *Sampler) AtTime(t float64) *Sampler {
	c := *s
	c.time = t
	return &c
}

// Sample builds the nx × ny grid including both viewport edges and
// normalizes every field vector to unit length. A zero magnitude is replaced
// by 1 before dividing, so equilibria yield the zero vector.
func (s *Sampler) Sample(nx, ny int) (*Grid, error) {
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("%dx%d: %w", nx, ny, ErrInvalidResolution)
	}
	if err := s.viewport.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		Nx:      nx,
		Ny:      ny,
		Xs:      floats.Span(make([]float64, nx), s.viewport.XStart, s.viewport.XEnd),
		Ys:      floats.Span(make([]float64, ny), s.viewport.YStart, s.viewport.YEnd),
		Time:    s.time,
		Samples: make([]Sample, nx*ny),
	}

	dynamo.ParallelFor(ny, parallelRows, func(start, end int) {
		for j := start; j < end; j++ {
			y := g.Ys[j]
			for i, x := range g.Xs {
				g.Samples[j*nx+i] = s.sampleAt(x, y)
			}
		}
	})

	return g, nil
}

func (s *Sampler) sampleAt(x, y float64) Sample {
	dx, dy := s.field.Evaluate(x, y, s.time)
	m := math.Hypot(dx, dy)

	divisor := m
	if divisor == 0 {
		divisor = 1
	}

	return Sample{
		X:         x,
		Y:         y,
		DX:        dx / divisor,
		DY:        dy / divisor,
		Magnitude: m,
	}
}
