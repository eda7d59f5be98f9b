// Package metrics summarises integrated trajectories.
package metrics

import (
	"math"

	"github.com/san-kum/phaseplot/internal/field"
)

// Metric observes a trajectory one sample at a time.
type Metric interface {
	Name() string
	Observe(p field.Point, t float64)
	Value() float64
	Reset()
}

// Evaluate feeds every sample of a time-ordered path to each metric and
// returns their values by name. Metrics are reset first.
func Evaluate(times []float64, path []field.Point, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for k, p := range path {
			m.Observe(p, times[k])
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Energy is a conserved quantity of a planar system.
type Energy func(x, y float64) float64

// EnergyDrift is the largest relative departure from the energy of the first
// sample. When that energy is zero the absolute departure is used.
type EnergyDrift struct {
	energy   Energy
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(e Energy) *EnergyDrift {
	return &EnergyDrift{energy: e}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(p field.Point, t float64) {
	energy := e.energy(p.X, p.Y)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	drift := math.Abs(energy - e.initial)
	if e.initial != 0 {
		drift /= math.Abs(e.initial)
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// Containment is the fraction of samples inside a viewport. An empty path
// counts as fully contained.
type Containment struct {
	viewport field.Viewport
	inside   int
	samples  int
}

func NewContainment(vp field.Viewport) *Containment {
	return &Containment{viewport: vp}
}

func (c *Containment) Name() string { return "containment" }

func (c *Containment) Observe(p field.Point, t float64) {
	c.samples++
	if c.viewport.Contains(p) {
		c.inside++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return float64(c.inside) / float64(c.samples)
}

func (c *Containment) Reset() {
	c.inside = 0
	c.samples = 0
}

// ArcLength is the polyline length of the path.
type ArcLength struct {
	prev   field.Point
	length float64
	seen   bool
}

func NewArcLength() *ArcLength { return &ArcLength{} }

func (a *ArcLength) Name() string { return "arc_length" }

func (a *ArcLength) Observe(p field.Point, t float64) {
	if a.seen {
		a.length += math.Hypot(p.X-a.prev.X, p.Y-a.prev.Y)
	}
	a.prev, a.seen = p, true
}

func (a *ArcLength) Value() float64 { return a.length }

func (a *ArcLength) Reset() {
	a.length = 0
	a.seen = false
}
