package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/phaseplot/internal/dynamo"
)

// ErrInvalidGeometry is wrapped by every rejected viewport, time domain,
// coordinate or radius.
var ErrInvalidGeometry = errors.New("field: invalid geometry")

// Point is a location in the phase plane.
type Point struct {
	X, Y float64
}

func (p Point) State() dynamo.State { return dynamo.State{p.X, p.Y} }

func (p Point) IsFinite() bool { return finite(p.X) && finite(p.Y) }

func PointOf(s dynamo.State) Point { return Point{X: s[0], Y: s[1]} }

// Viewport is the closed rectangle [XStart, XEnd] × [YStart, YEnd].
type Viewport struct {
	XStart, XEnd float64
	YStart, YEnd float64
}

func NewViewport(xStart, xEnd, yStart, yEnd float64) (Viewport, error) {
	vp := Viewport{XStart: xStart, XEnd: xEnd, YStart: yStart, YEnd: yEnd}
	return vp, vp.Validate()
}

func (v Viewport) Validate() error {
	if !finite(v.XStart) || !finite(v.XEnd) || !finite(v.YStart) || !finite(v.YEnd) {
		return fmt.Errorf("viewport %v has non-finite bounds: %w", v, ErrInvalidGeometry)
	}
	if v.XStart >= v.XEnd {
		return fmt.Errorf("viewport x range [%g, %g] is empty: %w", v.XStart, v.XEnd, ErrInvalidGeometry)
	}
	if v.YStart >= v.YEnd {
		return fmt.Errorf("viewport y range [%g, %g] is empty: %w", v.YStart, v.YEnd, ErrInvalidGeometry)
	}
	return nil
}

func (v Viewport) Contains(p Point) bool {
	return p.X >= v.XStart && p.X <= v.XEnd && p.Y >= v.YStart && p.Y <= v.YEnd
}

func (v Viewport) Width() float64  { return v.XEnd - v.XStart }
func (v Viewport) Height() float64 { return v.YEnd - v.YStart }

// TimeDomain is the integration window [Start, End]; it always contains 0.
type TimeDomain struct {
	Start, End float64
}

func NewTimeDomain(start, end float64) (TimeDomain, error) {
	td := TimeDomain{Start: start, End: end}
	return td, td.Validate()
}

func (d TimeDomain) Validate() error {
	if !finite(d.Start) || !finite(d.End) {
		return fmt.Errorf("time domain %v has non-finite bounds: %w", d, ErrInvalidGeometry)
	}
	if d.Start > 0 || d.End < 0 {
		return fmt.Errorf("time domain [%g, %g] must contain 0: %w", d.Start, d.End, ErrInvalidGeometry)
	}
	return nil
}

// Degenerate reports a zero-length domain.
func (d TimeDomain) Degenerate() bool { return d.Start == d.End }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
