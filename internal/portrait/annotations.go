package portrait

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/phaseplot/internal/field"
)

// LineStyle names a stroke pattern for circle outlines.
type LineStyle string

const (
	LineSolid   LineStyle = "solid"
	LineDashed  LineStyle = "dashed"
	LineDotted  LineStyle = "dotted"
	LineDashDot LineStyle = "dashdot"
)

var ErrUnknownLineStyle = errors.New("portrait: unknown line style")

func (s LineStyle) Validate() error {
	switch s {
	case "", LineSolid, LineDashed, LineDotted, LineDashDot:
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownLineStyle, string(s))
}

// PointAnnotation marks a location, typically an equilibrium.
type PointAnnotation struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

func (p PointAnnotation) Point() field.Point { return field.Point{X: p.X, Y: p.Y} }

// InitialCondition seeds one trajectory. Domain, when set, replaces the
// model's time domain for this trajectory only. Legend controls whether the
// label is listed in the rendered legend.
type InitialCondition struct {
	X      float64           `json:"x" yaml:"x"`
	Y      float64           `json:"y" yaml:"y"`
	Color  string            `json:"color,omitempty" yaml:"color,omitempty"`
	Label  string            `json:"label,omitempty" yaml:"label,omitempty"`
	Domain *field.TimeDomain `json:"domain,omitempty" yaml:"domain,omitempty"`
	Legend bool              `json:"legend,omitempty" yaml:"legend,omitempty"`
}

func (ic InitialCondition) Point() field.Point { return field.Point{X: ic.X, Y: ic.Y} }

// CircleAnnotation outlines a disk, e.g. a region of attraction.
type CircleAnnotation struct {
	X         float64   `json:"x" yaml:"x"`
	Y         float64   `json:"y" yaml:"y"`
	Radius    float64   `json:"radius" yaml:"radius"`
	Color     string    `json:"color,omitempty" yaml:"color,omitempty"`
	LineStyle LineStyle `json:"line_style,omitempty" yaml:"line_style,omitempty"`
	Label     string    `json:"label,omitempty" yaml:"label,omitempty"`
}

func (c CircleAnnotation) Center() field.Point { return field.Point{X: c.X, Y: c.Y} }

func (p PointAnnotation) validate() error {
	if !p.Point().IsFinite() {
		return fmt.Errorf("point (%g, %g): %w", p.X, p.Y, field.ErrInvalidGeometry)
	}
	return nil
}

func (ic InitialCondition) validate() error {
	if !ic.Point().IsFinite() {
		return fmt.Errorf("initial condition (%g, %g): %w", ic.X, ic.Y, field.ErrInvalidGeometry)
	}
	if ic.Domain != nil {
		if err := ic.Domain.Validate(); err != nil {
			return fmt.Errorf("initial condition (%g, %g): %w", ic.X, ic.Y, err)
		}
	}
	return nil
}

func (c CircleAnnotation) validate() error {
	if !c.Center().IsFinite() {
		return fmt.Errorf("circle center (%g, %g): %w", c.X, c.Y, field.ErrInvalidGeometry)
	}
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		return fmt.Errorf("circle radius %g must be positive and finite: %w", c.Radius, field.ErrInvalidGeometry)
	}
	return c.LineStyle.Validate()
}
