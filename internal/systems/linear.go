package systems

import (
	"fmt"

	"github.com/san-kum/phaseplot/internal/field"
)

// Linear is the system x' = a x + b y, y' = c x + d y.
type Linear struct {
	A, B, C, D float64
	name       string
}

// NewLinear returns the stable node x' = -x + y, y' = -y.
func NewLinear() *Linear {
	return &Linear{A: -1, B: 1, C: 0, D: -1, name: "linear"}
}

// NewHarmonic returns the undamped oscillator x' = y, y' = -x.
func NewHarmonic() *Linear {
	return &Linear{A: 0, B: 1, C: -1, D: 0, name: "harmonic"}
}

func (l *Linear) Name() string { return l.name }

func (l *Linear) Description() string {
	return fmt.Sprintf("x' = %gx + %gy, y' = %gx + %gy", l.A, l.B, l.C, l.D)
}

func (l *Linear) Field() field.Field {
	a, b, c, d := l.A, l.B, l.C, l.D
	return field.New(
		func(x, y float64) float64 { return a*x + b*y },
		func(x, y float64) float64 { return c*x + d*y },
	)
}

// Trace and Det determine the equilibrium type at the origin.
func (l *Linear) Trace() float64 { return l.A + l.D }
func (l *Linear) Det() float64   { return l.A*l.D - l.B*l.C }

func (l *Linear) GetParams() map[string]float64 {
	return map[string]float64{"a": l.A, "b": l.B, "c": l.C, "d": l.D}
}

func (l *Linear) SetParam(name string, value float64) error {
	switch name {
	case "a":
		l.A = value
	case "b":
		l.B = value
	case "c":
		l.C = value
	case "d":
		l.D = value
	default:
		return unknownParam(name)
	}
	return nil
}
