package systems

import (
	"math"

	"github.com/san-kum/phaseplot/internal/field"
)

// VanDerPol: x' = y, y' = mu(1 - x²)y - x.
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol() *VanDerPol { return &VanDerPol{Mu: 1.0} }

func (v *VanDerPol) Name() string        { return "vanderpol" }
func (v *VanDerPol) Description() string { return "Van der Pol oscillator, limit cycle for mu > 0" }

func (v *VanDerPol) Field() field.Field {
	mu := v.Mu
	return field.New(
		func(x, y float64) float64 { return y },
		func(x, y float64) float64 { return mu*(1-x*x)*y - x },
	)
}

func (v *VanDerPol) GetParams() map[string]float64 {
	return map[string]float64{"mu": v.Mu}
}

func (v *VanDerPol) SetParam(name string, value float64) error {
	if name != "mu" {
		return unknownParam(name)
	}
	v.Mu = value
	return nil
}

// Duffing: x' = y, y' = -delta y - alpha x - beta x³ + gamma cos(omega t).
// With gamma = 0 the field is autonomous.
type Duffing struct {
	Alpha, Beta, Delta, Gamma, Omega float64
}

func NewDuffing() *Duffing {
	return &Duffing{Alpha: -1.0, Beta: 1.0, Delta: 0.3, Gamma: 0, Omega: 1.2}
}

func (d *Duffing) Name() string { return "duffing" }
func (d *Duffing) Description() string {
	return "Duffing oscillator, periodically forced when gamma != 0"
}

func (d *Duffing) Field() field.Field {
	p := *d
	f1 := func(x, y, _ float64) float64 { return y }
	if p.Gamma == 0 {
		return field.New(
			func(x, y float64) float64 { return y },
			func(x, y float64) float64 { return -p.Delta*y - p.Alpha*x - p.Beta*x*x*x },
		)
	}
	return field.NewTimeVarying(f1, func(x, y, t float64) float64 {
		return -p.Delta*y - p.Alpha*x - p.Beta*x*x*x + p.Gamma*math.Cos(p.Omega*t)
	})
}

func (d *Duffing) Energy(x, y float64) float64 {
	return 0.5*y*y + 0.5*d.Alpha*x*x + 0.25*d.Beta*x*x*x*x
}

func (d *Duffing) GetParams() map[string]float64 {
	return map[string]float64{"alpha": d.Alpha, "beta": d.Beta, "delta": d.Delta, "gamma": d.Gamma, "omega": d.Omega}
}

func (d *Duffing) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		d.Alpha = v
	case "beta":
		d.Beta = v
	case "delta":
		d.Delta = v
	case "gamma":
		d.Gamma = v
	case "omega":
		d.Omega = v
	default:
		return unknownParam(n)
	}
	return nil
}

// Pendulum in (theta, omega) coordinates.
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
	}
}

func (p *Pendulum) Name() string        { return "pendulum" }
func (p *Pendulum) Description() string { return "damped pendulum, theta vs angular velocity" }

func (p *Pendulum) Field() field.Field {
	c := *p
	inertia := c.Mass * c.Length * c.Length
	return field.New(
		func(theta, omega float64) float64 { return omega },
		func(theta, omega float64) float64 {
			return (-c.Damping*omega - c.Mass*c.Gravity*c.Length*math.Sin(theta)) / inertia
		},
	)
}

func (p *Pendulum) Energy(theta, omega float64) float64 {
	// KE = 0.5 * m * (L*omega)^2
	// PE = m * g * L * (1 - cos(theta))
	v := p.Length * omega
	return 0.5*p.Mass*v*v + p.Mass*p.Gravity*p.Length*(1.0-math.Cos(theta))
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":    p.Mass,
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	default:
		return unknownParam(name)
	}
	return nil
}

// DoubleWell models a particle in the potential A(x² - B)².
type DoubleWell struct {
	A, B, Mass, Damping float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{A: 1.0, B: 1.0, Mass: 1.0, Damping: 0.1}
}

func (d *DoubleWell) Name() string        { return "doublewell" }
func (d *DoubleWell) Description() string { return "bistable well with minima at x = ±sqrt(B)" }

func (d *DoubleWell) Field() field.Field {
	c := *d
	return field.New(
		func(x, v float64) float64 { return v },
		func(x, v float64) float64 { return (-4*c.A*x*(x*x-c.B) - c.Damping*v) / c.Mass },
	)
}

func (d *DoubleWell) Energy(x, v float64) float64 {
	return 0.5*d.Mass*v*v + d.A*math.Pow(x*x-d.B, 2)
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"A": d.A, "B": d.B, "mass": d.Mass, "damping": d.Damping}
}

func (d *DoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "A":
		d.A = v
	case "B":
		d.B = v
	case "mass":
		d.Mass = v
	case "damping":
		d.Damping = v
	default:
		return unknownParam(n)
	}
	return nil
}
