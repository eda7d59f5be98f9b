package systems

import "github.com/san-kum/phaseplot/internal/field"

// LotkaVolterra is the predator-prey model
//
//	x' = alpha x - beta x y
//	y' = delta x y - gamma y
//
// with prey x and predators y.
type LotkaVolterra struct {
	Alpha, Beta, Gamma, Delta float64
}

func NewLotkaVolterra() *LotkaVolterra {
	return &LotkaVolterra{Alpha: 1.0, Beta: 0.5, Gamma: 1.0, Delta: 0.25}
}

func (l *LotkaVolterra) Name() string { return "lotkavolterra" }
func (l *LotkaVolterra) Description() string {
	return "predator-prey cycles around (gamma/delta, alpha/beta)"
}

func (l *LotkaVolterra) Field() field.Field {
	p := *l
	return field.New(
		func(x, y float64) float64 { return p.Alpha*x - p.Beta*x*y },
		func(x, y float64) float64 { return p.Delta*x*y - p.Gamma*y },
	)
}

// Coexistence is the interior equilibrium.
func (l *LotkaVolterra) Coexistence() field.Point {
	return field.Point{X: l.Gamma / l.Delta, Y: l.Alpha / l.Beta}
}

func (l *LotkaVolterra) GetParams() map[string]float64 {
	return map[string]float64{"alpha": l.Alpha, "beta": l.Beta, "gamma": l.Gamma, "delta": l.Delta}
}

func (l *LotkaVolterra) SetParam(name string, value float64) error {
	switch name {
	case "alpha":
		l.Alpha = value
	case "beta":
		l.Beta = value
	case "gamma":
		l.Gamma = value
	case "delta":
		l.Delta = value
	default:
		return unknownParam(name)
	}
	return nil
}
