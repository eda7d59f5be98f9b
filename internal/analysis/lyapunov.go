package analysis

import (
	"math"

	"github.com/san-kum/phaseplot/internal/dynamo"
	"github.com/san-kum/phaseplot/internal/integrators"
)

// LyapunovExponent estimates the largest Lyapunov exponent along the
// trajectory from x0 by following a companion trajectory at distance d0 and
// renormalising the separation after every step. Negative values mean
// nearby trajectories converge.
func LyapunovExponent(dyn dynamo.System, x0 dynamo.State, dt, duration, d0 float64) float64 {
	if len(x0) == 0 || dt <= 0 || duration <= 0 || d0 <= 0 {
		return 0
	}

	var rk4 integrators.RK4
	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += d0

	sumLog := 0.0
	t := 0.0
	steps := int(duration / dt)
	for i := 0; i < steps; i++ {
		x = rk4.Step(dyn, x, t, dt)
		xp = rk4.Step(dyn, xp, t, dt)
		t += dt

		if !x.IsValid() || !xp.IsValid() {
			break
		}
		sep := xp.Distance(x)
		if sep == 0 {
			// Trajectories merged numerically; restart the companion.
			xp = x.Clone()
			xp[0] += d0
			continue
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for k := range xp {
			xp[k] = x[k] + (xp[k]-x[k])*scale
		}
	}

	if t == 0 {
		return 0
	}
	return sumLog / t
}
