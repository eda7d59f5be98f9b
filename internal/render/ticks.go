package render

import (
	"math"

	"gonum.org/v1/plot"
)

// zeroless blanks the label of the tick at 0 so it does not collide with
// axes drawn through the origin.
type zeroless struct {
	plot.Ticker
}

func (z zeroless) Ticks(min, max float64) []plot.Tick {
	ticks := z.Ticker.Ticks(min, max)
	eps := 1e-9 * math.Max(math.Abs(max-min), 1)
	for i := range ticks {
		if math.Abs(ticks[i].Value) < eps {
			ticks[i].Label = ""
		}
	}
	return ticks
}
