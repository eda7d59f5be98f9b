package trajectory

import (
	"sort"

	"github.com/san-kum/phaseplot/internal/field"
	"gonum.org/v1/gonum/floats"
)

// TimePoints returns n evenly spaced instants over the domain, both ends
// included. When the domain straddles 0 and 0 is not on the grid it is
// inserted, so the result may hold n+1 entries. A degenerate domain has no
// instants.
func TimePoints(dom field.TimeDomain, n int) []float64 {
	if dom.Degenerate() || n < 2 {
		return nil
	}

	ts := floats.Span(make([]float64, n), dom.Start, dom.End)
	ts[0], ts[n-1] = dom.Start, dom.End
	if dom.Start < 0 && dom.End > 0 {
		k := sort.SearchFloat64s(ts, 0)
		if ts[k] != 0 {
			ts = append(ts, 0)
			copy(ts[k+1:], ts[k:])
			ts[k] = 0
		}
	}
	return ts
}

// Split partitions an increasing time grid into the negative instants,
// ordered from nearest 0 outward, and the non-negative instants.
func Split(ts []float64) (negative, positive []float64) {
	k := sort.SearchFloat64s(ts, 0)
	negative = make([]float64, k)
	for i := range negative {
		negative[i] = ts[k-1-i]
	}
	positive = append([]float64(nil), ts[k:]...)
	return negative, positive
}
