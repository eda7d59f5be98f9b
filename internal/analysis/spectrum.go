package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

var (
	ErrShortSeries = errors.New("analysis: series too short for spectral estimate")
	ErrNonUniform  = errors.New("analysis: samples are not evenly spaced")
	ErrNoPeak      = errors.New("analysis: no oscillation found")
)

// PowerSpectrum returns the one-sided amplitude spectrum of the mean-removed,
// Hann-windowed data.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	x := make([]float64, len(data))
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for i, v := range data {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	spec := fft.FFTReal(x)
	ps := make([]float64, len(spec)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantPeriod estimates the period of the strongest oscillation in values
// sampled at the evenly spaced times. The peak bin is refined by parabolic
// interpolation.
func DominantPeriod(times, values []float64) (float64, error) {
	n := len(values)
	if n < 8 || len(times) != n {
		return 0, fmt.Errorf("%w: %d samples", ErrShortSeries, n)
	}

	dt := (times[n-1] - times[0]) / float64(n-1)
	if dt == 0 {
		return 0, fmt.Errorf("%w: zero time span", ErrNonUniform)
	}
	for i := 1; i < n; i++ {
		if math.Abs((times[i]-times[i-1])-dt) > 1e-6*math.Abs(dt) {
			return 0, fmt.Errorf("%w at index %d", ErrNonUniform, i)
		}
	}

	ps := PowerSpectrum(values)
	peak := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if peak == 0 || ps[peak] < 1e-12 {
		return 0, ErrNoPeak
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}

	return float64(n) * math.Abs(dt) / bin, nil
}
