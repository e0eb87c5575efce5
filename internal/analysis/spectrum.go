// Package analysis provides frequency-domain diagnostics over sampled
// body trajectories.
package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of each positive-frequency bin
// of the signal. The input is zero-padded to the next power of two.
func PowerSpectrum(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}

	n := 1
	for n < len(samples) {
		n <<= 1
	}
	padded := make([]float64, n)
	copy(padded, samples)

	bins := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantFrequency picks the strongest non-DC bin and converts it to
// Hz given the sampling interval.
func DominantFrequency(samples []float64, dt float64) (float64, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("analysis: sampling interval must be positive, got %v", dt)
	}
	ps := PowerSpectrum(samples)
	if len(ps) < 2 {
		return 0, fmt.Errorf("analysis: need at least 2 samples, got %d", len(samples))
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}

	n := len(ps) * 2 // padded length
	return float64(best) / (float64(n) * dt), nil
}
