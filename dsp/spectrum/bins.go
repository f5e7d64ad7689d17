package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-doa/dsp/core"
)

// FrequencyAxis returns the centre frequency of every bin of an n-point
// transform: 0, Fs/n, ..., then the negative frequencies from
// -floor(n/2)*Fs/n upwards.
func FrequencyAxis(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	df := sampleRate / float64(n)
	split := (n + 1) / 2
	for k := range out {
		if k < split {
			out[k] = float64(k) * df
		} else {
			out[k] = float64(k-n) * df
		}
	}
	return out
}

// LastPositiveBin returns the highest bin index with a strictly positive
// frequency, ceil(n/2)-1. For even n the Nyquist bin counts as negative.
func LastPositiveBin(n int) int {
	return (n+1)/2 - 1
}

// NearestPositiveBin returns the positive-frequency bin whose centre is
// closest to freqHz. Ties go to the lower bin. Frequencies outside the
// positive range snap to the first or last positive bin.
func NearestPositiveBin(freqHz float64, n int, sampleRate float64) (int, error) {
	if !(sampleRate > 0) {
		return 0, fmt.Errorf("%w: sample rate must be > 0: %f", core.ErrInvalidParameter, sampleRate)
	}
	last := LastPositiveBin(n)
	if last < 1 {
		return 0, fmt.Errorf("%w: %d-point transform has no positive bins", core.ErrNumericEdgeCase, n)
	}
	if math.IsNaN(freqHz) {
		return 0, fmt.Errorf("%w: frequency is NaN", core.ErrNumericEdgeCase)
	}

	exact := freqHz * float64(n) / sampleRate
	lo := math.Floor(exact)
	k := lo
	if exact-lo > lo+1-exact {
		k = lo + 1
	}

	return int(core.Clamp(k, 1, float64(last))), nil
}

// BinFrequency returns the centre frequency of bin k of an n-point
// transform using the same layout as FrequencyAxis.
func BinFrequency(k, n int, sampleRate float64) float64 {
	if k >= (n+1)/2 {
		k -= n
	}
	return float64(k) * sampleRate / float64(n)
}
