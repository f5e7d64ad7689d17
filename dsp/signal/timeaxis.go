package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-doa/dsp/core"
)

// snapTolerance is the relative distance from an integer within which
// duration*sampleRate is treated as that integer. It absorbs representation
// error such as 0.2*100000 not being exactly 20000.
const snapTolerance = 1e-9

// TimeAxis returns t[i] = i/sampleRate for every sample time in the half-open
// interval [0, duration).
//
// The length is ceil(duration*sampleRate), which equals
// floor(duration*sampleRate) whenever the product is integral.
func TimeAxis(sampleRate, duration float64) ([]float64, error) {
	n, err := SampleCount(sampleRate, duration)
	if err != nil {
		return nil, err
	}
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) / sampleRate
	}
	return t, nil
}

// SampleCount returns the number of samples TimeAxis produces.
func SampleCount(sampleRate, duration float64) (int, error) {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return 0, fmt.Errorf("%w: sample rate must be > 0: %f", core.ErrInvalidParameter, sampleRate)
	}
	if !(duration > 0) || !core.IsFinite(duration) {
		return 0, fmt.Errorf("%w: duration must be > 0: %f", core.ErrInvalidParameter, duration)
	}

	x := duration * sampleRate
	r := math.Round(x)
	n := math.Ceil(x)
	if math.Abs(x-r) <= snapTolerance*math.Max(1, r) {
		n = r
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: time axis too long: %.0f samples", core.ErrInvalidParameter, n)
	}
	if n < 1 {
		n = 1
	}
	return int(n), nil
}
