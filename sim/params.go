package sim

import (
	"fmt"

	"github.com/cwbudde/algo-doa/dsp/array"
	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-doa/dsp/filter/bandpass"
	"github.com/cwbudde/algo-doa/measure/doa"
)

// Params describes one simulation run.
type Params struct {
	ThetaDeg    float64 // true bearing in degrees, [-90, 90]
	NoiseSigma  float64 // per-sensor Gaussian noise std
	Spacing     float64 // sensor spacing in metres
	Duration    float64 // record length in seconds
	SampleRate  float64 // Hz
	ToneHz      float64 // source frequency
	Bandwidth   float64 // band-pass width in Hz
	SoundSpeed  float64 // m/s
	Bins        int     // averaged spectrum bins
	FilterOrder int     // Butterworth prototype order
	Seed        int64
}

// DefaultParams returns the reference scenario: a 30 kHz tone sampled at
// 100 kHz for 0.2 s on a 2 cm array in water, source at 20 degrees.
func DefaultParams() Params {
	return Params{
		ThetaDeg:    20,
		NoiseSigma:  0.01,
		Spacing:     0.02,
		Duration:    0.2,
		SampleRate:  core.DefaultSampleRate,
		ToneHz:      30000,
		Bandwidth:   bandpass.DefaultBandwidth,
		SoundSpeed:  array.DefaultSoundSpeed,
		Bins:        doa.DefaultBins,
		FilterOrder: bandpass.DefaultOrder,
		Seed:        1,
	}
}

// Validate checks the scenario parameters. Tone, bandwidth and order are
// checked by the stages that use them.
func (p Params) Validate() error {
	switch {
	case !core.IsFinite(p.ThetaDeg) || p.ThetaDeg < -90 || p.ThetaDeg > 90:
		return fmt.Errorf("%w: theta must be in [-90, 90]: %f", core.ErrInvalidParameter, p.ThetaDeg)
	case !core.IsFinite(p.NoiseSigma) || p.NoiseSigma < 0:
		return fmt.Errorf("%w: noise sigma must be >= 0: %f", core.ErrInvalidParameter, p.NoiseSigma)
	case !core.IsFinite(p.Spacing) || p.Spacing <= 0:
		return fmt.Errorf("%w: spacing must be > 0: %f", core.ErrInvalidParameter, p.Spacing)
	case !core.IsFinite(p.Duration) || p.Duration <= 0:
		return fmt.Errorf("%w: duration must be > 0: %f", core.ErrInvalidParameter, p.Duration)
	case !core.IsFinite(p.SampleRate) || p.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate must be > 0: %f", core.ErrInvalidParameter, p.SampleRate)
	case !core.IsFinite(p.SoundSpeed) || p.SoundSpeed <= 0:
		return fmt.Errorf("%w: sound speed must be > 0: %f", core.ErrInvalidParameter, p.SoundSpeed)
	case p.Bins < 1:
		return fmt.Errorf("%w: bins must be >= 1: %d", core.ErrInvalidParameter, p.Bins)
	}
	return nil
}

// Geometry returns the array geometry described by p.
func (p Params) Geometry() (array.Geometry, error) {
	return array.New(p.Spacing, array.WithSoundSpeed(p.SoundSpeed))
}

// RecommendedNoiseSigma suggests a noise level that keeps the estimate
// within about a degree for a source at thetaDeg. Bearings near endfire are
// more sensitive to delay errors, so they get less noise.
func RecommendedNoiseSigma(thetaDeg float64) float64 {
	a := thetaDeg
	if a < 0 {
		a = -a
	}
	switch {
	case a <= 15:
		return 0.05
	case a <= 40:
		return 0.02
	default:
		return 0.01
	}
}
