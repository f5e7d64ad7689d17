package doa

import (
	"fmt"

	"github.com/cwbudde/algo-doa/dsp/array"
	"github.com/cwbudde/algo-doa/dsp/core"
)

// TDOAToDOA converts a delay in seconds to a bearing in degrees for sensors
// spacing metres apart, using the default speed of sound. Delays beyond
// the physical maximum saturate at ±90 degrees.
func TDOAToDOA(delay, spacing float64) (float64, error) {
	if !core.IsFinite(delay) {
		return 0, fmt.Errorf("%w: delay must be finite: %v", core.ErrInvalidParameter, delay)
	}
	g, err := array.New(spacing)
	if err != nil {
		return 0, err
	}
	return g.Angle(delay), nil
}

// Bearing combines a delay estimate with the array geometry.
type Bearing struct {
	Estimate
	array.Inversion
}

// Locate estimates the delay between x1 and x2 and inverts it with g.
func (e *PhaseEstimator) Locate(x1, x2 []float64, g array.Geometry) (Bearing, error) {
	if err := g.Validate(); err != nil {
		return Bearing{}, err
	}
	est, err := e.Estimate(x1, x2)
	if err != nil {
		return Bearing{}, err
	}
	return Bearing{Estimate: est, Inversion: g.Invert(est.Delay)}, nil
}
