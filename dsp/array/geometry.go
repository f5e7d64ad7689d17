package array

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-doa/dsp/core"
)

// DefaultSoundSpeed is the speed of sound in water in m/s.
const DefaultSoundSpeed = 1500.0

// Geometry describes a two-sensor line array.
type Geometry struct {
	Spacing    float64 // sensor spacing d in meters
	SoundSpeed float64 // propagation speed c in m/s
}

// Option configures a Geometry.
type Option func(*Geometry)

// WithSoundSpeed overrides the propagation speed.
func WithSoundSpeed(c float64) Option {
	return func(g *Geometry) {
		g.SoundSpeed = c
	}
}

// New returns a validated Geometry with the given spacing in meters.
func New(spacing float64, opts ...Option) (Geometry, error) {
	g := Geometry{Spacing: spacing, SoundSpeed: DefaultSoundSpeed}
	for _, opt := range opts {
		if opt != nil {
			opt(&g)
		}
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// Validate checks that spacing and sound speed are finite and positive.
func (g Geometry) Validate() error {
	if !(g.Spacing > 0) || !core.IsFinite(g.Spacing) {
		return fmt.Errorf("%w: sensor spacing must be > 0: %f", core.ErrInvalidParameter, g.Spacing)
	}
	if !(g.SoundSpeed > 0) || !core.IsFinite(g.SoundSpeed) {
		return fmt.Errorf("%w: sound speed must be > 0: %f", core.ErrInvalidParameter, g.SoundSpeed)
	}
	return nil
}

// Delay returns the arrival-time difference tau in seconds for a source at
// thetaDeg. Positive tau means sensor 1 leads.
func (g Geometry) Delay(thetaDeg float64) float64 {
	return g.Spacing * math.Sin(core.DegToRad(thetaDeg)) / g.SoundSpeed
}

// MaxDelay returns the end-fire delay d/c.
func (g Geometry) MaxDelay() float64 {
	return g.Spacing / g.SoundSpeed
}

// AliasFreeFrequency returns c/(2d), the highest tone frequency for which the
// spacing stays within half a wavelength.
func (g Geometry) AliasFreeFrequency() float64 {
	return g.SoundSpeed / (2 * g.Spacing)
}

// Inversion is the result of converting a delay to an angle.
type Inversion struct {
	AngleDeg float64 // estimated angle in [-90, 90]
	Ratio    float64 // delay*c/d before clipping
	Clipped  bool    // Ratio was outside [-1, 1]
}

// Invert converts a delay in seconds to an arrival angle.
//
// The ratio delay*c/d is clipped to [-1, 1] before the arcsine, so noisy
// delays beyond the end-fire limit map to ±90 degrees. The unclipped ratio is
// kept in the result.
func (g Geometry) Invert(delay float64) Inversion {
	ratio := delay * g.SoundSpeed / g.Spacing
	clipped := core.Clamp(ratio, -1, 1)
	return Inversion{
		AngleDeg: core.RadToDeg(math.Asin(clipped)),
		Ratio:    ratio,
		Clipped:  clipped != ratio,
	}
}

// Angle is shorthand for Invert(delay).AngleDeg.
func (g Geometry) Angle(delay float64) float64 {
	return g.Invert(delay).AngleDeg
}
