package pass

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-doa/dsp/filter/biquad"
)

// prewarp returns the analog angular frequency 2*fs*tan(π*freq/fs) that the
// bilinear transform maps exactly onto freq.
func prewarp(freq, sampleRate float64) float64 {
	return 2 * sampleRate * math.Tan(math.Pi*freq/sampleRate)
}

// bilinear maps an analog pole s to the z-plane.
func bilinear(s complex128, sampleRate float64) complex128 {
	fs2 := complex(2*sampleRate, 0)
	return (fs2 + s) / (fs2 - s)
}

// butterworthPoles returns the left half-plane poles of a unit-cutoff
// analog Butterworth lowpass of the given order.
func butterworthPoles(order int) []complex128 {
	poles := make([]complex128, order)
	for k := range poles {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		poles[k] = cmplx.Exp(complex(0, theta))
	}
	return poles
}

// bandpassSection builds a section with zeros at z = ±1 and the poles
// z1, z2, which are either a conjugate pair or both real.
func bandpassSection(z1, z2 complex128) biquad.Coefficients {
	return biquad.Coefficients{
		B0: 1,
		B1: 0,
		B2: -1,
		A1: -real(z1 + z2),
		A2: real(z1 * z2),
	}
}

// normalizeAt scales the numerator so that |H| = 1 at freq.
func normalizeAt(c biquad.Coefficients, freq, sampleRate float64) biquad.Coefficients {
	m := cmplx.Abs(c.Response(freq, sampleRate))
	if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return c
	}
	c.B0 /= m
	c.B1 /= m
	c.B2 /= m
	return c
}

func validateBand(lowHz, highHz float64, order int, sampleRate float64) error {
	switch {
	case !(sampleRate > 0) || math.IsInf(sampleRate, 0):
		return fmt.Errorf("%w: sample rate must be > 0: %f", core.ErrInvalidParameter, sampleRate)
	case order <= 0:
		return fmt.Errorf("%w: order must be > 0: %d", core.ErrInvalidParameter, order)
	case !(lowHz > 0):
		return fmt.Errorf("%w: lower corner must be > 0: %f", core.ErrInvalidParameter, lowHz)
	case !(highHz < sampleRate/2):
		return fmt.Errorf("%w: upper corner must be below Nyquist (%f): %f",
			core.ErrInvalidParameter, sampleRate/2, highHz)
	case !(lowHz < highHz):
		return fmt.Errorf("%w: lower corner %f must be below upper corner %f",
			core.ErrInvalidParameter, lowHz, highHz)
	}
	return nil
}
