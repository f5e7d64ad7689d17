package pass

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-doa/dsp/filter/biquad"
)

// imagTol separates real prototype poles from complex ones.
const imagTol = 1e-12

// ButterworthBP designs a band-pass Butterworth cascade with -3 dB corners at
// lowHz and highHz. order is the order of the lowpass prototype; the
// band-pass has 2*order poles and is returned as order biquad sections.
//
// Every section has its zeros at DC and Nyquist and is scaled to unity
// gain at the geometric band centre, so the cascade peaks at 0 dB.
func ButterworthBP(lowHz, highHz float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if err := validateBand(lowHz, highHz, order, sampleRate); err != nil {
		return nil, err
	}

	wl := prewarp(lowHz, sampleRate)
	wh := prewarp(highHz, sampleRate)
	w0 := math.Sqrt(wl * wh)
	bw := wh - wl

	centre := CentreFrequency(lowHz, highHz, sampleRate)
	sections := make([]biquad.Coefficients, 0, order)

	for _, p := range butterworthPoles(order) {
		if imag(p) < -imagTol {
			continue // handled with its conjugate
		}

		// s^2 - p*bw*s + w0^2 = 0
		a := p * complex(bw/2, 0)
		d := cmplx.Sqrt(a*a - complex(w0*w0, 0))
		z1 := bilinear(a+d, sampleRate)
		z2 := bilinear(a-d, sampleRate)

		if math.Abs(imag(p)) <= imagTol {
			sections = append(sections, normalizeAt(bandpassSection(z1, z2), centre, sampleRate))
			continue
		}
		sections = append(sections,
			normalizeAt(bandpassSection(z1, cmplx.Conj(z1)), centre, sampleRate),
			normalizeAt(bandpassSection(z2, cmplx.Conj(z2)), centre, sampleRate),
		)
	}

	return sections, nil
}

// CentreFrequency returns the digital frequency in Hz onto which the
// bilinear transform maps the geometric centre of the pre-warped band.
func CentreFrequency(lowHz, highHz, sampleRate float64) float64 {
	w0 := math.Sqrt(prewarp(lowHz, sampleRate) * prewarp(highHz, sampleRate))
	return sampleRate / math.Pi * math.Atan(w0/(2*sampleRate))
}
