package sim

import (
	"fmt"

	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-doa/dsp/spectrum"
)

// DefaultSpanHz is the half-width of the zoomed spectrum view.
const DefaultSpanHz = 5000.0

const viewFloor = 1e-12

// SpectrumView is a zoomed magnitude spectrum.
type SpectrumView struct {
	FreqHz []float64
	DB     []float64
}

// ZoomSpectrum transforms the full record x and keeps the positive
// frequency bins within centerHz ± spanHz, in dB as 20*log10(|X|+1e-12).
func ZoomSpectrum(x []float64, sampleRate, centerHz, spanHz float64) (SpectrumView, error) {
	if !(sampleRate > 0) {
		return SpectrumView{}, fmt.Errorf("%w: sample rate must be > 0: %f", core.ErrInvalidParameter, sampleRate)
	}
	if !(spanHz > 0) {
		return SpectrumView{}, fmt.Errorf("%w: span must be > 0: %f", core.ErrInvalidParameter, spanHz)
	}

	bins, err := spectrum.Transform(x)
	if err != nil {
		return SpectrumView{}, err
	}

	n := len(x)
	var view SpectrumView
	for k := 1; k <= spectrum.LastPositiveBin(n); k++ {
		f := spectrum.BinFrequency(k, n, sampleRate)
		if f < centerHz-spanHz || f > centerHz+spanHz {
			continue
		}
		view.FreqHz = append(view.FreqHz, f)
		view.DB = append(view.DB, spectrum.MagnitudeDB(bins[k:k+1], viewFloor)[0])
	}
	return view, nil
}

// AveragedSpectrum computes a Hann-windowed, frame-averaged amplitude
// spectrum of x with the given power-of-two frame size and keeps the bins
// within centerHz ± spanHz.
func AveragedSpectrum(x []float64, sampleRate, centerHz, spanHz float64, frameSize int) (SpectrumView, error) {
	a, err := spectrum.NewAnalyzer(sampleRate, spectrum.WithFrameSize(frameSize))
	if err != nil {
		return SpectrumView{}, err
	}
	db, err := a.AmplitudeDB(x)
	if err != nil {
		return SpectrumView{}, err
	}

	var view SpectrumView
	for k := range db {
		f := a.BinFrequency(k)
		if f < centerHz-spanHz || f > centerHz+spanHz {
			continue
		}
		view.FreqHz = append(view.FreqHz, f)
		view.DB = append(view.DB, db[k])
	}
	return view, nil
}
