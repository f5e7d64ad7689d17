package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-doa/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
)

const (
	defaultFrameSize = 4096
	defaultOverlap   = 0.5
	dbFloor          = 1e-12
)

type analyzerConfig struct {
	frameSize int
	overlap   float64
	window    window.Type
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerConfig)

// WithFrameSize sets the FFT frame length. It must be a power of two.
func WithFrameSize(n int) AnalyzerOption {
	return func(cfg *analyzerConfig) { cfg.frameSize = n }
}

// WithOverlap sets the fractional overlap between frames in [0, 1).
func WithOverlap(v float64) AnalyzerOption {
	return func(cfg *analyzerConfig) { cfg.overlap = v }
}

// WithWindow selects the analysis window. Default is Hann.
func WithWindow(t window.Type) AnalyzerOption {
	return func(cfg *analyzerConfig) { cfg.window = t }
}

// Analyzer computes averaged one-sided amplitude spectra with windowed,
// overlapping power-of-two frames. An Analyzer is not safe for concurrent
// use.
type Analyzer struct {
	sampleRate float64
	frameSize  int
	hop        int
	win        []float64
	gain       float64
	plan       *algofft.Plan[complex128]
	in         []complex128
	out        []complex128
}

// NewAnalyzer prepares an analyzer for the given sample rate.
func NewAnalyzer(sampleRate float64, opts ...AnalyzerOption) (*Analyzer, error) {
	cfg := analyzerConfig{
		frameSize: defaultFrameSize,
		overlap:   defaultOverlap,
		window:    window.TypeHann,
	}
	for _, o := range opts {
		o(&cfg)
	}

	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %f", core.ErrInvalidParameter, sampleRate)
	}
	if cfg.frameSize < 2 || cfg.frameSize&(cfg.frameSize-1) != 0 {
		return nil, fmt.Errorf("%w: frame size must be a power of two >= 2: %d",
			core.ErrInvalidParameter, cfg.frameSize)
	}
	if cfg.overlap < 0 || cfg.overlap >= 1 {
		return nil, fmt.Errorf("%w: overlap must be in [0,1): %f", core.ErrInvalidParameter, cfg.overlap)
	}

	win := window.Generate(cfg.window, cfg.frameSize, window.WithPeriodic())
	gain, err := window.CoherentGain(win)
	if err != nil {
		return nil, err
	}
	if gain == 0 {
		return nil, fmt.Errorf("%w: window %s has zero coherent gain", core.ErrInvalidParameter, cfg.window)
	}

	plan, err := algofft.NewPlan64(cfg.frameSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	hop := int(math.Round(float64(cfg.frameSize) * (1 - cfg.overlap)))
	if hop < 1 {
		hop = 1
	}

	return &Analyzer{
		sampleRate: sampleRate,
		frameSize:  cfg.frameSize,
		hop:        hop,
		win:        win,
		gain:       gain,
		plan:       plan,
		in:         make([]complex128, cfg.frameSize),
		out:        make([]complex128, cfg.frameSize),
	}, nil
}

// FrameSize returns the FFT frame length.
func (a *Analyzer) FrameSize() int { return a.frameSize }

// BinFrequency returns the frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int) float64 {
	return float64(k) * a.sampleRate / float64(a.frameSize)
}

// Amplitude returns frameSize/2+1 bins of averaged spectral amplitude,
// scaled so that a bin-centred sine of amplitude A reads A. Records shorter
// than one frame are zero-padded.
func (a *Analyzer) Amplitude(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: empty input", core.ErrNumericEdgeCase)
	}

	bins := a.frameSize/2 + 1
	acc := make([]float64, bins)
	frames := 0

	for start := 0; ; start += a.hop {
		for i := range a.in {
			var v float64
			if start+i < len(x) {
				v = x[start+i]
			}
			a.in[i] = complex(v*a.win[i], 0)
		}
		if err := a.plan.Forward(a.out, a.in); err != nil {
			return nil, fmt.Errorf("spectrum: forward fft: %w", err)
		}

		pow := Power(a.out[:bins])
		for k := range acc {
			acc[k] += pow[k]
		}
		frames++

		if start+a.frameSize >= len(x) {
			break
		}
	}

	scale := 2 / (float64(a.frameSize) * a.gain)
	for k := range acc {
		acc[k] = scale * math.Sqrt(acc[k]/float64(frames))
	}
	return acc, nil
}

// AmplitudeDB returns Amplitude in dB relative to 1.
func (a *Analyzer) AmplitudeDB(x []float64) ([]float64, error) {
	amp, err := a.Amplitude(x)
	if err != nil {
		return nil, err
	}
	for k := range amp {
		amp[k] = 20 * math.Log10(amp[k]+dbFloor)
	}
	return amp, nil
}
