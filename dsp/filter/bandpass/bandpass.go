package bandpass

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-doa/dsp/filter/biquad"
	"github.com/cwbudde/algo-doa/dsp/filter/design/pass"
)

const (
	// DefaultBandwidth is the distance between the -3 dB corners in Hz.
	DefaultBandwidth = 2000.0
	// DefaultOrder is the order of the Butterworth lowpass prototype.
	DefaultOrder = 4
)

type config struct {
	bandwidth float64
	order     int
}

func defaultConfig() config {
	return config{
		bandwidth: DefaultBandwidth,
		order:     DefaultOrder,
	}
}

// Option configures a Filter.
type Option func(*config)

// WithBandwidth sets the distance between the lower and upper corner in Hz.
func WithBandwidth(hz float64) Option {
	return func(cfg *config) { cfg.bandwidth = hz }
}

// WithOrder sets the prototype order. The band-pass has twice as many poles.
func WithOrder(n int) Option {
	return func(cfg *config) { cfg.order = n }
}

// Filter is a designed band-pass. It holds only coefficients and is safe
// for concurrent use.
type Filter struct {
	sampleRate float64
	centerHz   float64
	bandwidth  float64
	order      int
	coeffs     []biquad.Coefficients
}

// New designs a band-pass with corners centerHz ± bandwidth/2.
func New(sampleRate, centerHz float64, opts ...Option) (*Filter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if !(cfg.bandwidth > 0) || math.IsInf(cfg.bandwidth, 0) {
		return nil, fmt.Errorf("%w: bandwidth must be > 0: %f", core.ErrInvalidParameter, cfg.bandwidth)
	}

	low := centerHz - cfg.bandwidth/2
	high := centerHz + cfg.bandwidth/2

	coeffs, err := pass.ButterworthBP(low, high, cfg.order, sampleRate)
	if err != nil {
		return nil, err
	}

	return &Filter{
		sampleRate: sampleRate,
		centerHz:   centerHz,
		bandwidth:  cfg.bandwidth,
		order:      cfg.order,
		coeffs:     coeffs,
	}, nil
}

// Apply returns the zero-phase filtered copy of x. The output has the same
// length as x.
func (f *Filter) Apply(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: empty input", core.ErrNumericEdgeCase)
	}
	return f.Chain().ProcessZeroPhase(x), nil
}

// Chain returns a fresh cascade with zero state built from the design.
func (f *Filter) Chain() *biquad.Chain {
	return biquad.NewChain(f.coeffs)
}

// Sections returns a copy of the designed biquad sections.
func (f *Filter) Sections() []biquad.Coefficients {
	out := make([]biquad.Coefficients, len(f.coeffs))
	copy(out, f.coeffs)
	return out
}

// Corners returns the lower and upper -3 dB frequencies of a single pass.
func (f *Filter) Corners() (low, high float64) {
	return f.centerHz - f.bandwidth/2, f.centerHz + f.bandwidth/2
}

// MagnitudeDB returns the effective zero-phase magnitude at freqHz, which
// is twice the single-pass value in dB.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	return f.Chain().ZeroPhaseMagnitudeDB(freqHz, f.sampleRate)
}

func (f *Filter) SampleRate() float64 { return f.sampleRate }
func (f *Filter) Center() float64     { return f.centerHz }
func (f *Filter) Bandwidth() float64  { return f.bandwidth }
func (f *Filter) Order() int          { return f.order }
