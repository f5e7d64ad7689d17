package doa

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-doa/dsp/spectrum"
)

// DefaultBins is the number of spectrum bins averaged around the tone.
const DefaultBins = 5

type estimatorConfig struct {
	bins int
}

// EstimatorOption configures a PhaseEstimator.
type EstimatorOption func(*estimatorConfig)

// WithBins sets how many bins centred on the tone bin are averaged. The
// window spans bins/2 bins on each side of the centre, so an even value
// behaves like the next odd one.
func WithBins(n int) EstimatorOption {
	return func(cfg *estimatorConfig) { cfg.bins = n }
}

// Estimate is the result of one phase-based delay measurement.
type Estimate struct {
	Delay     float64 // seconds, positive when sensor 1 leads
	Phase     float64 // cross-spectrum phase in (-π, π]
	CenterBin int
	CenterHz  float64
	StartBin  int // first averaged bin
	EndBin    int // one past the last averaged bin
	Magnitude float64
	Coherence float64 // |mean cross phasor| / mean |X1||X2|, in [0, 1]
}

// PhaseEstimator measures the delay between two equally long records of a
// tone of known frequency. It holds no buffers and is safe for concurrent
// use.
type PhaseEstimator struct {
	sampleRate float64
	freqHz     float64
	bins       int
}

// NewPhaseEstimator validates the configuration and returns an estimator.
// freqHz must lie strictly between 0 and the Nyquist frequency.
func NewPhaseEstimator(sampleRate, freqHz float64, opts ...EstimatorOption) (*PhaseEstimator, error) {
	cfg := estimatorConfig{bins: DefaultBins}
	for _, o := range opts {
		o(&cfg)
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %f", core.ErrInvalidParameter, sampleRate)
	}
	if cfg.bins < 1 {
		return nil, fmt.Errorf("%w: bins must be >= 1: %d", core.ErrInvalidParameter, cfg.bins)
	}
	if !(freqHz > 0) || !(freqHz < sampleRate/2) {
		return nil, fmt.Errorf("%w: frequency %f outside (0, %f)", core.ErrNumericEdgeCase, freqHz, sampleRate/2)
	}

	return &PhaseEstimator{
		sampleRate: sampleRate,
		freqHz:     freqHz,
		bins:       cfg.bins,
	}, nil
}

// Bins returns the configured averaging width.
func (e *PhaseEstimator) Bins() int { return e.bins }

// Estimate computes the delay of x2 relative to x1.
//
// Both records are transformed at their full length. The bin closest to the
// tone (ties to the lower bin) and bins/2 neighbours on each side are
// averaged as X1[k]*conj(X2[k]); the window is clipped to the transform, so
// near DC or Nyquist it may be narrower or include bins of the other
// frequency sign. The phase of the mean is converted with the centre bin
// frequency. Delays longer than half a tone period wrap around.
func (e *PhaseEstimator) Estimate(x1, x2 []float64) (Estimate, error) {
	n := len(x1)
	if n != len(x2) {
		return Estimate{}, fmt.Errorf("%w: record lengths differ: %d != %d", core.ErrNumericEdgeCase, n, len(x2))
	}
	if n < 3 {
		return Estimate{}, fmt.Errorf("%w: need at least 3 samples, got %d", core.ErrNumericEdgeCase, n)
	}

	dft, err := spectrum.NewDFT(n)
	if err != nil {
		return Estimate{}, err
	}
	spec1, err := dft.Forward(nil, x1)
	if err != nil {
		return Estimate{}, err
	}
	spec2, err := dft.Forward(nil, x2)
	if err != nil {
		return Estimate{}, err
	}

	k0, err := spectrum.NearestPositiveBin(e.freqHz, n, e.sampleRate)
	if err != nil {
		return Estimate{}, err
	}

	half := e.bins / 2
	start := max(k0-half, 0)
	end := min(k0+half+1, n)

	var cross complex128
	var norm float64
	for k := start; k < end; k++ {
		cross += spec1[k] * cmplx.Conj(spec2[k])
		norm += cmplx.Abs(spec1[k]) * cmplx.Abs(spec2[k])
	}

	count := float64(end - start)
	mean := cross / complex(count, 0)

	phase := cmplx.Phase(mean)
	if phase <= -math.Pi {
		phase = math.Pi
	}

	centerHz := float64(k0) * e.sampleRate / float64(n)

	est := Estimate{
		Delay:     phase / (2 * math.Pi * centerHz),
		Phase:     phase,
		CenterBin: k0,
		CenterHz:  centerHz,
		StartBin:  start,
		EndBin:    end,
		Magnitude: cmplx.Abs(mean),
	}
	if norm > 0 {
		est.Coherence = cmplx.Abs(cross) / norm
	}

	return est, nil
}

// EstimateTDOAPhase is a one-shot helper returning only the delay in
// seconds.
func EstimateTDOAPhase(x1, x2 []float64, sampleRate, freqHz float64, bins int) (float64, error) {
	e, err := NewPhaseEstimator(sampleRate, freqHz, WithBins(bins))
	if err != nil {
		return 0, err
	}
	est, err := e.Estimate(x1, x2)
	if err != nil {
		return 0, err
	}
	return est.Delay, nil
}
