package sim

import (
	"fmt"

	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-doa/dsp/filter/bandpass"
	"github.com/cwbudde/algo-doa/dsp/signal"
	"github.com/cwbudde/algo-doa/measure/doa"
)

// Result holds the signals and estimates of one run.
type Result struct {
	TrueAngleDeg      float64
	EstimatedAngleDeg float64
	TauTrue           float64 // seconds
	DeltaTEstimated   float64 // seconds
	Ratio             float64 // delay*c/d before clipping
	Clipped           bool    // |Ratio| > 1, the delay is not physical
	SpatialAliasing   bool    // tone above c/(2d)

	Time       []float64
	X1, X2     []float64
	X1Filtered []float64
	X2Filtered []float64

	Estimate doa.Estimate
}

// ErrorDeg returns the estimated minus the true angle.
func (r Result) ErrorDeg() float64 {
	return r.EstimatedAngleDeg - r.TrueAngleDeg
}

// Run executes one simulation. Errors from a stage are wrapped with the
// stage name and keep the core sentinel for errors.Is.
func Run(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	geom, err := p.Geometry()
	if err != nil {
		return Result{}, fmt.Errorf("geometry: %w", err)
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(p.SampleRate)},
		signal.WithSeed(p.Seed),
	)

	t, err := gen.TimeAxis(p.Duration)
	if err != nil {
		return Result{}, fmt.Errorf("time axis: %w", err)
	}

	pair, err := gen.SensorPair(t, p.ToneHz, p.ThetaDeg, geom, p.NoiseSigma)
	if err != nil {
		return Result{}, fmt.Errorf("synthesis: %w", err)
	}

	filt, err := bandpass.New(p.SampleRate, p.ToneHz,
		bandpass.WithBandwidth(p.Bandwidth),
		bandpass.WithOrder(p.FilterOrder),
	)
	if err != nil {
		return Result{}, fmt.Errorf("bandpass: %w", err)
	}
	y1, err := filt.Apply(pair.X1)
	if err != nil {
		return Result{}, fmt.Errorf("bandpass: %w", err)
	}
	y2, err := filt.Apply(pair.X2)
	if err != nil {
		return Result{}, fmt.Errorf("bandpass: %w", err)
	}

	est, err := doa.NewPhaseEstimator(p.SampleRate, p.ToneHz, doa.WithBins(p.Bins))
	if err != nil {
		return Result{}, fmt.Errorf("estimator: %w", err)
	}
	bearing, err := est.Locate(y1, y2, geom)
	if err != nil {
		return Result{}, fmt.Errorf("estimator: %w", err)
	}

	return Result{
		TrueAngleDeg:      p.ThetaDeg,
		EstimatedAngleDeg: bearing.AngleDeg,
		TauTrue:           pair.Delay,
		DeltaTEstimated:   bearing.Delay,
		Ratio:             bearing.Ratio,
		Clipped:           bearing.Clipped,
		SpatialAliasing:   p.ToneHz > geom.AliasFreeFrequency(),
		Time:              t,
		X1:                pair.X1,
		X2:                pair.X2,
		X1Filtered:        y1,
		X2Filtered:        y2,
		Estimate:          bearing.Estimate,
	}, nil
}
