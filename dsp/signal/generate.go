package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-doa/dsp/array"
	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Generator creates deterministic signals from a shared configuration.
//
// Noise is drawn from a single seeded stream, so successive calls return
// independent realisations while the whole sequence stays reproducible for a
// given seed.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
	rng  *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the seed the noise stream was last reset with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed restarts the noise stream from seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
}

// TimeAxis returns the sample times covering [0, duration) at the generator
// sample rate.
func (g *Generator) TimeAxis(duration float64) ([]float64, error) {
	return TimeAxis(g.cfg.SampleRate, duration)
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: sine samples must be > 0: %d", core.ErrInvalidParameter, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sine sample rate must be > 0: %f", core.ErrInvalidParameter, g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// GaussianNoise returns zero-mean Gaussian noise with standard deviation sigma.
func (g *Generator) GaussianNoise(sigma float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: noise samples must be > 0: %d", core.ErrInvalidParameter, samples)
	}
	if sigma < 0 || !core.IsFinite(sigma) {
		return nil, fmt.Errorf("%w: noise sigma must be >= 0: %f", core.ErrInvalidParameter, sigma)
	}
	out := make([]float64, samples)
	if sigma == 0 {
		return out, nil
	}
	for i := range out {
		out[i] = g.rng.NormFloat64()
	}
	vecmath.ScaleBlockInPlace(out, sigma)
	return out, nil
}

// SensorPair holds synchronized recordings of the two array sensors.
type SensorPair struct {
	X1, X2 []float64
	// Delay is the true arrival-time difference in seconds that was applied
	// to X2.
	Delay float64
}

// SensorPair synthesizes the two sensor signals for a tone at freqHz arriving
// from thetaDeg.
//
//	x1[i] = sin(2*pi*f*t[i])       + n1[i]
//	x2[i] = sin(2*pi*f*(t[i]-tau)) + n2[i]
//
// with tau = geom.Delay(thetaDeg) and n1, n2 independent Gaussian noise of
// standard deviation sigma. n1 is drawn before n2.
func (g *Generator) SensorPair(t []float64, freqHz, thetaDeg float64, geom array.Geometry, sigma float64) (SensorPair, error) {
	if len(t) == 0 {
		return SensorPair{}, fmt.Errorf("%w: time axis must not be empty", core.ErrNumericEdgeCase)
	}
	if !(freqHz > 0) || !core.IsFinite(freqHz) {
		return SensorPair{}, fmt.Errorf("%w: tone frequency must be > 0: %f", core.ErrInvalidParameter, freqHz)
	}
	if !core.IsFinite(thetaDeg) {
		return SensorPair{}, fmt.Errorf("%w: source angle must be finite: %f", core.ErrInvalidParameter, thetaDeg)
	}
	if err := geom.Validate(); err != nil {
		return SensorPair{}, err
	}

	n1, err := g.GaussianNoise(sigma, len(t))
	if err != nil {
		return SensorPair{}, err
	}
	n2, err := g.GaussianNoise(sigma, len(t))
	if err != nil {
		return SensorPair{}, err
	}

	tau := geom.Delay(thetaDeg)
	w := 2 * math.Pi * freqHz
	x1 := make([]float64, len(t))
	x2 := make([]float64, len(t))
	for i, ti := range t {
		x1[i] = math.Sin(w * ti)
		x2[i] = math.Sin(w * (ti - tau))
	}
	vecmath.AddBlockInPlace(x1, n1)
	vecmath.AddBlockInPlace(x2, n2)

	return SensorPair{X1: x1, X2: x2, Delay: tau}, nil
}
