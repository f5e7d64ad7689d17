// Package config loads the doasim configuration from YAML and environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-doa/sim"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ALGODOA_SIMULATION_THETA_DEG.
const EnvPrefix = "ALGODOA"

// Config is the root configuration structure
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Sweep      SweepConfig      `mapstructure:"sweep"`
	Spectrum   SpectrumConfig   `mapstructure:"spectrum"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SimulationConfig mirrors sim.Params
type SimulationConfig struct {
	ThetaDeg    float64 `mapstructure:"theta_deg"`
	NoiseSigma  float64 `mapstructure:"noise_sigma"`
	Spacing     float64 `mapstructure:"spacing"`
	Duration    float64 `mapstructure:"duration"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	ToneHz      float64 `mapstructure:"tone_hz"`
	Bandwidth   float64 `mapstructure:"bandwidth"`
	SoundSpeed  float64 `mapstructure:"sound_speed"`
	Bins        int     `mapstructure:"bins"`
	FilterOrder int     `mapstructure:"filter_order"`
	Seed        int64   `mapstructure:"seed"`
}

// SweepConfig configures Monte Carlo angle sweeps
type SweepConfig struct {
	Angles  []float64 `mapstructure:"angles"`
	Trials  int       `mapstructure:"trials"`
	Workers int       `mapstructure:"workers"` // 0 = one per CPU
}

// SpectrumConfig configures the spectrum tables
type SpectrumConfig struct {
	SpanHz    float64 `mapstructure:"span_hz"`
	FrameSize int     `mapstructure:"frame_size"` // 0 = exact full-record transform
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Default returns the default configuration
func Default() *Config {
	p := sim.DefaultParams()
	return &Config{
		Simulation: SimulationConfig{
			ThetaDeg:    p.ThetaDeg,
			NoiseSigma:  p.NoiseSigma,
			Spacing:     p.Spacing,
			Duration:    p.Duration,
			SampleRate:  p.SampleRate,
			ToneHz:      p.ToneHz,
			Bandwidth:   p.Bandwidth,
			SoundSpeed:  p.SoundSpeed,
			Bins:        p.Bins,
			FilterOrder: p.FilterOrder,
			Seed:        p.Seed,
		},
		Sweep: SweepConfig{
			Angles: []float64{-60, -40, -20, 0, 20, 40, 60},
			Trials: 20,
		},
		Spectrum: SpectrumConfig{
			SpanHz: sim.DefaultSpanHz,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (YAML) if it exists, then applies ALGODOA_* environment
// overrides on top of the defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var pathErr *fs.PathError
			if !errors.As(err, &pathErr) || !errors.Is(pathErr, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("simulation.theta_deg", d.Simulation.ThetaDeg)
	v.SetDefault("simulation.noise_sigma", d.Simulation.NoiseSigma)
	v.SetDefault("simulation.spacing", d.Simulation.Spacing)
	v.SetDefault("simulation.duration", d.Simulation.Duration)
	v.SetDefault("simulation.sample_rate", d.Simulation.SampleRate)
	v.SetDefault("simulation.tone_hz", d.Simulation.ToneHz)
	v.SetDefault("simulation.bandwidth", d.Simulation.Bandwidth)
	v.SetDefault("simulation.sound_speed", d.Simulation.SoundSpeed)
	v.SetDefault("simulation.bins", d.Simulation.Bins)
	v.SetDefault("simulation.filter_order", d.Simulation.FilterOrder)
	v.SetDefault("simulation.seed", d.Simulation.Seed)

	v.SetDefault("sweep.angles", d.Sweep.Angles)
	v.SetDefault("sweep.trials", d.Sweep.Trials)
	v.SetDefault("sweep.workers", d.Sweep.Workers)

	v.SetDefault("spectrum.span_hz", d.Spectrum.SpanHz)
	v.SetDefault("spectrum.frame_size", d.Spectrum.FrameSize)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Params converts the simulation section to sim.Params.
func (c *Config) Params() sim.Params {
	s := c.Simulation
	return sim.Params{
		ThetaDeg:    s.ThetaDeg,
		NoiseSigma:  s.NoiseSigma,
		Spacing:     s.Spacing,
		Duration:    s.Duration,
		SampleRate:  s.SampleRate,
		ToneHz:      s.ToneHz,
		Bandwidth:   s.Bandwidth,
		SoundSpeed:  s.SoundSpeed,
		Bins:        s.Bins,
		FilterOrder: s.FilterOrder,
		Seed:        s.Seed,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	if c.Sweep.Trials < 1 {
		return fmt.Errorf("%w: sweep trials must be >= 1, got %d", core.ErrInvalidParameter, c.Sweep.Trials)
	}
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("%w: sweep workers must be >= 0, got %d", core.ErrInvalidParameter, c.Sweep.Workers)
	}
	for _, a := range c.Sweep.Angles {
		if a < -90 || a > 90 {
			return fmt.Errorf("%w: sweep angle %g outside [-90, 90]", core.ErrInvalidParameter, a)
		}
	}

	if !(c.Spectrum.SpanHz > 0) {
		return fmt.Errorf("%w: spectrum span_hz must be > 0, got %f", core.ErrInvalidParameter, c.Spectrum.SpanHz)
	}
	if n := c.Spectrum.FrameSize; n != 0 && (n < 2 || n&(n-1) != 0) {
		return fmt.Errorf("%w: spectrum frame_size must be 0 or a power of two, got %d", core.ErrInvalidParameter, n)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}

	return nil
}
