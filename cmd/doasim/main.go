// Command doasim simulates direction-of-arrival estimation of a tone with a
// two-hydrophone array and prints the result.
//
// Usage:
//
//	doasim [flags]
//
// Without mode flags it performs a single run and prints true and estimated
// bearing. Settings come from the defaults, an optional YAML file given with
// -config, ALGODOA_* environment variables and finally the command-line
// flags, in increasing priority.
//
// Examples:
//
//	doasim -theta 35 -noise 0.02
//	doasim -sweep -trials 50
//	doasim -spectrum
//	doasim -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/cwbudde/algo-doa/internal/config"
	"github.com/cwbudde/algo-doa/sim"
	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	theta := flag.Float64("theta", 0, "true source bearing in degrees, [-90, 90]")
	noise := flag.Float64("noise", 0, "noise standard deviation per sensor")
	seed := flag.Int64("seed", 0, "random seed")
	sweep := flag.Bool("sweep", false, "run a Monte Carlo sweep over the configured angles")
	trials := flag.Int("trials", 0, "Monte Carlo trials per angle")
	spectrum := flag.Bool("spectrum", false, "print the spectrum around the tone before and after filtering")
	list := flag.Bool("list", false, "print recommended noise levels per bearing")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: doasim [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Simulates phase-based TDOA direction finding with two sensors.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  doasim -theta 35 -noise 0.02\n")
		fmt.Fprintf(os.Stderr, "  doasim -sweep -trials 50\n")
		fmt.Fprintf(os.Stderr, "  doasim -spectrum\n")
		fmt.Fprintf(os.Stderr, "  doasim -list\n")
	}
	flag.Parse()

	if *list {
		printNoiseTable(os.Stdout)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theta":
			cfg.Simulation.ThetaDeg = *theta
		case "noise":
			cfg.Simulation.NoiseSigma = *noise
		case "seed":
			cfg.Simulation.Seed = *seed
		case "trials":
			cfg.Sweep.Trials = *trials
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logging).With("run_id", uuid.NewString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *sweep:
		err = runSweep(ctx, os.Stdout, logger, cfg)
	case *spectrum:
		err = runSpectrum(os.Stdout, logger, cfg)
	default:
		err = runSingle(os.Stdout, logger, cfg)
	}
	if err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func logParams(logger *slog.Logger, p sim.Params) {
	logger.Debug("parameters",
		"theta_deg", p.ThetaDeg,
		"noise_sigma", p.NoiseSigma,
		"spacing_m", p.Spacing,
		"duration_s", p.Duration,
		"sample_rate", p.SampleRate,
		"tone_hz", p.ToneHz,
		"bandwidth_hz", p.Bandwidth,
		"sound_speed", p.SoundSpeed,
		"bins", p.Bins,
		"filter_order", p.FilterOrder,
		"seed", p.Seed,
	)
}

func warnResult(logger *slog.Logger, res sim.Result) {
	if res.Clipped {
		logger.Warn("estimated delay exceeds the physical maximum, angle clipped",
			"ratio", res.Ratio)
	}
	if res.SpatialAliasing {
		logger.Warn("tone above the alias-free frequency for this spacing, bearing may be ambiguous")
	}
}

func runSingle(w io.Writer, logger *slog.Logger, cfg *config.Config) error {
	p := cfg.Params()
	logParams(logger, p)

	res, err := sim.Run(p)
	if err != nil {
		return err
	}
	warnResult(logger, res)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "True angle\t%.2f deg\n", res.TrueAngleDeg)
	fmt.Fprintf(tw, "Estimated angle\t%.2f deg\n", res.EstimatedAngleDeg)
	fmt.Fprintf(tw, "Error\t%.3f deg\n", res.ErrorDeg())
	fmt.Fprintf(tw, "True delay\t%.4e s\n", res.TauTrue)
	fmt.Fprintf(tw, "Estimated delay\t%.4e s\n", res.DeltaTEstimated)
	fmt.Fprintf(tw, "Ratio\t%.5f\n", res.Ratio)
	fmt.Fprintf(tw, "Centre bin\t%d (%.1f Hz)\n", res.Estimate.CenterBin, res.Estimate.CenterHz)
	fmt.Fprintf(tw, "Coherence\t%.4f\n", res.Estimate.Coherence)
	return tw.Flush()
}

func runSweep(ctx context.Context, w io.Writer, logger *slog.Logger, cfg *config.Config) error {
	p := cfg.Params()
	logParams(logger, p)

	total := len(cfg.Sweep.Angles) * cfg.Sweep.Trials
	step := max(total/10, 1)
	progress := func(done, n int) {
		if done%step == 0 || done == n {
			logger.Info("sweep progress", "done", done, "total", n)
		}
	}

	sums, err := sim.AngleSweep(ctx, p, cfg.Sweep.Angles, cfg.Sweep.Trials,
		sim.WithWorkers(cfg.Sweep.Workers),
		sim.WithProgress(progress),
	)
	if errors.Is(err, context.Canceled) {
		logger.Warn("sweep interrupted")
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Theta\tMean\tBias\tStd\tRMSE\tMax |err|\tClipped\t")
	for _, s := range sums {
		fmt.Fprintf(tw, "%.1f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%d/%d\t\n",
			s.ThetaDeg, s.MeanDeg, s.BiasDeg, s.StdDeg, s.RMSEDeg, s.MaxAbsErrDeg, s.Clipped, s.Trials)
	}
	return tw.Flush()
}

func runSpectrum(w io.Writer, logger *slog.Logger, cfg *config.Config) error {
	p := cfg.Params()
	logParams(logger, p)

	res, err := sim.Run(p)
	if err != nil {
		return err
	}
	warnResult(logger, res)

	view := func(x []float64) (sim.SpectrumView, error) {
		if cfg.Spectrum.FrameSize > 0 {
			return sim.AveragedSpectrum(x, p.SampleRate, p.ToneHz, cfg.Spectrum.SpanHz, cfg.Spectrum.FrameSize)
		}
		return sim.ZoomSpectrum(x, p.SampleRate, p.ToneHz, cfg.Spectrum.SpanHz)
	}

	raw, err := view(res.X1)
	if err != nil {
		return err
	}
	filtered, err := view(res.X1Filtered)
	if err != nil {
		return err
	}

	rows := len(raw.FreqHz)
	step := max(rows/40, 1)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Freq (Hz)\tRaw (dB)\tFiltered (dB)\t")
	for i := 0; i < rows; i += step {
		fmt.Fprintf(tw, "%.1f\t%.1f\t%.1f\t\n", raw.FreqHz[i], raw.DB[i], filtered.DB[i])
	}
	return tw.Flush()
}

func printNoiseTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Theta (deg)\tNoise sigma\t")
	for theta := 0; theta <= 90; theta += 5 {
		fmt.Fprintf(tw, "%d\t%.2f\t\n", theta, sim.RecommendedNoiseSigma(float64(theta)))
	}
	tw.Flush()
}
