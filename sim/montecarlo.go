package sim

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/cwbudde/algo-doa/dsp/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the angle error over repeated runs of one scenario.
type Summary struct {
	ThetaDeg     float64
	Trials       int
	MeanDeg      float64 // mean estimated angle
	BiasDeg      float64 // mean error
	StdDeg       float64 // sample std of the estimate
	RMSEDeg      float64
	MaxAbsErrDeg float64
	Clipped      int // runs whose delay exceeded the physical maximum
}

type monteCarloConfig struct {
	workers  int
	progress func(done, total int)
}

// MonteCarloOption configures MonteCarlo and AngleSweep.
type MonteCarloOption func(*monteCarloConfig)

// WithWorkers bounds the number of concurrent runs. Default is
// runtime.NumCPU().
func WithWorkers(n int) MonteCarloOption {
	return func(cfg *monteCarloConfig) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithProgress registers a callback invoked after every finished run.
// Calls are serialized.
func WithProgress(fn func(done, total int)) MonteCarloOption {
	return func(cfg *monteCarloConfig) { cfg.progress = fn }
}

// MonteCarlo repeats Run trials times with seeds p.Seed, p.Seed+1, ... and
// summarizes the estimates. The result does not depend on the number of
// workers. Cancellation of ctx stops scheduling new runs and returns
// ctx.Err().
func MonteCarlo(ctx context.Context, p Params, trials int, opts ...MonteCarloOption) (Summary, error) {
	sums, err := AngleSweep(ctx, p, []float64{p.ThetaDeg}, trials, opts...)
	if err != nil {
		return Summary{}, err
	}
	return sums[0], nil
}

// AngleSweep runs MonteCarlo for every angle in angles, sharing one worker
// pool, and returns the summaries in the same order.
func AngleSweep(ctx context.Context, p Params, angles []float64, trials int, opts ...MonteCarloOption) ([]Summary, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%w: trials must be >= 1: %d", core.ErrInvalidParameter, trials)
	}
	if len(angles) == 0 {
		return nil, fmt.Errorf("%w: no angles to sweep", core.ErrInvalidParameter)
	}
	for _, a := range angles {
		q := p
		q.ThetaDeg = a
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}

	cfg := monteCarloConfig{workers: runtime.NumCPU()}
	for _, o := range opts {
		o(&cfg)
	}

	type job struct{ angle, trial int }

	total := len(angles) * trials
	estimates := make([][]float64, len(angles))
	clipped := make([][]bool, len(angles))
	for i := range angles {
		estimates[i] = make([]float64, trials)
		clipped[i] = make([]bool, trials)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)

	for w := 0; w < min(cfg.workers, total); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					continue
				}
				q := p
				q.ThetaDeg = angles[j.angle]
				q.Seed = p.Seed + int64(j.trial)

				res, err := Run(q)

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = fmt.Errorf("theta %g trial %d: %w", q.ThetaDeg, j.trial, err)
						cancel()
					}
					mu.Unlock()
					continue
				}
				estimates[j.angle][j.trial] = res.EstimatedAngleDeg
				clipped[j.angle][j.trial] = res.Clipped
				done++
				if cfg.progress != nil {
					cfg.progress(done, total)
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for a := range angles {
		for i := 0; i < trials; i++ {
			select {
			case jobs <- job{angle: a, trial: i}:
			case <-ctx.Done():
				break feed
			}
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Summary, len(angles))
	for i, a := range angles {
		out[i] = summarize(a, estimates[i], clipped[i])
	}
	return out, nil
}

func summarize(theta float64, est []float64, clipped []bool) Summary {
	s := Summary{ThetaDeg: theta, Trials: len(est)}

	s.MeanDeg, s.StdDeg = stat.MeanStdDev(est, nil)
	if len(est) < 2 {
		s.StdDeg = 0
	}
	s.BiasDeg = s.MeanDeg - theta

	errs := make([]float64, len(est))
	copy(errs, est)
	floats.AddConst(-theta, errs)

	sq := make([]float64, len(errs))
	floats.MulTo(sq, errs, errs)
	s.RMSEDeg = math.Sqrt(stat.Mean(sq, nil))

	for i := range errs {
		errs[i] = math.Abs(errs[i])
	}
	s.MaxAbsErrDeg = floats.Max(errs)

	for _, c := range clipped {
		if c {
			s.Clipped++
		}
	}
	return s
}
