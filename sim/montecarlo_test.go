package sim

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/stretchr/testify/require"
)

func shortParams() Params {
	p := DefaultParams()
	p.Duration = 0.02
	return p
}

func TestMonteCarlo_IndependentOfWorkers(t *testing.T) {
	p := shortParams()

	serial, err := MonteCarlo(context.Background(), p, 6, WithWorkers(1))
	require.NoError(t, err)
	parallel, err := MonteCarlo(context.Background(), p, 6, WithWorkers(4))
	require.NoError(t, err)

	require.Equal(t, serial, parallel)
	require.Equal(t, 6, serial.Trials)
	require.Equal(t, p.ThetaDeg, serial.ThetaDeg)
	require.InDelta(t, 0, serial.BiasDeg, 1)
	require.Less(t, serial.RMSEDeg, 1.0)
	require.GreaterOrEqual(t, serial.MaxAbsErrDeg, serial.RMSEDeg*0.999)
	require.Zero(t, serial.Clipped)
}

func TestMonteCarlo_SingleTrialMatchesRun(t *testing.T) {
	p := shortParams()
	res, err := Run(p)
	require.NoError(t, err)

	s, err := MonteCarlo(context.Background(), p, 1)
	require.NoError(t, err)
	require.Equal(t, res.EstimatedAngleDeg, s.MeanDeg)
	require.Zero(t, s.StdDeg)
}

func TestMonteCarlo_Progress(t *testing.T) {
	var calls atomic.Int32
	var seen []int
	_, err := MonteCarlo(context.Background(), shortParams(), 5,
		WithWorkers(3),
		WithProgress(func(done, total int) {
			calls.Add(1)
			if total == 5 {
				seen = append(seen, done)
			}
		}),
	)
	require.NoError(t, err)
	require.EqualValues(t, 5, calls.Load())
	require.Equal(t, []int{1, 2, 3, 4, 5}, seen)
}

func TestMonteCarlo_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MonteCarlo(ctx, shortParams(), 50)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMonteCarlo_InvalidInput(t *testing.T) {
	_, err := MonteCarlo(context.Background(), shortParams(), 0)
	require.ErrorIs(t, err, core.ErrInvalidParameter)

	p := shortParams()
	p.Spacing = 0
	_, err = MonteCarlo(context.Background(), p, 3)
	require.ErrorIs(t, err, core.ErrInvalidParameter)

	p = shortParams()
	p.ToneHz = 49500
	_, err = MonteCarlo(context.Background(), p, 3)
	require.ErrorIs(t, err, core.ErrInvalidParameter)
	require.ErrorContains(t, err, "bandpass:")
}

func TestAngleSweep(t *testing.T) {
	angles := []float64{-40, 0, 40}
	sums, err := AngleSweep(context.Background(), shortParams(), angles, 3, WithWorkers(2))
	require.NoError(t, err)
	require.Len(t, sums, len(angles))
	for i, s := range sums {
		require.Equal(t, angles[i], s.ThetaDeg)
		require.InDelta(t, angles[i], s.MeanDeg, 1)
	}

	_, err = AngleSweep(context.Background(), shortParams(), nil, 3)
	require.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = AngleSweep(context.Background(), shortParams(), []float64{0, 95}, 3)
	require.ErrorIs(t, err, core.ErrInvalidParameter)
}
