package bandpass

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-doa/internal/testutil"
)

const (
	sr = 100000.0
	fc = 30000.0
)

func mustNew(t *testing.T, opts ...Option) *Filter {
	t.Helper()
	f, err := New(sr, fc, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNew_Defaults(t *testing.T) {
	f := mustNew(t)
	if f.Order() != DefaultOrder || f.Bandwidth() != DefaultBandwidth {
		t.Fatalf("order=%d bandwidth=%v", f.Order(), f.Bandwidth())
	}
	if len(f.Sections()) != DefaultOrder {
		t.Fatalf("sections=%d, want %d", len(f.Sections()), DefaultOrder)
	}
	low, high := f.Corners()
	if low != 29000 || high != 31000 {
		t.Fatalf("corners = %v, %v", low, high)
	}
	if !f.Chain().Stable() {
		t.Fatal("designed cascade is unstable")
	}
}

func TestNew_InvalidParameters(t *testing.T) {
	cases := []struct {
		name   string
		sr, fc float64
		opts   []Option
	}{
		{"lower corner at zero", sr, 1000, nil},
		{"upper corner above Nyquist", sr, 49500, nil},
		{"zero order", sr, fc, []Option{WithOrder(0)}},
		{"zero bandwidth", sr, fc, []Option{WithBandwidth(0)}},
		{"negative sample rate", -1, fc, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.sr, tc.fc, tc.opts...); !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestApply_Empty(t *testing.T) {
	if _, err := mustNew(t).Apply(nil); !errors.Is(err, core.ErrNumericEdgeCase) {
		t.Fatalf("err = %v, want ErrNumericEdgeCase", err)
	}
}

func TestApply_LengthPreserved(t *testing.T) {
	f := mustNew(t)
	for _, n := range []int{1, 2, 5, 26, 27, 1000} {
		out, err := f.Apply(testutil.DeterministicNoise(int64(n), 1, n))
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(out) != n {
			t.Fatalf("n=%d: len=%d", n, len(out))
		}
		testutil.RequireFinite(t, out)
	}
}

func TestApply_PassbandTone(t *testing.T) {
	const n = 20000
	x := testutil.DeterministicSine(fc, sr, 1, n)
	y, err := mustNew(t).Apply(x)
	if err != nil {
		t.Fatal(err)
	}

	// Skip the edges where the filter settles.
	in := testutil.RMS(x[2000 : n-2000])
	out := testutil.RMS(y[2000 : n-2000])
	if db := 20 * math.Log10(out/in); math.Abs(db) > 0.1 {
		t.Fatalf("passband gain %.4f dB, want about 0", db)
	}
}

func TestApply_StopbandTone(t *testing.T) {
	const n = 20000
	f := mustNew(t)
	for _, freq := range []float64{fc - 3*DefaultBandwidth, fc + 3*DefaultBandwidth} {
		x := testutil.DeterministicSine(freq, sr, 1, n)
		y, err := f.Apply(x)
		if err != nil {
			t.Fatal(err)
		}
		in := testutil.RMS(x[2000 : n-2000])
		out := testutil.RMS(y[2000 : n-2000])
		if db := 20 * math.Log10(out/in); db > -20 {
			t.Fatalf("%v Hz attenuated only %.2f dB", freq, db)
		}
	}
}

func TestApply_ZeroPhase(t *testing.T) {
	const n = 20000
	x := testutil.DeterministicSine(fc, sr, 1, n)
	y, err := mustNew(t).Apply(x)
	if err != nil {
		t.Fatal(err)
	}

	gain := math.Pow(10, mustNew(t).MagnitudeDB(fc)/20)
	for i := 2000; i < n-2000; i++ {
		if d := math.Abs(y[i] - gain*x[i]); d > 1e-3 {
			t.Fatalf("sample %d: got %v, want %v", i, y[i], gain*x[i])
		}
	}
}

func TestMagnitudeDB(t *testing.T) {
	f := mustNew(t)
	if db := f.MagnitudeDB(29000); !almostEqual(db, -20*math.Log10(2), 1e-6) {
		t.Fatalf("corner %.6f dB, want -6.0206 for a forward-backward pass", db)
	}
	if db := f.MagnitudeDB(fc + 3*DefaultBandwidth); db > -20 {
		t.Fatalf("stopband %.2f dB", db)
	}
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
