package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-doa/dsp/core"
	"github.com/cwbudde/algo-doa/dsp/window"
	"github.com/cwbudde/algo-doa/internal/testutil"
)

func TestAnalyzer_BinCentredSine(t *testing.T) {
	const (
		sr   = 102400.0
		size = 1024
		bin  = 100
	)
	a, err := NewAnalyzer(sr, WithFrameSize(size))
	if err != nil {
		t.Fatal(err)
	}
	freq := a.BinFrequency(bin)
	if freq != 10000 {
		t.Fatalf("BinFrequency(%d) = %v", bin, freq)
	}

	x := testutil.DeterministicSine(freq, sr, 0.5, 8*size)
	amp, err := a.Amplitude(x)
	if err != nil {
		t.Fatal(err)
	}
	if len(amp) != size/2+1 {
		t.Fatalf("len = %d, want %d", len(amp), size/2+1)
	}

	peak := 0
	for k := range amp {
		if amp[k] > amp[peak] {
			peak = k
		}
	}
	if peak != bin {
		t.Fatalf("peak at bin %d, want %d", peak, bin)
	}
	if math.Abs(amp[bin]-0.5) > 1e-6 {
		t.Fatalf("amplitude %v, want 0.5", amp[bin])
	}

	db, err := a.AmplitudeDB(x)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(db[bin]-20*math.Log10(0.5)) > 1e-4 {
		t.Fatalf("dB %v", db[bin])
	}
	if db[bin+20] > -100 {
		t.Fatalf("leakage at bin %d: %v dB", bin+20, db[bin+20])
	}
}

func TestAnalyzer_ShortInputZeroPadded(t *testing.T) {
	a, err := NewAnalyzer(48000, WithFrameSize(256), WithWindow(window.TypeRectangular), WithOverlap(0))
	if err != nil {
		t.Fatal(err)
	}
	amp, err := a.Amplitude([]float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	// Two ones in a 256-point rectangular frame: |X[0]| = 2.
	if math.Abs(amp[0]-2*2.0/256) > 1e-12 {
		t.Fatalf("amp[0] = %v", amp[0])
	}
	if a.FrameSize() != 256 {
		t.Fatalf("FrameSize = %d", a.FrameSize())
	}
}

func TestAnalyzer_InvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		sr   float64
		opts []AnalyzerOption
	}{
		{"zero sample rate", 0, nil},
		{"non power of two", 48000, []AnalyzerOption{WithFrameSize(1000)}},
		{"frame too small", 48000, []AnalyzerOption{WithFrameSize(1)}},
		{"overlap one", 48000, []AnalyzerOption{WithOverlap(1)}},
		{"negative overlap", 48000, []AnalyzerOption{WithOverlap(-0.1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewAnalyzer(tc.sr, tc.opts...); !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}

	a, err := NewAnalyzer(48000)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Amplitude(nil); !errors.Is(err, core.ErrNumericEdgeCase) {
		t.Fatalf("empty input err = %v", err)
	}
}
