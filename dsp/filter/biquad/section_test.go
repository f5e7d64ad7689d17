package biquad

import (
	"math"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func smoothing() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Impulse through B0=0.25, B1=0.5, B2=0.25, A1=-0.2, A2=0.04, traced by hand:
	//
	// n=0: y=0.25       d0=0.5+0.05=0.55     d1=0.25-0.01=0.24
	// n=1: y=0.55       d0=0.11+0.24=0.35    d1=-0.022
	// n=2: y=0.35       d0=0.07-0.022=0.048  d1=-0.014
	// n=3: y=0.048
	s := NewSection(smoothing())

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	// Odd length exercises the unrolled loop tail.
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.6}

	s1 := NewSection(smoothing())
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	s2 := NewSection(smoothing())
	block := append([]float64(nil), input...)
	s2.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Errorf("sample %d: ProcessBlock=%.15f, ProcessSample=%.15f", i, block[i], ref[i])
		}
	}
	if s1.State() != s2.State() {
		t.Fatalf("state mismatch: %v vs %v", s1.State(), s2.State())
	}
}

func TestState_SaveRestore(t *testing.T) {
	s := NewSection(smoothing())
	s.ProcessSample(1)
	s.ProcessSample(-0.5)
	saved := s.State()

	a := s.ProcessSample(0.3)
	s.SetState(saved)
	b := s.ProcessSample(0.3)
	if a != b {
		t.Fatalf("restored state produced %v, want %v", b, a)
	}

	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("Reset left state %v", s.State())
	}
}

func TestSteadyStateMatchesLongRun(t *testing.T) {
	c := smoothing()
	s := NewSection(c)
	for i := 0; i < 1000; i++ {
		s.ProcessSample(0.7)
	}

	want := c.steadyState(0.7)
	got := s.State()
	if !almostEqual(got[0], want[0], 1e-12) || !almostEqual(got[1], want[1], 1e-12) {
		t.Fatalf("steady state = %v, want %v", got, want)
	}

	primed := NewSection(c)
	primed.SetState(want)
	if y := primed.ProcessSample(0.7); !almostEqual(y, c.DCGain()*0.7, 1e-12) {
		t.Fatalf("primed output = %v, want %v", y, c.DCGain()*0.7)
	}
}

func TestDCGain(t *testing.T) {
	if g := smoothing().DCGain(); !almostEqual(g, 1/0.84, 1e-12) {
		t.Fatalf("DCGain = %v, want %v", g, 1/0.84)
	}
	bp := Coefficients{B0: 1, B2: -1, A1: -0.3, A2: 0.9}
	if g := bp.DCGain(); g != 0 {
		t.Fatalf("band-pass DCGain = %v, want 0", g)
	}
}
