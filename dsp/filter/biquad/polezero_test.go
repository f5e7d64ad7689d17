package biquad

import (
	"math/cmplx"
	"testing"
)

func TestPoles_SecondOrder(t *testing.T) {
	// (1 - (0.7+0.2i)z^-1)(1 - (0.7-0.2i)z^-1) = 1 - 1.4z^-1 + 0.53z^-2
	c := Coefficients{B0: 1, A1: -1.4, A2: 0.53}
	p := c.Poles()

	want := []complex128{complex(0.7, 0.2), complex(0.7, -0.2)}
	ok := (cmplx.Abs(p[0]-want[0]) < 1e-12 && cmplx.Abs(p[1]-want[1]) < 1e-12) ||
		(cmplx.Abs(p[0]-want[1]) < 1e-12 && cmplx.Abs(p[1]-want[0]) < 1e-12)
	if !ok {
		t.Fatalf("Poles() = %v, want %v", p, want)
	}
}

func TestChainStability(t *testing.T) {
	stable := NewChain([]Coefficients{{B0: 1, A1: -1.4, A2: 0.53}, {B0: 1, A1: -0.8}})
	if !stable.Stable() {
		t.Fatalf("expected stable chain, max radius %v", stable.MaxPoleRadius())
	}

	unstable := NewChain([]Coefficients{{B0: 1, A1: -2.1, A2: 1.1}})
	if unstable.Stable() {
		t.Fatalf("expected unstable chain, max radius %v", unstable.MaxPoleRadius())
	}
}
