package biquad

import "math/cmplx"

// Poles returns the z-plane poles of the section denominator:
//
//	1 + A1*z^-1 + A2*z^-2 = 0
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// MaxPoleRadius returns the largest pole magnitude across all sections.
// A cascade is stable when the result is below 1.
func (c *Chain) MaxPoleRadius() float64 {
	r := 0.0
	for i := range c.sections {
		for _, p := range c.sections[i].Poles() {
			if m := cmplx.Abs(p); m > r {
				r = m
			}
		}
	}
	return r
}

// Stable reports whether every pole lies strictly inside the unit circle.
func (c *Chain) Stable() bool {
	return c.MaxPoleRadius() < 1
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	sqrtDiscriminant := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
