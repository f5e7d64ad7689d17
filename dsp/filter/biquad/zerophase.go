package biquad

// padLength returns the number of samples reflected at each end of the
// record before forward-backward filtering: three times the number of
// filter taps, capped so that the reflection stays inside the record.
func (c *Chain) padLength(n int) int {
	pad := 3 * (2*len(c.sections) + 1)
	if pad > n-1 {
		pad = n - 1
	}
	if pad < 0 {
		pad = 0
	}
	return pad
}

// ProcessZeroPhase filters x forward and then backward through the cascade
// and returns a new slice of the same length. The effective response is
// |H(f)|^2 with zero phase, so both sensors of an array keep their relative
// timing exactly.
//
// Each end of the record is extended by an odd reflection about its end
// sample, and both passes start from the steady state for a constant input
// equal to the first sample of the pass. This suppresses most of the start-up
// transient. The chain state is saved and restored, so the call does not
// disturb streaming use of the same Chain.
func (c *Chain) ProcessZeroPhase(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}

	saved := c.State()
	defer c.SetState(saved)

	pad := c.padLength(n)
	ext := make([]float64, n+2*pad)
	for i := 0; i < pad; i++ {
		ext[i] = 2*x[0] - x[pad-i]
		ext[n+pad+i] = 2*x[n-1] - x[n-2-i]
	}
	copy(ext[pad:], x)

	c.primeSteadyState(ext[0])
	c.ProcessBlock(ext)

	reverse(ext)
	c.primeSteadyState(ext[0])
	c.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[pad:pad+n])
	return out
}

// primeSteadyState loads every section with the state it would reach after
// a constant input x.
func (c *Chain) primeSteadyState(x float64) {
	x *= c.gain
	for i := range c.sections {
		s := &c.sections[i]
		s.SetState(s.steadyState(x))
		x *= s.DCGain()
	}
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
