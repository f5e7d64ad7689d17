package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-doa/dsp/core"
	"gonum.org/v1/gonum/dsp/fourier"
)

// DFT computes unnormalized forward transforms of real records of one fixed
// length. Any length is supported. A DFT is not safe for concurrent use.
type DFT struct {
	fft *fourier.CmplxFFT
	seq []complex128
}

// NewDFT prepares a transform of length n.
func NewDFT(n int) (*DFT, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: transform length must be > 0: %d", core.ErrNumericEdgeCase, n)
	}
	return &DFT{
		fft: fourier.NewCmplxFFT(n),
		seq: make([]complex128, n),
	}, nil
}

// Len returns the transform length.
func (d *DFT) Len() int { return len(d.seq) }

// Forward transforms x into dst and returns dst. If dst is nil a new slice is
// allocated. X[k] = sum_n x[n] exp(-2πi kn/N).
func (d *DFT) Forward(dst []complex128, x []float64) ([]complex128, error) {
	if len(x) != len(d.seq) {
		return nil, fmt.Errorf("%w: input length %d != transform length %d",
			core.ErrNumericEdgeCase, len(x), len(d.seq))
	}
	if dst != nil && len(dst) != len(x) {
		return nil, fmt.Errorf("%w: output length %d != transform length %d",
			core.ErrNumericEdgeCase, len(dst), len(d.seq))
	}

	for i, v := range x {
		d.seq[i] = complex(v, 0)
	}
	return d.fft.Coefficients(dst, d.seq), nil
}

// Transform returns the full N-point transform of x.
func Transform(x []float64) ([]complex128, error) {
	d, err := NewDFT(len(x))
	if err != nil {
		return nil, err
	}
	return d.Forward(nil, x)
}
