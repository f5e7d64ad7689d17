package window

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-doa/dsp/core"
)

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: window size must be > 0: %d", core.ErrInvalidParameter, size)
	}
	return nil
}
