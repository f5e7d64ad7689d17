package doa

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-doa/internal/testutil"
)

func BenchmarkEstimate(b *testing.B) {
	const sr = 100000.0
	for _, size := range []int{4096, 20000} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			x1 := testutil.DeterministicSine(30000, sr, 1, size)
			x2 := testutil.DeterministicSine(30000, sr, 1, size)
			e, err := NewPhaseEstimator(sr, 30000)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(2 * size * 8))
			b.ResetTimer()
			for range b.N {
				if _, err := e.Estimate(x1, x2); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
