package bandpass_test

import (
	"fmt"

	"github.com/cwbudde/algo-doa/dsp/filter/bandpass"
)

func ExampleNew() {
	f, err := bandpass.New(100000, 30000,
		bandpass.WithBandwidth(2000),
		bandpass.WithOrder(4),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	low, high := f.Corners()
	fmt.Printf("corners %.0f-%.0f Hz, %d sections\n", low, high, len(f.Sections()))
	fmt.Printf("36 kHz below -20 dB: %v\n", f.MagnitudeDB(36000) < -20)
	// Output:
	// corners 29000-31000 Hz, 4 sections
	// 36 kHz below -20 dB: true
}
