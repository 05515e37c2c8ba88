package testutil

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// PeakBin returns the index of the strongest non-negative frequency bin of
// x. For a tone that completes k whole cycles in len(x) samples the result
// is k. len(x) should be a power of two.
func PeakBin(x []float64) (int, error) {
	n := len(x)
	if n < 2 {
		return 0, fmt.Errorf("peak bin needs at least 2 samples, got %d", n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return 0, fmt.Errorf("peak bin: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("peak bin: forward FFT failed: %w", err)
	}

	half := n/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)
	for k := 0; k < half; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)

	peak := 0
	for k, m := range mag {
		if m > mag[peak] {
			peak = k
		}
	}
	return peak, nil
}
