package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Scaled returns x[i]*gain[i] for every i. The slices must have equal length.
func Scaled(x, gain []float64) []float64 {
	out := make([]float64, len(x))
	for i := range out {
		out[i] = x[i] * gain[i]
	}
	return out
}
