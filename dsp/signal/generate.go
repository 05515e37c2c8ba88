package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/buffer"
	"github.com/cwbudde/algo-synth/dsp/core"
)

// Shape maps a phase in [0, 2π) to a sample value in [-1, 1].
type Shape func(phase float64) float64

// Sine is the default oscillator shape.
func Sine(phase float64) float64 {
	return math.Sin(phase)
}

// Wavelength returns samplesPerBuffer / cyclesPerBuffer, which must be a
// whole number of at least one sample-frame.
func Wavelength(samplesPerBuffer int, cyclesPerBuffer float64) (int, error) {
	if cyclesPerBuffer <= 0 || math.IsNaN(cyclesPerBuffer) || math.IsInf(cyclesPerBuffer, 0) {
		return 0, fmt.Errorf("signal: cycles per buffer must be > 0: %v: %w", cyclesPerBuffer, core.ErrConfig)
	}

	wl := float64(samplesPerBuffer) / cyclesPerBuffer
	if !core.IsWhole(wl) || wl < 1 {
		return 0, fmt.Errorf("signal: wavelength %d/%v = %v is not a whole number of samples: %w",
			samplesPerBuffer, cyclesPerBuffer, wl, core.ErrConfig)
	}

	return int(wl), nil
}

// SingleCycle renders one cycle of shape, wavelength samples long, into
// every channel of a new buffer.
func SingleCycle(shape Shape, channelCount, wavelength, sampleRate int) (*buffer.Audio, error) {
	if shape == nil {
		shape = Sine
	}
	if wavelength < 1 {
		return nil, fmt.Errorf("signal: wavelength must be > 0: %d: %w", wavelength, core.ErrConfig)
	}
	if channelCount < 1 {
		return nil, fmt.Errorf("signal: channel count must be > 0: %d: %w", channelCount, core.ErrConfig)
	}

	out := buffer.New(channelCount, wavelength, sampleRate)
	first := out.Channel(0)
	step := 2 * math.Pi / float64(wavelength)
	for i := range first {
		first[i] = shape(step * float64(i))
	}
	for ch := 1; ch < channelCount; ch++ {
		copy(out.Channel(ch), first)
	}

	return out, nil
}

// Tile returns a buffer of length sample-frames holding the periodic
// extension of waveform: out[i] = waveform[i mod waveform.Len()] per channel.
func Tile(waveform *buffer.Audio, length int) (*buffer.Audio, error) {
	if waveform == nil || waveform.Len() == 0 {
		return nil, fmt.Errorf("signal: cannot tile an empty waveform: %w", core.ErrInvariant)
	}
	if length < 0 {
		length = 0
	}

	out := buffer.New(waveform.ChannelCount(), length, waveform.SampleRate)
	for ch, src := range waveform.Channels {
		dst := out.Channel(ch)
		for off := 0; off < length; {
			off += copy(dst[off:], src)
		}
	}

	return out, nil
}
