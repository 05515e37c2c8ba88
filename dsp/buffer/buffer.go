package buffer

import "github.com/cwbudde/algo-synth/dsp/envelope"

// Audio is a multichannel sample container. Every channel has the same length.
type Audio struct {
	// ID is the cache key the buffer was rendered under. Empty for
	// uncached buffers such as freshly allocated outputs.
	ID string

	SampleRate int

	// Channels holds one slice of samples in [-1, 1] per channel.
	Channels [][]float64

	// Meta is arbitrary caller metadata attached when the buffer was rendered.
	Meta map[string]any

	// Envelope holds the reduced envelope nodes a gain-shaped buffer was
	// rendered from. Nil for other kinds.
	Envelope []envelope.Node
}

// New returns a zero-filled buffer. Negative sizes are treated as zero.
func New(channelCount, length, sampleRate int) *Audio {
	if channelCount < 0 {
		channelCount = 0
	}
	if length < 0 {
		length = 0
	}

	backing := make([]float64, channelCount*length)
	channels := make([][]float64, channelCount)
	for ch := range channels {
		channels[ch] = backing[ch*length : (ch+1)*length : (ch+1)*length]
	}

	return &Audio{SampleRate: sampleRate, Channels: channels}
}

// Allocate returns count zero-filled buffers of identical shape.
func Allocate(count, length, channelCount, sampleRate int) []*Audio {
	if count < 0 {
		count = 0
	}
	out := make([]*Audio, count)
	for i := range out {
		out[i] = New(channelCount, length, sampleRate)
	}
	return out
}

// ChannelCount returns the number of channels.
func (a *Audio) ChannelCount() int {
	return len(a.Channels)
}

// Len returns the number of sample-frames per channel.
func (a *Audio) Len() int {
	if len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

// Channel returns the samples of channel ch.
func (a *Audio) Channel(ch int) []float64 {
	return a.Channels[ch]
}

// Zero sets every sample to 0.
func (a *Audio) Zero() {
	for _, samples := range a.Channels {
		for i := range samples {
			samples[i] = 0
		}
	}
}

// IsSilent reports whether every sample is exactly 0.
func (a *Audio) IsSilent() bool {
	for _, samples := range a.Channels {
		for _, v := range samples {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// Copy returns a deep copy of the buffer. Meta is shared, Envelope is copied.
func (a *Audio) Copy() *Audio {
	c := New(a.ChannelCount(), a.Len(), a.SampleRate)
	for ch, samples := range a.Channels {
		copy(c.Channels[ch], samples)
	}
	c.ID = a.ID
	c.Meta = a.Meta
	if a.Envelope != nil {
		c.Envelope = append([]envelope.Node(nil), a.Envelope...)
	}
	return c
}
