package synth

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/buffer"
	"github.com/cwbudde/algo-synth/dsp/cache"
	"github.com/cwbudde/algo-synth/dsp/core"
)

// Voice is what a renderer needs from the voice it belongs to.
type Voice interface {
	// Constants returns the validated per-voice settings.
	Constants() Constants

	// SharedCache returns the cache owned by the voice.
	SharedCache() *cache.Cache

	// AllocateOutputBuffers returns bufferCount zero-filled buffers sized
	// for this voice.
	AllocateOutputBuffers(bufferCount int) []*buffer.Audio
}

// Limits for constructor values.
const (
	MaxChannelCount     = 32
	MaxAttackDuration   = 96000
	MaxDecayDuration    = 96000
	MaxReleaseDuration  = 960000
	minDurationInFrames = 1
)

// Base is the stock Voice: validated constants plus an owned cache.
type Base struct {
	constants Constants
	cache     *cache.Cache
}

// NewBase validates the options and returns a voice.
func NewBase(opts ...Option) (*Base, error) {
	s := ApplyOptions(opts...)
	if err := s.Constants.Validate(); err != nil {
		return nil, err
	}

	c := s.Cache
	if c == nil {
		c = cache.New()
	}

	return &Base{constants: s.Constants, cache: c}, nil
}

// Constants implements Voice.
func (b *Base) Constants() Constants {
	return b.constants
}

// SharedCache implements Voice.
func (b *Base) SharedCache() *cache.Cache {
	return b.cache
}

// AllocateOutputBuffers implements Voice.
func (b *Base) AllocateOutputBuffers(bufferCount int) []*buffer.Audio {
	k := b.constants
	return buffer.Allocate(bufferCount, k.SamplesPerBuffer, k.ChannelCount, k.SampleRate)
}

// Validate checks every constant against its allowed range.
func (k Constants) Validate() error {
	checks := []struct {
		name     string
		value    int
		min, max int
	}{
		{"sample rate", k.SampleRate, 1, 0},
		{"channel count", k.ChannelCount, 1, MaxChannelCount},
		{"samples per buffer", k.SamplesPerBuffer, 1, 0},
		{"attack duration", k.AttackDuration, minDurationInFrames, MaxAttackDuration},
		{"decay duration", k.DecayDuration, minDurationInFrames, MaxDecayDuration},
		{"release duration", k.ReleaseDuration, minDurationInFrames, MaxReleaseDuration},
	}

	for _, c := range checks {
		if c.value < c.min {
			return fmt.Errorf("synth: %s must be >= %d: %d: %w", c.name, c.min, c.value, core.ErrConfig)
		}
		if c.max > 0 && c.value > c.max {
			return fmt.Errorf("synth: %s must be <= %d: %d: %w", c.name, c.max, c.value, core.ErrConfig)
		}
	}
	return nil
}
