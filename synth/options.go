package synth

import (
	"github.com/cwbudde/algo-synth/dsp/cache"
	"github.com/cwbudde/algo-synth/dsp/signal"
)

// Constants are the validated per-voice numbers every call renders with.
// Durations are in sample-frames.
type Constants struct {
	SampleRate       int
	ChannelCount     int
	SamplesPerBuffer int
	AttackDuration   int
	DecayDuration    int
	ReleaseDuration  int
}

// DefaultConstants returns the stock voice settings.
func DefaultConstants() Constants {
	return Constants{
		SampleRate:       44100,
		ChannelCount:     2,
		SamplesPerBuffer: 4096,
		AttackDuration:   300,
		DecayDuration:    900,
		ReleaseDuration:  1000,
	}
}

// MathVoiceID prefixes every cache key rendered by a sine [Math] voice.
const MathVoiceID = "ma"

// Settings collects everything the options can change.
type Settings struct {
	Constants Constants

	// Cache is shared by every call on the voice. Nil means a fresh cache.
	Cache *cache.Cache

	// VoiceID prefixes cache keys. Voices with different shapes that share
	// a cache must use different IDs.
	VoiceID string

	// Shape is the oscillator waveform. Nil means signal.Sine.
	Shape signal.Shape
}

// Option mutates Settings.
type Option func(*Settings)

// DefaultSettings returns the settings used when no options are given.
func DefaultSettings() Settings {
	return Settings{
		Constants: DefaultConstants(),
		VoiceID:   MathVoiceID,
		Shape:     signal.Sine,
	}
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate int) Option {
	return func(s *Settings) {
		s.Constants.SampleRate = sampleRate
	}
}

// WithChannelCount sets the number of output channels.
func WithChannelCount(channelCount int) Option {
	return func(s *Settings) {
		s.Constants.ChannelCount = channelCount
	}
}

// WithSamplesPerBuffer sets the length of every output buffer.
func WithSamplesPerBuffer(samplesPerBuffer int) Option {
	return func(s *Settings) {
		s.Constants.SamplesPerBuffer = samplesPerBuffer
	}
}

// WithAttackDuration sets the frames between key-down and the envelope peak.
func WithAttackDuration(frames int) Option {
	return func(s *Settings) {
		s.Constants.AttackDuration = frames
	}
}

// WithDecayDuration sets the frames between the peak and the sustain level.
func WithDecayDuration(frames int) Option {
	return func(s *Settings) {
		s.Constants.DecayDuration = frames
	}
}

// WithReleaseDuration sets the frames between release and silence.
func WithReleaseDuration(frames int) Option {
	return func(s *Settings) {
		s.Constants.ReleaseDuration = frames
	}
}

// WithCache shares c between voices.
func WithCache(c *cache.Cache) Option {
	return func(s *Settings) {
		s.Cache = c
	}
}

// WithVoiceID sets the cache key prefix.
func WithVoiceID(id string) Option {
	return func(s *Settings) {
		if id != "" {
			s.VoiceID = id
		}
	}
}

// WithShape replaces the sine oscillator. Pair it with WithVoiceID when the
// voice shares a cache with other shapes.
func WithShape(shape signal.Shape) Option {
	return func(s *Settings) {
		if shape != nil {
			s.Shape = shape
		}
	}
}

// ApplyOptions applies zero or more options to the default settings.
func ApplyOptions(opts ...Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
