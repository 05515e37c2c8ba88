package synth

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/buffer"
	"github.com/cwbudde/algo-synth/dsp/cachekey"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/gain"
	"github.com/cwbudde/algo-synth/dsp/signal"
)

// Config describes one synthesis call.
type Config struct {
	// CyclesPerBuffer sets the pitch: SamplesPerBuffer/CyclesPerBuffer must
	// be a whole number of sample-frames.
	CyclesPerBuffer float64

	// Events holds either nothing (silence) or one key-down and one key-up.
	Events []envelope.Event

	// BufferCount is the number of output buffers to render.
	BufferCount int

	// Meta is attached to every buffer rendered by the call.
	Meta map[string]any
}

// Math is a voice that renders an oscillator through an ADSR envelope.
type Math struct {
	voice Voice
	shape signal.Shape
	keys  cachekey.Encoder
}

// New returns a Math voice on a fresh [Base].
func New(opts ...Option) (*Math, error) {
	base, err := NewBase(opts...)
	if err != nil {
		return nil, err
	}
	return NewMath(base, opts...), nil
}

// NewMath returns a Math voice rendering on v. Only the VoiceID and Shape
// options are read; constants and cache come from v.
func NewMath(v Voice, opts ...Option) *Math {
	s := ApplyOptions(opts...)
	k := v.Constants()
	return &Math{
		voice: v,
		shape: s.Shape,
		keys: cachekey.Encoder{
			VoiceID:          s.VoiceID,
			SampleRate:       k.SampleRate,
			ChannelCount:     k.ChannelCount,
			SamplesPerBuffer: k.SamplesPerBuffer,
		},
	}
}

// Voice returns the voice m renders on.
func (m *Math) Voice() Voice {
	return m.voice
}

// Envelope returns the absolute ADSR nodes for cfg.
func (m *Math) Envelope(cfg Config) ([]envelope.Node, error) {
	k := m.voice.Constants()
	timing := envelope.Timing{
		Attack:  k.AttackDuration,
		Decay:   k.DecayDuration,
		Release: k.ReleaseDuration,
	}
	return envelope.Build(cfg.Events, timing, cfg.BufferCount, k.SamplesPerBuffer)
}

// SingleWaveform returns the one-cycle buffer for cfg, from the cache or
// freshly rendered.
func (m *Math) SingleWaveform(cfg Config) (*buffer.Audio, error) {
	wl, err := signal.Wavelength(m.keys.SamplesPerBuffer, cfg.CyclesPerBuffer)
	if err != nil {
		return nil, err
	}
	return m.singleWaveform(wl, cfg.Meta)
}

// Oscillation returns the full-length oscillation buffer for cfg.
func (m *Math) Oscillation(cfg Config) (*buffer.Audio, error) {
	wl, err := signal.Wavelength(m.keys.SamplesPerBuffer, cfg.CyclesPerBuffer)
	if err != nil {
		return nil, err
	}
	sw, err := m.singleWaveform(wl, cfg.Meta)
	if err != nil {
		return nil, err
	}
	return m.oscillation(wl, sw, cfg.Meta)
}

// GainEnvelope returns the gain-shaped buffer for cfg and the reduced
// envelope rens. A silent envelope yields a new silent buffer that is not
// cached.
func (m *Math) GainEnvelope(cfg Config, rens []envelope.Node) (*buffer.Audio, error) {
	if gain.IsSilent(rens) {
		k := m.voice.Constants()
		out := buffer.New(k.ChannelCount, k.SamplesPerBuffer, k.SampleRate)
		out.Meta = cfg.Meta
		out.Envelope = append([]envelope.Node(nil), rens...)
		return out, nil
	}

	wl, err := signal.Wavelength(m.keys.SamplesPerBuffer, cfg.CyclesPerBuffer)
	if err != nil {
		return nil, err
	}
	osc, err := m.Oscillation(cfg)
	if err != nil {
		return nil, err
	}
	return m.gainEnvelope(wl, rens, osc, cfg.Meta)
}

func (m *Math) singleWaveform(wl int, meta map[string]any) (*buffer.Audio, error) {
	k := m.voice.Constants()
	return m.voice.SharedCache().Resolve(m.keys.SingleWaveform(wl), func() (*buffer.Audio, error) {
		sw, err := signal.SingleCycle(m.shape, k.ChannelCount, wl, k.SampleRate)
		if err != nil {
			return nil, err
		}
		sw.Meta = meta
		return sw, nil
	})
}

func (m *Math) oscillation(wl int, sw *buffer.Audio, meta map[string]any) (*buffer.Audio, error) {
	if sw.Len() != wl {
		return nil, fmt.Errorf("synth: single waveform has %d frames, want %d: %w", sw.Len(), wl, core.ErrInvariant)
	}
	return m.voice.SharedCache().Resolve(m.keys.Oscillation(wl), func() (*buffer.Audio, error) {
		osc, err := signal.Tile(sw, m.keys.SamplesPerBuffer)
		if err != nil {
			return nil, err
		}
		osc.Meta = meta
		return osc, nil
	})
}

func (m *Math) gainEnvelope(wl int, rens []envelope.Node, osc *buffer.Audio, meta map[string]any) (*buffer.Audio, error) {
	key, err := m.keys.Gain(wl, rens)
	if err != nil {
		return nil, err
	}
	return m.voice.SharedCache().Resolve(key, func() (*buffer.Audio, error) {
		ge, err := gain.Apply(osc, rens)
		if err != nil {
			return nil, err
		}
		ge.Meta = meta
		return ge, nil
	})
}
