package synth

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/cache"
	"github.com/cwbudde/algo-synth/dsp/core"
)

func TestApplyOptions(t *testing.T) {
	s := ApplyOptions(
		WithSampleRate(48000),
		WithChannelCount(1),
		WithSamplesPerBuffer(2048),
		WithAttackDuration(10),
		WithDecayDuration(20),
		WithReleaseDuration(30),
		WithVoiceID("sq"),
		nil,
	)

	want := Constants{
		SampleRate:       48000,
		ChannelCount:     1,
		SamplesPerBuffer: 2048,
		AttackDuration:   10,
		DecayDuration:    20,
		ReleaseDuration:  30,
	}
	if s.Constants != want {
		t.Fatalf("Constants = %+v, want %+v", s.Constants, want)
	}
	if s.VoiceID != "sq" {
		t.Fatalf("VoiceID = %q, want sq", s.VoiceID)
	}
}

func TestEmptyOptionsIgnored(t *testing.T) {
	s := ApplyOptions(WithVoiceID(""), WithShape(nil))
	if s.VoiceID != MathVoiceID {
		t.Fatalf("VoiceID = %q, want %q", s.VoiceID, MathVoiceID)
	}
	if s.Shape == nil {
		t.Fatal("Shape must keep its default")
	}
}

func TestNewBaseDefaults(t *testing.T) {
	b, err := NewBase()
	if err != nil {
		t.Fatalf("NewBase() error = %v", err)
	}
	if b.Constants() != DefaultConstants() {
		t.Fatalf("Constants() = %+v, want defaults", b.Constants())
	}
	if b.SharedCache() == nil {
		t.Fatal("SharedCache() = nil")
	}

	bufs := b.AllocateOutputBuffers(3)
	if len(bufs) != 3 {
		t.Fatalf("allocated %d buffers, want 3", len(bufs))
	}
	for i, buf := range bufs {
		if buf.ChannelCount() != 2 || buf.Len() != 4096 || buf.SampleRate != 44100 || !buf.IsSilent() {
			t.Fatalf("buffer %d = %dx%d @%d, want silent 2x4096 @44100", i, buf.ChannelCount(), buf.Len(), buf.SampleRate)
		}
	}
}

func TestNewBaseSharedCache(t *testing.T) {
	c := cache.New()
	a, err := NewBase(WithCache(c))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewBase(WithCache(c))
	if err != nil {
		t.Fatal(err)
	}
	if a.SharedCache() != c || b.SharedCache() != c {
		t.Fatal("voices must share the injected cache")
	}
}

func TestConstantsValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "zero sample rate", opt: WithSampleRate(0)},
		{name: "no channels", opt: WithChannelCount(0)},
		{name: "too many channels", opt: WithChannelCount(MaxChannelCount + 1)},
		{name: "empty buffers", opt: WithSamplesPerBuffer(0)},
		{name: "zero attack", opt: WithAttackDuration(0)},
		{name: "long attack", opt: WithAttackDuration(MaxAttackDuration + 1)},
		{name: "zero decay", opt: WithDecayDuration(0)},
		{name: "long decay", opt: WithDecayDuration(MaxDecayDuration + 1)},
		{name: "zero release", opt: WithReleaseDuration(0)},
		{name: "long release", opt: WithReleaseDuration(MaxReleaseDuration + 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBase(tt.opt)
			if !errors.Is(err, core.ErrConfig) {
				t.Fatalf("NewBase() error = %v, want ErrConfig", err)
			}
		})
	}

	if _, err := NewBase(WithAttackDuration(1), WithReleaseDuration(MaxReleaseDuration)); err != nil {
		t.Fatalf("boundary values rejected: %v", err)
	}
}
