package cachekey

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
)

// Buffer kind tags.
const (
	TagSingleWaveform = "SW"
	TagOscillation    = "OS"
	TagGainEnvelope   = "GE"
)

// Encoder builds keys for one voice. VoiceID separates voices that share a
// cache but render different material from the same numbers.
type Encoder struct {
	VoiceID          string
	SampleRate       int
	ChannelCount     int
	SamplesPerBuffer int
}

func (e Encoder) base(tag string, wavelength int) string {
	return e.VoiceID +
		"_" + tag +
		"_r" + strconv.Itoa(e.SampleRate) +
		"_c" + strconv.Itoa(e.ChannelCount) +
		"_w" + strconv.Itoa(wavelength)
}

// SingleWaveform returns the key of a one-cycle waveform buffer.
func (e Encoder) SingleWaveform(wavelength int) string {
	return e.base(TagSingleWaveform, wavelength)
}

// Oscillation returns the key of a full-length oscillation buffer.
func (e Encoder) Oscillation(wavelength int) string {
	return e.base(TagOscillation, wavelength) + "_" + strconv.Itoa(e.SamplesPerBuffer)
}

// Gain returns the key of a gain-shaped buffer rendered from the
// oscillation of wavelength and the reduced envelope nodes rens.
func (e Encoder) Gain(wavelength int, rens []envelope.Node) (string, error) {
	shape, err := e.Shape(rens)
	if err != nil {
		return "", err
	}
	return e.base(TagGainEnvelope, wavelength) + "_" + strconv.Itoa(e.SamplesPerBuffer) + "_" + shape, nil
}

// Shape encodes rens on its own.
//
// A flat level encodes as "g5". A single ramp from the buffer start to the
// next buffer's start encodes as "g4L0". Everything else is written on a
// grid: "{grid}g" (grid omitted when 1), then the first node as an
// unsigned offset (omitted when 0) followed by its level, then "L{at}{level}"
// for each further node with positions in grid units. The last node's
// position is omitted when it sits exactly on the next buffer's start.
// Levels are single digits, so each group ends with exactly one level digit.
func (e Encoder) Shape(rens []envelope.Node) (string, error) {
	if len(rens) < 2 {
		return "", fmt.Errorf("cachekey: need at least 2 envelope nodes, got %d: %w", len(rens), core.ErrInvariant)
	}

	first, last := rens[0], rens[len(rens)-1]
	if first.At > 0 {
		return "", fmt.Errorf("cachekey: first node cannot be at %d: %w", first.At, core.ErrInvariant)
	}
	if last.At < e.SamplesPerBuffer {
		return "", fmt.Errorf("cachekey: last node cannot be at %d: %w", last.At, core.ErrInvariant)
	}
	for i, n := range rens {
		if n.Level < 0 || n.Level > envelope.MaxLevel {
			return "", fmt.Errorf("cachekey: node %d level %d out of range: %w", i, n.Level, core.ErrInvariant)
		}
	}

	var sb strings.Builder

	if len(rens) == 2 && first.Level == last.Level {
		sb.WriteByte('g')
		sb.WriteString(strconv.Itoa(first.Level))
		return sb.String(), nil
	}

	if len(rens) == 2 && first.At == 0 && last.At == e.SamplesPerBuffer {
		sb.WriteByte('g')
		sb.WriteString(strconv.Itoa(first.Level))
		sb.WriteByte('L')
		sb.WriteString(strconv.Itoa(last.Level))
		return sb.String(), nil
	}

	ats := make([]int, len(rens))
	for i, n := range rens {
		ats[i] = n.At
	}
	grid := core.GCDAll(ats...)

	if grid != 1 {
		sb.WriteString(strconv.Itoa(grid))
	}
	sb.WriteByte('g')

	if first.At < 0 {
		sb.WriteString(strconv.Itoa(first.At / -grid))
	}
	sb.WriteString(strconv.Itoa(first.Level))

	for _, n := range rens[1 : len(rens)-1] {
		sb.WriteByte('L')
		sb.WriteString(strconv.Itoa(n.At / grid))
		sb.WriteString(strconv.Itoa(n.Level))
	}

	sb.WriteByte('L')
	if last.At != e.SamplesPerBuffer {
		sb.WriteString(strconv.Itoa(last.At / grid))
	}
	sb.WriteString(strconv.Itoa(last.Level))

	return sb.String(), nil
}
