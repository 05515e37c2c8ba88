package gain

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/buffer"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/interp"
	"github.com/cwbudde/algo-vecmath"
)

var curvePool = buffer.NewPool()

// IsSilent reports whether rens describes a buffer that stays at level 0.
func IsSilent(rens []envelope.Node) bool {
	return len(rens) == 2 && rens[0].Level == 0 && rens[1].Level == 0
}

// InitialLevel returns the envelope level at frame 0. A first node before
// frame 0 is projected along the line towards the second node.
func InitialLevel(rens []envelope.Node) float64 {
	if len(rens) == 0 {
		return 0
	}
	n0 := rens[0]
	if n0.At == 0 || len(rens) == 1 {
		return float64(n0.Level)
	}
	n1 := rens[1]
	ratio := float64(n1.At) / float64(n1.At-n0.At)
	return ratio*float64(n0.Level-n1.Level) + float64(n1.Level)
}

// Curve writes the gain of every frame in [0, len(dst)) into dst.
func Curve(dst []float64, rens []envelope.Node) error {
	if err := validate(rens, len(dst)); err != nil {
		return err
	}

	const scale = 1.0 / envelope.MaxLevel

	x0, y0 := 0.0, InitialLevel(rens)*scale
	lo := 0
	for _, n := range rens[1:] {
		x1, y1 := float64(n.At), float64(n.Level)*scale
		hi := min(n.At, len(dst))
		if hi > lo {
			interp.Ramp(dst[lo:hi], x0, y0, x1, y1, lo)
			lo = hi
		}
		x0, y0 = x1, y1
	}

	return nil
}

// Apply returns a new buffer holding osc multiplied by the gain curve of
// rens. The result carries a copy of rens in its Envelope field.
func Apply(osc *buffer.Audio, rens []envelope.Node) (*buffer.Audio, error) {
	if osc == nil {
		return nil, fmt.Errorf("gain: nil oscillation buffer: %w", core.ErrInvariant)
	}

	n := osc.Len()
	curve := curvePool.Get(n)
	defer curvePool.Put(curve)

	if err := Curve(curve, rens); err != nil {
		return nil, err
	}

	out := buffer.New(osc.ChannelCount(), n, osc.SampleRate)
	for ch := range osc.Channels {
		vecmath.MulBlock(out.Channel(ch), osc.Channel(ch), curve)
	}
	out.Envelope = append([]envelope.Node(nil), rens...)

	return out, nil
}

func validate(rens []envelope.Node, length int) error {
	if len(rens) < 2 {
		return fmt.Errorf("gain: need at least 2 envelope nodes, got %d: %w", len(rens), core.ErrInvariant)
	}
	if rens[0].At > 0 {
		return fmt.Errorf("gain: first node at %d is after the buffer start: %w", rens[0].At, core.ErrInvariant)
	}
	if rens[1].At <= 0 {
		return fmt.Errorf("gain: second node at %d is not inside the buffer: %w", rens[1].At, core.ErrInvariant)
	}
	if last := rens[len(rens)-1]; last.At < length {
		return fmt.Errorf("gain: last node at %d is before the buffer end %d: %w", last.At, length, core.ErrInvariant)
	}
	for i, n := range rens {
		if n.Level < 0 || n.Level > envelope.MaxLevel {
			return fmt.Errorf("gain: node %d level %d out of range: %w", i, n.Level, core.ErrInvariant)
		}
		if i > 0 && n.At <= rens[i-1].At {
			return fmt.Errorf("gain: node %d at %d does not follow %d: %w", i, n.At, rens[i-1].At, core.ErrInvariant)
		}
	}
	return nil
}
