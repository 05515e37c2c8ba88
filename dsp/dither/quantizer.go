package dither

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	minBitDepth = 2
	maxBitDepth = 32
)

// Quantizer maps samples in [-1, +1] to integers of a fixed bit depth.
// It is not safe for concurrent use.
type Quantizer struct {
	bitDepth int
	typ      Type
	rng      *rand.Rand

	scale  float64
	lo, hi int
}

// Option configures a [Quantizer].
type Option func(*Quantizer) error

// WithType sets the dither noise distribution (default [None]).
func WithType(t Type) Option {
	return func(q *Quantizer) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid type %d: %w", t, core.ErrConfig)
		}
		q.typ = t
		return nil
	}
}

// WithSeed makes the dither noise reproducible.
func WithSeed(seed uint64) Option {
	return func(q *Quantizer) error {
		q.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		return nil
	}
}

// NewQuantizer returns a quantizer for bitDepth-bit signed PCM.
func NewQuantizer(bitDepth int, opts ...Option) (*Quantizer, error) {
	if bitDepth < minBitDepth || bitDepth > maxBitDepth {
		return nil, fmt.Errorf("dither: bit depth must be in [%d, %d]: %d: %w",
			minBitDepth, maxBitDepth, bitDepth, core.ErrConfig)
	}

	q := &Quantizer{bitDepth: bitDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(q); err != nil {
			return nil, err
		}
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	full := math.Exp2(float64(bitDepth - 1))
	q.scale = full - 1
	q.lo = -int(full)
	q.hi = int(full) - 1

	return q, nil
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// Type returns the dither noise distribution.
func (q *Quantizer) Type() Type { return q.typ }

// Quantize returns x scaled to the integer range, dithered and clamped.
func (q *Quantizer) Quantize(x float64) int {
	v := math.Round(q.scale*x + q.noise())
	return int(core.Clamp(v, float64(q.lo), float64(q.hi)))
}

// QuantizeBlock quantizes src into dst. Extra elements of either slice are
// left alone.
func (q *Quantizer) QuantizeBlock(dst []int, src []float64) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = q.Quantize(src[i])
	}
}

func (q *Quantizer) noise() float64 {
	switch q.typ {
	case Rectangular:
		return q.rng.Float64() - 0.5
	case Triangular:
		return q.rng.Float64() - q.rng.Float64()
	default:
		return 0
	}
}
