package synth

import (
	"context"
	"fmt"
	"runtime"

	"github.com/cwbudde/algo-synth/dsp/buffer"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/gain"
	"github.com/cwbudde/algo-synth/dsp/signal"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of an asynchronous [Math.Perform] call.
type Result struct {
	Buffers []*buffer.Audio
	Err     error
}

// Perform runs Synthesize in the background. The channel delivers exactly
// one Result once every buffer is rendered or the call failed, then closes.
func (m *Math) Perform(ctx context.Context, cfg Config) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		bufs, err := m.Synthesize(ctx, cfg)
		ch <- Result{Buffers: bufs, Err: err}
	}()
	return ch
}

// Synthesize renders cfg.BufferCount output buffers.
//
// Each returned buffer owns its samples; ID names the cached gain buffer it
// was copied from (empty when silent) and Envelope holds its reduced nodes.
// With no events every buffer is silent and nothing is cached. On error no
// buffers are returned.
func (m *Math) Synthesize(ctx context.Context, cfg Config) ([]*buffer.Audio, error) {
	if cfg.BufferCount < 1 {
		return nil, fmt.Errorf("synth: buffer count must be > 0: %d: %w", cfg.BufferCount, core.ErrConfig)
	}

	nodes, err := m.Envelope(cfg)
	if err != nil {
		return nil, err
	}

	outputs := m.voice.AllocateOutputBuffers(cfg.BufferCount)
	if len(outputs) != cfg.BufferCount {
		return nil, fmt.Errorf("synth: voice allocated %d buffers, want %d: %w",
			len(outputs), cfg.BufferCount, core.ErrInvariant)
	}
	for _, out := range outputs {
		out.Meta = cfg.Meta
	}

	if len(nodes) == 0 {
		return outputs, nil
	}

	wl, err := signal.Wavelength(m.keys.SamplesPerBuffer, cfg.CyclesPerBuffer)
	if err != nil {
		return nil, err
	}
	sw, err := m.singleWaveform(wl, cfg.Meta)
	if err != nil {
		return nil, err
	}
	osc, err := m.oscillation(wl, sw, cfg.Meta)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, out := range outputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return m.fill(out, i, nodes, wl, osc, cfg.Meta)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// fill renders output buffer i. Every call writes only to out.
func (m *Math) fill(out *buffer.Audio, i int, nodes []envelope.Node, wl int, osc *buffer.Audio, meta map[string]any) error {
	rens, err := envelope.Reduce(nodes, i, m.keys.SamplesPerBuffer)
	if err != nil {
		return err
	}
	out.Envelope = rens

	if gain.IsSilent(rens) {
		return nil
	}

	ge, err := m.gainEnvelope(wl, rens, osc, meta)
	if err != nil {
		return err
	}
	if ge.Len() != out.Len() || ge.ChannelCount() != out.ChannelCount() {
		return fmt.Errorf("synth: gain buffer %q is %dx%d, output is %dx%d: %w",
			ge.ID, ge.ChannelCount(), ge.Len(), out.ChannelCount(), out.Len(), core.ErrInvariant)
	}

	core.CopyChannels(out.Channels, ge.Channels)
	out.ID = ge.ID
	return nil
}
