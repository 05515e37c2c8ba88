// Package synth renders fixed-length multichannel buffers of a single tone
// shaped by an ADSR gain envelope.
//
// A [Voice] supplies the validated per-voice constants, a shared cache and
// an allocator for silent output buffers; [Base] is the stock
// implementation. [Math] builds on any Voice and turns a [Config] (cycles
// per buffer, a key-down/key-up event pair and a buffer count) into rendered
// buffers:
//
//	v, err := synth.New(synth.WithSampleRate(48000), synth.WithAttackDuration(480))
//	bufs, err := v.Synthesize(ctx, synth.Config{
//		CyclesPerBuffer: 64,
//		Events:          []envelope.Event{{At: 0, Down: 9}, {At: 20000, Down: 0}},
//		BufferCount:     8,
//	})
//
// Rendering runs in three cached tiers. The single-cycle waveform and its
// tiled oscillation are resolved once per call; each output buffer then
// reduces the envelope to its own nodes and resolves a gain-shaped buffer,
// in parallel with the other outputs. Buffers whose envelope stays at level
// 0 are left silent and never cached.
//
// Errors wrap [core.ErrConfig] for malformed requests and
// [core.ErrInvariant] for internal contract breaches. A failed call returns
// no buffers.
package synth
