// Package buffer provides the multichannel audio buffer shared by every
// rendering stage, plus a scratch pool for per-buffer work slices.
//
// An [Audio] holds one []float64 per channel. Three kinds flow through the
// synthesis pipeline: single-waveform buffers (one cycle), oscillation
// buffers (one full buffer length, tiled) and gain-shaped buffers (the final
// output). Buffers stored in a cache are shared and must be treated as
// read-only by every caller.
package buffer
