// Package signal renders the periodic source material of a tone: one cycle
// of a waveform ([SingleCycle]) and its periodic extension to a full buffer
// ([Tile]).
//
// The waveform is pluggable through [Shape]; [Sine] is the default.
// Rendering is a pure function of its arguments, so equal inputs always
// produce bit-identical buffers.
package signal
