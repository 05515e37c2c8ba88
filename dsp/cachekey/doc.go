// Package cachekey builds the canonical strings that identify rendered
// buffers in a cache.
//
// A key encodes every parameter that determines a buffer's samples and
// nothing else, so equal keys mean equal audio and distinct audio never
// shares a key. Keys are built from underscore-separated fields:
//
//	ma_SW_r44100_c2_w64            single waveform
//	ma_OS_r44100_c2_w64_4096       oscillation
//	ma_GE_r44100_c2_w64_4096_g5    gain-shaped, flat level 5
//
// Gain shapes are quantized on the greatest common divisor of all node
// positions, which keeps keys short when events fall on round offsets.
package cachekey
