// Package envelope turns a key-down/key-up event pair into ADSR breakpoints
// and slices those breakpoints into per-buffer segments.
//
// [Build] produces the absolute breakpoint list once per synthesis call.
// [Reduce] then extracts, for one output buffer, the nodes that shape it:
// the last node at or before the buffer start, every node inside the buffer,
// and the first node after it. Horizontal runs crossing a buffer edge are
// trimmed flush to that edge so equal shapes reduce to equal node lists.
//
// Levels are integers 0..9 where 0 is silence and 9 is full gain.
package envelope
