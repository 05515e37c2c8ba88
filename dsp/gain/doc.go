// Package gain shapes an oscillation buffer with a piecewise-linear gain
// envelope described by reduced envelope nodes.
//
// Node levels 0..9 map linearly to gains 0..1. When the first node lies
// before the buffer start, the gain at frame 0 is found by extending the
// first segment ([InitialLevel]); from there the curve ramps linearly
// through every following node.
package gain
