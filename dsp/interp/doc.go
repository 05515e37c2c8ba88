// Package interp provides the linear interpolation primitives behind
// piecewise-linear gain curves.
//
//   - [LinearAt]: value of the line through two points at any x
//   - [Ramp]: fill a slice with consecutive samples of such a line
package interp
