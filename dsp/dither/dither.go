// Package dither converts normalized float samples to signed integer PCM
// with optional dither noise.
package dither

import "fmt"

// Type selects the probability distribution of the dither noise.
type Type int

const (
	// None rounds without noise.
	None Type = iota
	// Rectangular adds uniform noise of one step peak to peak.
	Rectangular
	// Triangular adds the sum of two uniform draws (TPDF).
	Triangular

	typeCount
)

var typeNames = [typeCount]string{"none", "rectangular", "triangular"}

// String returns the lower-case name of t.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// ParseType returns the Type named s.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if s == name {
			return Type(t), nil
		}
	}
	return None, fmt.Errorf("dither: unknown type %q", s)
}
