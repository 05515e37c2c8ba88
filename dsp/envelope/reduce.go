package envelope

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Reduce returns the nodes that shape buffer index, with At values relative
// to that buffer's first sample-frame.
//
// The result holds the last node at or before the buffer start, every node
// inside the buffer and the first node past its last sample-frame, so it
// always has at least two nodes, the first at or before 0 and the last at or
// after samplesPerBuffer. A node sitting exactly on the last sample-frame
// counts as inside. Level runs that stay flat across an edge are trimmed to
// that edge.
func Reduce(nodes []Node, index, samplesPerBuffer int) ([]Node, error) {
	if index < 0 || samplesPerBuffer < 1 {
		return nil, fmt.Errorf("envelope: cannot reduce buffer %d of %d frames: %w",
			index, samplesPerBuffer, core.ErrInvariant)
	}

	first := samplesPerBuffer * index
	last := first + samplesPerBuffer - 1

	var (
		before, after       Node
		hasBefore, hasAfter bool
		inner               []Node
	)

scan:
	for _, n := range nodes {
		switch {
		case n.At <= first:
			before, hasBefore = n, true
		case n.At <= last:
			inner = append(inner, n)
		default:
			after, hasAfter = n, true
			break scan
		}
	}

	if !hasBefore {
		return nil, fmt.Errorf("envelope: no node at or before frame %d of buffer %d: %w",
			first, index, core.ErrInvariant)
	}
	if !hasAfter {
		return nil, fmt.Errorf("envelope: no node after frame %d of buffer %d: %w",
			last, index, core.ErrInvariant)
	}

	rightOfBefore, leftOfAfter := after, before
	if len(inner) > 0 {
		rightOfBefore = inner[0]
		leftOfAfter = inner[len(inner)-1]
	}

	// A level entering the buffer horizontally starts at the buffer edge.
	if before.Level == rightOfBefore.Level {
		before.At = first
	}

	// A level leaving the buffer horizontally ends at the next buffer's edge.
	if after.Level == leftOfAfter.Level {
		after.At = last + 1
	}

	out := make([]Node, 0, len(inner)+2)
	out = append(out, Node{At: before.At - first, Level: before.Level})
	for _, n := range inner {
		out = append(out, Node{At: n.At - first, Level: n.Level})
	}
	out = append(out, Node{At: after.At - first, Level: after.Level})

	return out, nil
}
