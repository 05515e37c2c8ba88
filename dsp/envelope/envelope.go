package envelope

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// MaxLevel is the loudest envelope level.
const MaxLevel = 9

// Event is a key transition at a sample offset. Down is the key-down level
// (1..9) for a press and 0 for a release.
type Event struct {
	At   int
	Down int
}

// Node is one breakpoint of a piecewise-linear gain curve.
type Node struct {
	At    int
	Level int
}

// Timing holds the ADSR phase durations in sample-frames.
type Timing struct {
	Attack  int
	Decay   int
	Release int
}

// Validate checks that every duration is at least one sample-frame.
func (t Timing) Validate() error {
	if t.Attack < 1 || t.Decay < 1 || t.Release < 1 {
		return fmt.Errorf("envelope: durations must be >= 1 (attack %d, decay %d, release %d): %w",
			t.Attack, t.Decay, t.Release, core.ErrConfig)
	}
	return nil
}

// Build converts events into absolute ADSR breakpoints covering
// bufferCount buffers of samplesPerBuffer frames each.
//
// No events yields an empty list, meaning silence. Otherwise events must be
// one press followed by one release; they are sorted by At first, so the
// caller's order does not matter. The input slice is not modified.
func Build(events []Event, timing Timing, bufferCount, samplesPerBuffer int) ([]Node, error) {
	if len(events) == 0 {
		return nil, nil
	}
	if err := timing.Validate(); err != nil {
		return nil, err
	}
	if len(events) != 2 {
		return nil, fmt.Errorf("envelope: events must contain exactly 2 events, not %d: %w",
			len(events), core.ErrConfig)
	}

	evs := []Event{events[0], events[1]}
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].At < evs[j].At })

	down, up := evs[0], evs[1]
	if down.Down < 1 || down.Down > MaxLevel {
		return nil, fmt.Errorf("envelope: events[0].Down must be in 1..%d, not %d: %w",
			MaxLevel, down.Down, core.ErrConfig)
	}
	if up.Down != 0 {
		return nil, fmt.Errorf("envelope: events[1].Down must be 0, not %d: %w", up.Down, core.ErrConfig)
	}

	// releaseStart never precedes sustainStart.
	attackStart := down.At
	decayStart := attackStart + timing.Attack
	sustainStart := decayStart + timing.Decay
	releaseStart := max(up.At, sustainStart)
	releaseEnd := releaseStart + timing.Release

	attackLevel := down.Down
	sustainLevel := core.CeilHalf(attackLevel)

	adsr := [...]Node{
		{At: attackStart, Level: 0},
		{At: decayStart, Level: attackLevel},
		{At: sustainStart, Level: sustainLevel},
		{At: releaseStart, Level: sustainLevel},
		{At: releaseEnd, Level: 0},
	}

	nodes := make([]Node, 0, len(adsr)+2)

	// Silence from the first sample-frame until the key goes down.
	if attackStart > 0 {
		nodes = append(nodes, Node{At: 0, Level: 0})
	}

	for _, n := range adsr {
		if len(nodes) > 0 && nodes[len(nodes)-1] == n {
			continue
		}
		nodes = append(nodes, n)
	}

	// Silence after the release ends, up to the start of the next buffer.
	end := bufferCount * samplesPerBuffer
	if releaseEnd < end {
		nodes = append(nodes, Node{At: end, Level: 0})
	}

	return nodes, nil
}
