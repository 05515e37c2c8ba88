package envelope

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/core"
)

var defaultTiming = Timing{Attack: 300, Decay: 900, Release: 1000}

func TestBuildNoEvents(t *testing.T) {
	nodes, err := Build(nil, defaultTiming, 4, 4096)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("Build() = %v, want empty", nodes)
	}
}

func TestBuildMergesSustainIntoRelease(t *testing.T) {
	events := []Event{{At: 0, Down: 9}, {At: 0, Down: 0}}

	nodes, err := Build(events, defaultTiming, 1, 4096)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []Node{{0, 0}, {300, 9}, {1200, 5}, {2200, 0}, {4096, 0}}
	if !reflect.DeepEqual(nodes, want) {
		t.Fatalf("Build() = %v, want %v", nodes, want)
	}
}

func TestBuildLeadingSilence(t *testing.T) {
	events := []Event{{At: 100, Down: 5}, {At: 50000, Down: 0}}

	nodes, err := Build(events, defaultTiming, 13, 4096)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []Node{{0, 0}, {100, 0}, {400, 5}, {1300, 3}, {50000, 3}, {51000, 0}, {53248, 0}}
	if !reflect.DeepEqual(nodes, want) {
		t.Fatalf("Build() = %v, want %v", nodes, want)
	}
}

func TestBuildSortsEventsWithoutMutatingInput(t *testing.T) {
	events := []Event{{At: 3000, Down: 0}, {At: 100, Down: 7}}

	nodes, err := Build(events, defaultTiming, 2, 4096)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if nodes[1] != (Node{At: 100, Level: 0}) || nodes[2] != (Node{At: 400, Level: 7}) {
		t.Fatalf("Build() = %v, want attack starting at 100 with level 7", nodes)
	}
	if events[0].At != 3000 {
		t.Fatal("Build() reordered the caller's events")
	}
}

func TestBuildReleaseWaitsForSustain(t *testing.T) {
	events := []Event{{At: 0, Down: 4}, {At: 500, Down: 0}}

	nodes, err := Build(events, defaultTiming, 1, 4096)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []Node{{0, 0}, {300, 4}, {1200, 2}, {2200, 0}, {4096, 0}}
	if !reflect.DeepEqual(nodes, want) {
		t.Fatalf("Build() = %v, want %v", nodes, want)
	}
}

func TestBuildReleaseBeyondLastBuffer(t *testing.T) {
	events := []Event{{At: 0, Down: 9}, {At: 4000, Down: 0}}

	nodes, err := Build(events, defaultTiming, 1, 4096)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	last := nodes[len(nodes)-1]
	if last != (Node{At: 5000, Level: 0}) {
		t.Fatalf("last node = %v, want release end at 5000 with no trailing node", last)
	}
}

func TestBuildNegativeAttackStart(t *testing.T) {
	events := []Event{{At: -100, Down: 9}, {At: 2000, Down: 0}}

	nodes, err := Build(events, defaultTiming, 1, 4096)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if nodes[0] != (Node{At: -100, Level: 0}) {
		t.Fatalf("first node = %v, want {-100 0}", nodes[0])
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		timing Timing
	}{
		{name: "one event", events: []Event{{At: 0, Down: 9}}, timing: defaultTiming},
		{name: "three events", events: []Event{{0, 9}, {10, 0}, {20, 0}}, timing: defaultTiming},
		{name: "missing down", events: []Event{{0, 0}, {10, 0}}, timing: defaultTiming},
		{name: "down too loud", events: []Event{{0, 10}, {10, 0}}, timing: defaultTiming},
		{name: "negative down", events: []Event{{0, -1}, {10, 0}}, timing: defaultTiming},
		{name: "second is down", events: []Event{{0, 9}, {10, 3}}, timing: defaultTiming},
		{name: "zero attack", events: []Event{{0, 9}, {10, 0}}, timing: Timing{Attack: 0, Decay: 1, Release: 1}},
		{name: "zero release", events: []Event{{0, 9}, {10, 0}}, timing: Timing{Attack: 1, Decay: 1, Release: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.events, tt.timing, 1, 4096)
			if !errors.Is(err, core.ErrConfig) {
				t.Fatalf("Build() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestBuildOrderedAndDeduplicated(t *testing.T) {
	timings := []Timing{
		defaultTiming,
		{Attack: 1, Decay: 1, Release: 1},
		{Attack: 4096, Decay: 4096, Release: 8192},
	}

	for _, timing := range timings {
		for _, downAt := range []int{-500, 0, 100, 4095, 4096, 9000} {
			for _, hold := range []int{0, 2000, 8191, 20000} {
				for _, level := range []int{1, 2, 5, 9} {
					events := []Event{{At: downAt, Down: level}, {At: downAt + hold, Down: 0}}
					nodes, err := Build(events, timing, 4, 4096)
					if err != nil {
						t.Fatalf("Build(%v) error = %v", events, err)
					}
					checkNodes(t, nodes)
				}
			}
		}
	}
}

func checkNodes(t *testing.T, nodes []Node) {
	t.Helper()
	for i, n := range nodes {
		if n.Level < 0 || n.Level > MaxLevel {
			t.Fatalf("node %d level %d out of range in %v", i, n.Level, nodes)
		}
		if i == 0 {
			continue
		}
		prev := nodes[i-1]
		if n.At < prev.At {
			t.Fatalf("node %d out of order in %v", i, nodes)
		}
		if n == prev {
			t.Fatalf("node %d duplicates its predecessor in %v", i, nodes)
		}
	}
}
