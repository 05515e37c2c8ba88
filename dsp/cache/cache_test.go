package cache

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cwbudde/algo-synth/dsp/buffer"
)

func TestResolveRendersOnce(t *testing.T) {
	c := New()
	calls := 0
	render := func() (*buffer.Audio, error) {
		calls++
		return buffer.New(1, 4, 44100), nil
	}

	a, err := c.Resolve("k", render)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	b, err := c.Resolve("k", render)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if a != b {
		t.Fatal("second Resolve must return the cached instance")
	}
	if calls != 1 {
		t.Fatalf("render called %d times, want 1", calls)
	}
	if a.ID != "k" {
		t.Fatalf("ID = %q, want k", a.ID)
	}

	want := Stats{Entries: 1, Hits: 1, Misses: 1, Renders: 1}
	if got := c.Stats(); got != want {
		t.Fatalf("Stats() = %+v, want %+v", got, want)
	}
}

func TestResolveErrorIsNotCached(t *testing.T) {
	c := New()
	errBoom := errors.New("boom")

	_, err := c.Resolve("k", func() (*buffer.Audio, error) { return nil, errBoom })
	if !errors.Is(err, errBoom) {
		t.Fatalf("Resolve() error = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d after failed render, want 0", c.Len())
	}

	b, err := c.Resolve("k", func() (*buffer.Audio, error) { return buffer.New(1, 1, 1), nil })
	if err != nil || b == nil {
		t.Fatalf("Resolve() after failure = %v, %v", b, err)
	}
}

func TestResolveConcurrentMissesShareOneRender(t *testing.T) {
	c := New()
	var calls atomic.Int32
	release := make(chan struct{})

	render := func() (*buffer.Audio, error) {
		calls.Add(1)
		<-release
		return buffer.New(2, 8, 48000), nil
	}

	const workers = 16
	results := make([]*buffer.Audio, workers)
	var started, done sync.WaitGroup
	started.Add(workers)
	done.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			b, err := c.Resolve("shared", render)
			if err != nil {
				t.Errorf("Resolve() error = %v", err)
				return
			}
			results[i] = b
		}(i)
	}

	started.Wait()
	time.Sleep(10 * time.Millisecond)
	close(release)
	done.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("render called %d times, want 1", n)
	}
	for i, b := range results {
		if b != results[0] {
			t.Fatalf("worker %d received a different buffer", i)
		}
	}
}

func TestGetSetKeysReset(t *testing.T) {
	var c Cache // zero value must be usable

	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache reported a hit")
	}

	c.Set("b", buffer.New(1, 1, 1))
	c.Set("a", buffer.New(1, 1, 1))
	if got, want := c.Keys(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}

	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("Len() = %d after Reset, want 0", c.Len())
	}
	if got := c.Stats(); got != (Stats{}) {
		t.Fatalf("Stats() = %+v after Reset, want zero", got)
	}
}
