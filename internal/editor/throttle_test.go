package editor

import (
	"sync"
	"testing"
	"time"
)

// calls is a concurrency-safe record of which requests ran.
type calls struct {
	mu  sync.Mutex
	got []int
}

func (c *calls) add(n int) func() {
	return func() {
		c.mu.Lock()
		c.got = append(c.got, n)
		c.mu.Unlock()
	}
}

func (c *calls) snapshot() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.got...)
}

func TestThrottleFirstCallImmediate(t *testing.T) {
	th := NewThrottle(time.Hour)
	var c calls
	th.Do(c.add(1))
	if got := c.snapshot(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v, want [1]", got)
	}
}

func TestThrottleCollapsesToLatest(t *testing.T) {
	th := NewThrottle(40 * time.Millisecond)
	var c calls

	th.Do(c.add(1)) // immediate
	th.Do(c.add(2)) // deferred
	th.Do(c.add(3)) // replaces 2

	if got := c.snapshot(); len(got) != 1 {
		t.Fatalf("before window close: got %v, want [1]", got)
	}

	// Wait out the trailing-edge timer.
	deadline := time.After(time.Second)
	for {
		if got := c.snapshot(); len(got) == 2 {
			if got[1] != 3 {
				t.Fatalf("trailing call = %d, want latest request 3", got[1])
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("pending request never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestThrottleFlushFiresPendingEarly(t *testing.T) {
	th := NewThrottle(time.Hour)
	var c calls

	th.Do(c.add(1))
	th.Do(c.add(2)) // pending for an hour
	th.Flush()

	if got := c.snapshot(); len(got) != 2 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}

	// Flush with nothing pending is a no-op.
	th.Flush()
	if got := c.snapshot(); len(got) != 2 {
		t.Fatalf("idle flush ran something: %v", got)
	}
}
