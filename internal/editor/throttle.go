package editor

import (
	"sync"
	"time"
)

// Throttle rate-limits a stream of requests (pointer-move brush
// events) to at most one per interval. Calls inside a window are
// collapsed, but the most recent pending request always fires when the
// window closes: the final input of a stroke is never dropped.
type Throttle struct {
	interval time.Duration

	mu      sync.Mutex
	last    time.Time
	pending func()
	timer   *time.Timer
}

// NewThrottle creates a throttle with the given minimum interval
// between executions.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Do runs fn immediately if the window has elapsed; otherwise fn
// replaces any pending request and runs when the window closes.
func (t *Throttle) Do(fn func()) {
	t.mu.Lock()
	now := time.Now()
	if now.Sub(t.last) >= t.interval {
		t.last = now
		t.mu.Unlock()
		fn()
		return
	}

	t.pending = fn
	if t.timer == nil {
		wait := t.interval - now.Sub(t.last)
		t.timer = time.AfterFunc(wait, t.flush)
	}
	t.mu.Unlock()
}

// flush executes the latest pending request at the end of a window.
func (t *Throttle) flush() {
	t.mu.Lock()
	fn := t.pending
	t.pending = nil
	t.timer = nil
	t.last = time.Now()
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush runs any pending request immediately, ahead of its window.
// Hosts call it on stroke end so the final brush position lands before
// the pointer-up commit.
func (t *Throttle) Flush() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	fn := t.pending
	t.pending = nil
	if fn != nil {
		t.last = time.Now()
	}
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}
