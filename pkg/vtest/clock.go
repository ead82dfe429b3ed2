package vtest

import (
	"sync"
	"time"

	"github.com/vango-dev/vdom/pkg/engine"
)

// Clock is a manual timer source for engine.WithAfterFunc. Scheduled
// functions run only when the test calls Flush.
type Clock struct {
	mu      sync.Mutex
	pending []*timer
}

type timer struct {
	c       *Clock
	f       func()
	stopped bool
}

// Stop implements engine.Timer.
func (t *timer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// AfterFunc implements engine.AfterFunc. The delay is ignored.
func (c *Clock) AfterFunc(_ time.Duration, f func()) engine.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &timer{c: c, f: f}
	c.pending = append(c.pending, t)
	return t
}

// Pending reports how many scheduled functions are waiting to run.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Flush runs the scheduled functions, including those scheduled while
// flushing, and returns how many ran.
func (c *Clock) Flush() int {
	ran := 0
	for {
		c.mu.Lock()
		batch := c.pending
		c.pending = nil
		c.mu.Unlock()
		if len(batch) == 0 {
			return ran
		}
		for _, t := range batch {
			c.mu.Lock()
			skip := t.stopped
			t.stopped = true
			c.mu.Unlock()
			if !skip {
				t.f()
				ran++
			}
		}
	}
}
