package engine

import (
	"github.com/cockroachdb/errors"
)

// The scheduler moves between four states:
//
//	idle       -> scheduled      Refresh arms a zero-delay timer
//	scheduled  -> running        the timer fires or RefreshNow is called
//	running    -> running+queued Refresh, an event or a completion arrives
//	running    -> idle           the queue is drained
//
// "running" is owned by exactly one goroutine at a time. Everything that
// reaches a running instance is queued for that goroutine; nothing waits
// and no pass recurses.

// Refresh schedules a render pass. Requests made while a pass is scheduled
// or running are coalesced.
func (in *Instance) Refresh() {
	in.stateMu.Lock()
	defer in.stateMu.Unlock()
	if !in.mounted {
		return
	}
	if in.running {
		in.queued = true
		return
	}
	if in.scheduled {
		return
	}
	in.scheduled = true
	in.timerSeq++
	seq := in.timerSeq
	in.timer = in.cfg.AfterFunc(0, func() { in.timerFired(seq) })
}

// RefreshNow runs a render pass before returning, cancelling a scheduled
// one. Called while a pass is running (from a handler, hook or render
// function) it only queues another pass and returns nil.
//
// The error is that of the first failed pass run by this call.
func (in *Instance) RefreshNow() error {
	in.stateMu.Lock()
	if !in.mounted {
		in.stateMu.Unlock()
		return errors.Wrap(ErrNotMounted, "refresh")
	}
	in.queued = true
	if in.running {
		in.stateMu.Unlock()
		return nil
	}
	in.cancelTimerLocked()
	in.running = true
	in.stateMu.Unlock()
	return in.loop()
}

func (in *Instance) timerFired(seq uint64) {
	in.stateMu.Lock()
	if seq != in.timerSeq || !in.scheduled {
		in.stateMu.Unlock()
		return
	}
	in.scheduled = false
	in.timer = nil
	if !in.mounted {
		in.stateMu.Unlock()
		return
	}
	in.queued = true
	if in.running {
		in.stateMu.Unlock()
		return
	}
	in.running = true
	in.stateMu.Unlock()
	_ = in.loop() // failures are logged by the pass
}

func (in *Instance) cancelTimerLocked() {
	if in.timer != nil {
		in.timer.Stop()
		in.timer = nil
	}
	in.scheduled = false
	in.timerSeq++
}

// post runs task on the run loop: right away when the loop is idle,
// otherwise after the work already queued.
func (in *Instance) post(task func()) {
	in.stateMu.Lock()
	if !in.mounted {
		in.stateMu.Unlock()
		return
	}
	in.tasks = append(in.tasks, task)
	if in.running {
		in.stateMu.Unlock()
		return
	}
	in.running = true
	in.stateMu.Unlock()
	_ = in.loop()
}

// loop drains queued tasks and passes. The caller must own "running".
func (in *Instance) loop() error {
	var first error
	for {
		in.stateMu.Lock()
		if !in.mounted {
			in.tasks = nil
			in.queued = false
			teardown := in.unmountPending
			in.unmountPending = false
			in.stateMu.Unlock()
			if teardown {
				in.teardown()
			}
			in.stateMu.Lock()
			in.running = false
			in.stateMu.Unlock()
			return first
		}
		tasks := in.tasks
		in.tasks = nil
		if len(tasks) == 0 {
			if !in.queued {
				in.running = false
				in.stateMu.Unlock()
				return first
			}
			in.queued = false
			in.stateMu.Unlock()
			if err := in.pass(); err != nil && first == nil {
				first = err
			}
			continue
		}
		in.stateMu.Unlock()
		for _, task := range tasks {
			in.runTask(task)
		}
	}
}

func (in *Instance) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			in.log.Error("vdom: task panicked", "panic", r)
		}
	}()
	task()
}
