// Package tick runs cooperative, frame-driven tasks on a single logical thread.
//
// A Task is resumed once per frame with the elapsed seconds since the previous
// frame. Starting a task runs its first step immediately, so a task behaves
// like a coroutine that executes until its first suspension point before
// Start returns. Nothing here is safe for concurrent use: the host calls Tick
// from its frame loop and every other call happens on that same goroutine.
package tick

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Task is a resumable unit of timed work.
type Task interface {
	// Step advances the task by dt seconds and reports whether it finished.
	Step(dt float64) bool
}

// Handle controls a started task.
type Handle struct {
	task    Task
	done    bool
	cleanup []func()
}

// Active reports whether the task is still being resumed.
func (h *Handle) Active() bool {
	return h != nil && !h.done
}

// Cancel stops resuming the task and runs its cleanups. Cancelling a finished
// or nil handle does nothing.
func (h *Handle) Cancel() {
	if h == nil || h.done {
		return
	}
	h.finish()
}

// Defer registers fn to run once when the task ends for any reason. If the
// task already ended, fn runs immediately.
func (h *Handle) Defer(fn func()) {
	if h.done {
		fn()
		return
	}
	h.cleanup = append(h.cleanup, fn)
}

func (h *Handle) finish() {
	h.done = true
	for i := len(h.cleanup) - 1; i >= 0; i-- {
		h.cleanup[i]()
	}
	h.cleanup = nil
}

// Scheduler owns the set of running tasks.
type Scheduler struct {
	now     float64
	handles []*Handle
	log     zerolog.Logger
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{log: log.With().Str("component", "scheduler").Logger()}
}

// Now returns the accumulated tick time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Start begins t and runs its first step with dt=0. Cleanups run exactly once
// when the task completes, is cancelled, or panics.
func (s *Scheduler) Start(t Task, cleanup ...func()) *Handle {
	h := &Handle{task: t, cleanup: cleanup}
	if s.step(h, 0) {
		h.finish()
		return h
	}
	s.handles = append(s.handles, h)
	return h
}

// Tick resumes every running task in start order. Tasks started during this
// tick already ran their first step and are not resumed again until the next.
func (s *Scheduler) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	current := append([]*Handle(nil), s.handles...)
	for _, h := range current {
		if h.done {
			continue
		}
		if s.step(h, dt) && !h.done {
			h.finish()
		}
	}

	live := s.handles[:0]
	for _, h := range s.handles {
		if !h.done {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(s.handles); i++ {
		s.handles[i] = nil
	}
	s.handles = live
}

// Active returns the number of running tasks.
func (s *Scheduler) Active() int {
	count := 0
	for _, h := range s.handles {
		if !h.done {
			count++
		}
	}
	return count
}

// CancelAll cancels every running task. Tasks started by cleanups survive.
func (s *Scheduler) CancelAll() {
	handles := s.handles
	s.handles = nil
	for _, h := range handles {
		h.Cancel()
	}
}

// step resumes one task. A panicking task is treated as finished so its
// cleanups still run and the frame loop survives.
func (s *Scheduler) step(h *Handle, dt float64) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Err(fmt.Errorf("%v", r)).Msg("task panicked")
			done = true
		}
	}()
	return h.task.Step(dt)
}
