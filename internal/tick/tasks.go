package tick

import (
	"github.com/tanema/gween"

	"github.com/elektrokombinacija/swipedeck/internal/easing"
)

// Func adapts a step function to Task.
type Func func(dt float64) bool

// Step calls f.
func (f Func) Step(dt float64) bool { return f(dt) }

// Forever calls fn on every step and never finishes.
func Forever(fn func(dt float64)) Task {
	return Func(func(dt float64) bool {
		fn(dt)
		return false
	})
}

// Call runs fn once and finishes.
func Call(fn func()) Task {
	return Func(func(float64) bool {
		fn()
		return true
	})
}

const waitEpsilon = 1e-9

type wait struct {
	left float64
}

// Wait finishes on the first step at which the given seconds have elapsed.
func Wait(seconds float64) Task {
	return &wait{left: seconds}
}

func (w *wait) Step(dt float64) bool {
	w.left -= dt
	return w.left <= waitEpsilon
}

type sequence struct {
	tasks []Task
	i     int
}

// Sequence runs tasks one after another. When one finishes the next takes its
// first step in the same frame.
func Sequence(tasks ...Task) Task {
	return &sequence{tasks: tasks}
}

func (s *sequence) Step(dt float64) bool {
	for s.i < len(s.tasks) {
		if !s.tasks[s.i].Step(dt) {
			return false
		}
		s.i++
		dt = 0
	}
	return true
}

type tween struct {
	tw       *gween.Tween
	update   func(v float64)
	instant  bool
	finalVal float64
}

// Tween reports eased progress from 0 to 1 over duration seconds. The first
// step reports 0 and the last reports fn(1). A duration of zero or less
// reports fn(1) once and finishes.
func Tween(duration float64, fn easing.Func, update func(v float64)) Task {
	if fn == nil {
		fn = easing.Linear
	}
	t := &tween{update: update, finalVal: fn(1)}
	if duration <= 0 {
		t.instant = true
		return t
	}
	t.tw = gween.New(0, 1, float32(duration), fn.Tween())
	return t
}

func (t *tween) Step(dt float64) bool {
	if t.instant {
		t.update(t.finalVal)
		return true
	}
	v, done := t.tw.Update(float32(dt))
	if done {
		t.update(t.finalVal)
		return true
	}
	t.update(float64(v))
	return false
}
