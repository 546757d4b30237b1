// Package interact turns pointer input into scroll motion for the section pager.
package interact

import (
	"math"
	"time"

	"gioui.org/io/pointer"
)

// ScrollView is a horizontal scroll position with drag tracking and inertia.
// It implements nav.Scroller.
type ScrollView struct {
	// Decay is the fraction of velocity kept after one second of coasting.
	Decay float64

	// OnDragBegin and OnDragEnd receive the pointer x in screen pixels.
	OnDragBegin func(x float64)
	OnDragEnd   func(x float64)

	offset   float64 // normalized, 0 shows the left edge
	velocity float64 // pixels per second, positive moves content right
	viewport float64
	content  float64

	dragging bool
	lastX    float64
	lastT    time.Duration
}

// NewScrollView creates a scroll view with the given viewport width.
func NewScrollView(viewport float64) *ScrollView {
	return &ScrollView{
		Decay:    0.135,
		viewport: viewport,
		content:  viewport,
	}
}

func (s *ScrollView) Offset() float64           { return s.offset }
func (s *ScrollView) Velocity() float64         { return s.velocity }
func (s *ScrollView) StopMotion()               { s.velocity = 0 }
func (s *ScrollView) ViewportWidth() float64    { return s.viewport }
func (s *ScrollView) ContentWidth() float64     { return s.content }
func (s *ScrollView) SetContentWidth(w float64) { s.content = w }

// SetOffset moves to v, clamped to [0,1].
func (s *ScrollView) SetOffset(v float64) {
	s.offset = math.Max(0, math.Min(1, v))
}

// SetViewportWidth resizes the viewport. It reports whether the width changed.
func (s *ScrollView) SetViewportWidth(w float64) bool {
	if w == s.viewport {
		return false
	}
	s.viewport = w
	return true
}

// Dragging reports whether a pointer holds the content.
func (s *ScrollView) Dragging() bool { return s.dragging }

// ContentX returns the content pixel at the left edge of the viewport.
func (s *ScrollView) ContentX() float64 {
	return s.offset * s.scrollable()
}

func (s *ScrollView) scrollable() float64 {
	return math.Max(0, s.content-s.viewport)
}

// Press grabs the content at screen x.
func (s *ScrollView) Press(x float64, at time.Duration) {
	s.dragging = true
	s.velocity = 0
	s.lastX, s.lastT = x, at
	if s.OnDragBegin != nil {
		s.OnDragBegin(x)
	}
}

// Move drags the content with the pointer and samples its speed.
func (s *ScrollView) Move(x float64, at time.Duration) {
	if !s.dragging {
		return
	}
	dx := x - s.lastX
	s.scrollBy(dx)
	if dt := (at - s.lastT).Seconds(); dt > 0 {
		s.velocity = dx / dt
	}
	s.lastX, s.lastT = x, at
}

// Release lets go at screen x; the content keeps coasting.
func (s *ScrollView) Release(x float64, at time.Duration) {
	if !s.dragging {
		return
	}
	s.Move(x, at)
	s.dragging = false
	if s.OnDragEnd != nil {
		s.OnDragEnd(x)
	}
}

// Step coasts by the current velocity and applies decay. Hitting either end
// stops the motion.
func (s *ScrollView) Step(dt float64) {
	if s.dragging || s.velocity == 0 || dt <= 0 {
		return
	}
	s.scrollBy(s.velocity * dt)
	s.velocity *= math.Pow(s.Decay, dt)
	if math.Abs(s.velocity) < 1 || s.offset == 0 || s.offset == 1 {
		s.velocity = 0
	}
}

func (s *ScrollView) scrollBy(dx float64) {
	if w := s.scrollable(); w > 0 {
		s.SetOffset(s.offset - dx/w)
	}
}

// HandleEvent feeds a Gio pointer event to the view.
func (s *ScrollView) HandleEvent(ev pointer.Event) {
	x := float64(ev.Position.X)
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonPrimary) || ev.Source == pointer.Touch {
			s.Press(x, ev.Time)
		}
	case pointer.Drag:
		s.Move(x, ev.Time)
	case pointer.Release, pointer.Cancel:
		s.Release(x, ev.Time)
	}
}
