package state

import "time"

// MaxFrameStep caps one frame's delta so a stalled window does not fast
// forward every animation.
const MaxFrameStep = 0.1

// FrameClock measures wall time between frames and scales it for the
// scheduler. Frozen clocks report zero.
type FrameClock struct {
	Speed  float64 // multiplier, 1 is real time
	Frozen bool

	now  func() time.Time
	last time.Time
}

// NewFrameClock creates a real-time clock.
func NewFrameClock() *FrameClock {
	return newFrameClock(time.Now)
}

func newFrameClock(now func() time.Time) *FrameClock {
	return &FrameClock{Speed: 1, now: now}
}

// Advance returns the scaled seconds since the previous call. The first call
// returns zero.
func (c *FrameClock) Advance() float64 {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	elapsed := t.Sub(c.last).Seconds()
	c.last = t
	if c.Frozen || elapsed <= 0 {
		return 0
	}
	if elapsed > MaxFrameStep {
		elapsed = MaxFrameStep
	}
	return elapsed * c.Speed
}

// ToggleFreeze stops or resumes time.
func (c *FrameClock) ToggleFreeze() {
	c.Frozen = !c.Frozen
}

// SetSpeed sets the time multiplier, clamped to [0.1, 10].
func (c *FrameClock) SetSpeed(speed float64) {
	if speed < 0.1 {
		speed = 0.1
	}
	if speed > 10 {
		speed = 10
	}
	c.Speed = speed
}
