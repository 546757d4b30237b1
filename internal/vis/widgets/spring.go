package widgets

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// springFPS is the fixed physics rate; frames step it as often as their
// elapsed time allows.
const springFPS = 60

// Spring eases a value toward Target with a damped harmonic spring.
type Spring struct {
	Pos    float64
	Target float64

	spring  harmonica.Spring
	vel     float64
	pending float64
}

// NewSpring creates a spring at rest on pos.
func NewSpring(pos, frequency, damping float64) *Spring {
	return &Spring{
		Pos:    pos,
		Target: pos,
		spring: harmonica.NewSpring(harmonica.FPS(springFPS), frequency, damping),
	}
}

// Update advances the spring by dt seconds.
func (s *Spring) Update(dt float64) {
	s.pending += dt
	step := 1.0 / springFPS
	for s.pending >= step {
		s.pending -= step
		s.Pos, s.vel = s.spring.Update(s.Pos, s.vel, s.Target)
	}
	if math.Abs(s.Pos-s.Target) < 1e-3 && math.Abs(s.vel) < 1e-3 {
		s.Pos, s.vel = s.Target, 0
	}
}

// Settled reports whether the spring rests on its target.
func (s *Spring) Settled() bool {
	return s.Pos == s.Target && s.vel == 0
}
