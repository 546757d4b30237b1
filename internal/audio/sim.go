// Package audio provides playback slots for the coordinator: a simulated
// clock-driven slot for headless runs and tests, and an oto-backed slot for
// real output.
package audio

import (
	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

// Sim is a silent slot whose position advances with the scheduler.
type Sim struct {
	Name string

	clip    *core.Clip
	pos     float64
	volume  float64
	playing bool
	task    *tick.Handle
}

// NewSim creates a slot advanced by sched every tick.
func NewSim(sched *tick.Scheduler, name string) *Sim {
	s := &Sim{Name: name, volume: 1}
	s.task = sched.Start(tick.Forever(s.Advance))
	return s
}

// Advance moves the play head by dt seconds while playing. Reaching the end
// stops the slot with the position left at the clip length.
func (s *Sim) Advance(dt float64) {
	if !s.playing || s.clip == nil {
		return
	}
	s.pos += dt
	if l := s.clip.Length(); s.pos >= l {
		s.pos = l
		s.playing = false
	}
}

func (s *Sim) Load(clip *core.Clip) {
	s.clip = clip
	s.pos = 0
	s.playing = false
}

func (s *Sim) Clip() *core.Clip { return s.clip }

// Play resumes, rewinding first when parked at the end.
func (s *Sim) Play() {
	if s.clip == nil {
		return
	}
	if s.pos >= s.clip.Length() {
		s.pos = 0
	}
	s.playing = true
}

func (s *Sim) Pause() { s.playing = false }

func (s *Sim) Stop() {
	s.playing = false
	s.pos = 0
}

func (s *Sim) SetVolume(v float64) { s.volume = v }
func (s *Sim) Volume() float64     { return s.volume }

func (s *Sim) SetPosition(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if l := s.clip.Length(); seconds > l {
		seconds = l
	}
	s.pos = seconds
}

func (s *Sim) Position() float64 { return s.pos }
func (s *Sim) IsPlaying() bool   { return s.playing }

// Close detaches the slot from the scheduler.
func (s *Sim) Close() { s.task.Cancel() }
