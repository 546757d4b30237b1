// Package state holds what the window shares between widgets.
package state

import (
	"github.com/elektrokombinacija/swipedeck/internal/deck"
	"github.com/elektrokombinacija/swipedeck/internal/vis/interact"
)

// State holds all visualization state.
type State struct {
	Deck   *deck.Deck
	Scroll *interact.ScrollView
	Clock  *FrameClock
}

// NewState creates a new visualization state and routes scroll drags to
// the deck's navigator.
func NewState(d *deck.Deck, scroll *interact.ScrollView) *State {
	scroll.OnDragBegin = d.Navigator.DragBegin
	scroll.OnDragEnd = d.Navigator.DragEnd
	return &State{
		Deck:   d,
		Scroll: scroll,
		Clock:  NewFrameClock(),
	}
}

// Frame advances the clock and runs one scheduler tick.
func (s *State) Frame() float64 {
	dt := s.Clock.Advance()
	s.Deck.Sched.Tick(dt)
	return dt
}

// Resize updates the viewport width and re-lays out the sections.
func (s *State) Resize(width float64) {
	if s.Scroll.SetViewportWidth(width) {
		s.Deck.Navigator.Resize()
	}
}

// SectionX returns section i's left edge in screen pixels.
func (s *State) SectionX(i int) float64 {
	sec := s.Deck.Navigator.Section(i)
	if sec == nil {
		return 0
	}
	return sec.X() - s.Scroll.ContentX()
}
