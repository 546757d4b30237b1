package deck

import (
	"fmt"

	"github.com/elektrokombinacija/swipedeck/internal/animator"
	"github.com/elektrokombinacija/swipedeck/internal/config"
	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

// Splash is the title card shown for a fixed time before the sections.
type Splash struct {
	Title string
	Node  *core.Element
	Panel *animator.Panel

	duration float64
	timer    *tick.Handle
}

func newSplash(sched *tick.Scheduler, cfg config.Splash) (*Splash, error) {
	enter, err := cfg.Enter.Spec()
	if err != nil {
		return nil, fmt.Errorf("splash enter: %w", err)
	}
	exit, err := cfg.Exit.Spec()
	if err != nil {
		return nil, fmt.Errorf("splash exit: %w", err)
	}
	s := &Splash{
		Title:    cfg.Title,
		Node:     core.NewElement("splash", core.Identity()),
		duration: cfg.Duration,
	}
	s.Panel = animator.NewPanel(sched, s.Node, enter, exit)
	if s.duration <= 0 {
		return s, nil
	}
	s.Panel.Show()
	s.timer = sched.Start(tick.Sequence(
		tick.Wait(s.duration),
		tick.Call(s.Panel.Hide),
	))
	return s, nil
}

// Visible reports whether the splash still covers the sections.
func (s *Splash) Visible() bool { return s.Panel.Visible() }

// Skip starts the exit animation now.
func (s *Splash) Skip() {
	if s.timer.Active() {
		s.timer.Cancel()
		s.Panel.Hide()
	}
}

// Close cancels the timer and any panel animation.
func (s *Splash) Close() {
	s.timer.Cancel()
	s.Panel.Close()
}
