package animator

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

// Panel shows and hides a popup element with separate enter and exit
// animations. The panel starts hidden.
type Panel struct {
	sched   *tick.Scheduler
	node    core.Node
	enter   Spec
	exit    Spec
	orig    core.Transform
	run     *tick.Handle
	visible bool
	err     error
	log     zerolog.Logger
}

// NewPanel creates a hidden panel. A nil node disables it and the problem is
// logged once; Show and Hide then do nothing.
func NewPanel(sched *tick.Scheduler, node core.Node, enter, exit Spec) *Panel {
	p := &Panel{
		sched: sched,
		node:  node,
		enter: enter,
		exit:  exit,
		log:   log.With().Str("component", "panel").Logger(),
	}
	if node == nil {
		p.err = &core.ConfigurationError{Component: "panel", Missing: "panel element"}
		p.log.Error().Err(p.err).Msg("panel disabled")
		return p
	}
	p.orig = node.Snapshot()
	p.setVisible(false)
	return p
}

// Err returns the configuration error that disabled the panel, if any.
func (p *Panel) Err() error { return p.err }

// Visible reports whether the panel is shown or still animating out.
func (p *Panel) Visible() bool { return p.visible }

// Animating reports whether an enter or exit run is in flight.
func (p *Panel) Animating() bool { return p.run.Active() }

// Show makes the panel visible and plays the enter animation.
func (p *Panel) Show() {
	if p.err != nil {
		return
	}
	p.run.Cancel()
	p.setVisible(true)
	setHidden(p.node, p.enter, p.orig)

	spec := p.enter
	p.run = p.sched.Start(tick.Sequence(
		tick.Tween(spec.Duration, spec.Kind.Easing(), func(v float64) {
			apply(p.node, spec, p.orig, v, false)
		}),
		tick.Call(func() { restore(p.node, p.orig) }),
	))
}

// Hide plays the exit animation, then hides the panel and restores its
// original transform for the next Show.
func (p *Panel) Hide() {
	if p.err != nil {
		return
	}
	p.run.Cancel()

	spec := p.exit
	p.run = p.sched.Start(tick.Sequence(
		tick.Tween(spec.Duration, spec.Kind.exitEasing(), func(v float64) {
			apply(p.node, spec, p.orig, v, true)
		}),
		tick.Call(func() {
			setHidden(p.node, spec, p.orig)
			p.setVisible(false)
			restore(p.node, p.orig)
		}),
	))
}

// Close cancels any run in flight.
func (p *Panel) Close() {
	p.run.Cancel()
}

func (p *Panel) setVisible(v bool) {
	p.visible = v
	if t, ok := p.node.(core.Toggler); ok {
		t.SetVisible(v)
	}
}
