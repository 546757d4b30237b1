package animator

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

// Animator plays one intro animation on one element at a time.
//
// The element's original transform is captured at construction and is the
// terminal state of every run. After a run completes, Play does nothing until
// Restart is called.
type Animator struct {
	sched    *tick.Scheduler
	node     core.Node
	spec     Spec
	orig     core.Transform
	run      *tick.Handle
	complete bool
	err      error
	log      zerolog.Logger
}

// New creates an animator for node. A nil node disables the animator and the
// problem is logged once.
func New(sched *tick.Scheduler, node core.Node, spec Spec) *Animator {
	a := &Animator{
		sched: sched,
		node:  node,
		spec:  spec,
		log:   log.With().Str("component", "animator").Logger(),
	}
	if node == nil {
		a.err = &core.ConfigurationError{Component: "animator", Missing: "element"}
		a.log.Error().Err(a.err).Msg("animator disabled")
		return a
	}
	a.orig = node.Snapshot()
	return a
}

// Err returns the configuration error that disabled the animator, if any.
func (a *Animator) Err() error { return a.err }

// Spec returns the spec of the last run.
func (a *Animator) Spec() Spec { return a.spec }

// IsComplete reports whether the last run finished.
func (a *Animator) IsComplete() bool { return a.complete }

// Running reports whether a run is in flight, including its start delay.
func (a *Animator) Running() bool { return a.run.Active() }

// Play starts spec on the element, cancelling any run in flight. It does
// nothing once a run has completed; use Restart to replay.
func (a *Animator) Play(spec Spec) {
	if a.err != nil || a.complete {
		return
	}
	a.spec = spec
	a.start()
}

// Restart clears the completed flag and replays the stored spec.
func (a *Animator) Restart() {
	if a.err != nil {
		return
	}
	a.complete = false
	a.start()
}

// Close cancels any run in flight without restoring the element.
func (a *Animator) Close() {
	a.run.Cancel()
}

func (a *Animator) start() {
	a.run.Cancel()
	setHidden(a.node, a.spec, a.orig)

	spec := a.spec
	a.run = a.sched.Start(tick.Sequence(
		tick.Wait(spec.Delay),
		tick.Tween(spec.Duration, spec.Kind.Easing(), func(v float64) {
			apply(a.node, spec, a.orig, v, false)
		}),
		tick.Call(func() {
			restore(a.node, a.orig)
			a.complete = true
			a.log.Debug().Stringer("kind", spec.Kind).Msg("animation complete")
		}),
	))
}
