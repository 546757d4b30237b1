// Package cover animates the now-playing artwork: slow ambient pan and zoom
// while playing, and a two-slot cross-fade when the artwork changes.
package cover

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/easing"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

var (
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Gray  = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
)

// Options tunes the artwork motion. Durations are in seconds.
type Options struct {
	// Enabled turns ambient motion on; cross-fades always run.
	Enabled bool
	Speed   float64
	// Movement bounds the pan offset to half its value on each axis.
	Movement float64
	// Scale is the largest extra zoom factor.
	Scale          float64
	Transition     float64
	ReturnDuration float64
	BlendDuration  float64
	Seed           int64
	// DefaultTint is drawn when a track has no artwork.
	DefaultTint color.NRGBA
}

// DefaultOptions returns the stock motion parameters.
func DefaultOptions() Options {
	return Options{
		Enabled:        true,
		Speed:          0.5,
		Movement:       5,
		Scale:          0.03,
		Transition:     0.5,
		ReturnDuration: 0.3,
		BlendDuration:  0.5,
		Seed:           1,
		DefaultTint:    Gray,
	}
}

// Slot is one of the two stacked artwork images.
type Slot struct {
	Image image.Image
	Tint  color.NRGBA
	Alpha float64
}

// Animator drives the artwork node and its two image slots.
type Animator struct {
	sched *tick.Scheduler
	node  core.Node
	opts  Options

	nx, ny, ns *Noise
	rng        *rand.Rand

	origPos, origScale mgl64.Vec3
	pos, scale         mgl64.Vec3

	front, back Slot
	motion      *tick.Handle
	fade        *tick.Handle

	err error
	log zerolog.Logger
}

// New anchors the animator at node's snapshot. Without a node ambient motion
// is disabled but the image slots still cross-fade.
func New(sched *tick.Scheduler, node core.Node, opts Options) *Animator {
	if opts.DefaultTint == (color.NRGBA{}) {
		opts.DefaultTint = Gray
	}
	a := &Animator{
		sched: sched,
		node:  node,
		opts:  opts,
		nx:    NewNoise(opts.Seed),
		ny:    NewNoise(opts.Seed + 1),
		ns:    NewNoise(opts.Seed + 2),
		rng:   rand.New(rand.NewSource(opts.Seed)),
		front: Slot{Tint: opts.DefaultTint, Alpha: 1},
		log:   log.With().Str("component", "cover").Logger(),
	}
	if node == nil {
		a.err = &core.ConfigurationError{Component: "cover", Missing: "artwork node"}
		a.log.Error().Err(a.err).Msg("cover motion disabled")
		return a
	}
	snap := node.Snapshot()
	a.origPos, a.origScale = snap.Position, snap.Scale
	a.pos, a.scale = a.origPos, a.origScale
	return a
}

// Err returns the configuration error, if any.
func (a *Animator) Err() error { return a.err }

// Front returns the visible slot.
func (a *Animator) Front() Slot { return a.front }

// Back returns the slot fading in, if a cross-fade is running.
func (a *Animator) Back() Slot { return a.back }

// Pose returns the current position and scale.
func (a *Animator) Pose() (pos, scale mgl64.Vec3) { return a.pos, a.scale }

// Moving reports whether a motion task is running.
func (a *Animator) Moving() bool { return a.motion.Active() }

// Fading reports whether an artwork cross-fade is running.
func (a *Animator) Fading() bool { return a.fade.Active() }

func (a *Animator) slot(img image.Image, alpha float64) Slot {
	if img == nil {
		return Slot{Tint: a.opts.DefaultTint, Alpha: alpha}
	}
	return Slot{Image: img, Tint: White, Alpha: alpha}
}

// Show swaps the artwork without a transition.
func (a *Animator) Show(img image.Image) {
	a.fade.Cancel()
	a.front = a.slot(img, 1)
	a.back = Slot{}
}

// CrossFade fades the back slot in over the front one, then promotes it.
// Motion keeps running on the shared pose throughout.
func (a *Animator) CrossFade(img image.Image) {
	a.fade.Cancel()
	a.front.Alpha = 1
	a.back = a.slot(img, 0)
	a.fade = a.sched.Start(tick.Sequence(
		tick.Tween(a.opts.Transition, easing.Linear, func(v float64) {
			a.front.Alpha = 1 - v
			a.back.Alpha = v
		}),
		tick.Call(func() {
			a.front = a.back
			a.front.Alpha = 1
			a.back = Slot{}
		}),
	))
}

func (a *Animator) enabled() bool { return a.err == nil && a.opts.Enabled }

// Start begins ambient motion, blending in from the current pose.
func (a *Animator) Start() {
	if !a.enabled() {
		return
	}
	a.motion.Cancel()
	a.motion = a.sched.Start(a.ambient(a.pos, a.scale))
}

// Stop eases back to the original anchor and ends ambient motion.
func (a *Animator) Stop() {
	if !a.enabled() {
		return
	}
	a.motion.Cancel()
	fromPos, fromScale := a.pos, a.scale
	a.motion = a.sched.Start(tick.Sequence(
		tick.Tween(a.opts.ReturnDuration, smooth, func(v float64) {
			a.setPose(lerp(fromPos, a.origPos, v), lerp(fromScale, a.origScale, v))
		}),
		tick.Call(func() { a.setPose(a.origPos, a.origScale) }),
	))
}

// Resume blends from the in-flight pose toward a random nearby pose, then
// continues ambient motion from there. At the anchor it behaves like Start.
func (a *Animator) Resume() {
	if !a.enabled() {
		return
	}
	if a.pos == a.origPos && a.scale == a.origScale {
		a.Start()
		return
	}
	a.motion.Cancel()
	m := a.opts.Movement
	toPos := a.origPos.Add(mgl64.Vec3{
		(a.rng.Float64()*2 - 1) * m * 0.5,
		(a.rng.Float64()*2 - 1) * m * 0.5,
		0,
	})
	toScale := a.origScale.Mul(1 + a.rng.Float64()*a.opts.Scale)
	fromPos, fromScale := a.pos, a.scale
	a.motion = a.sched.Start(tick.Sequence(
		tick.Tween(a.opts.BlendDuration, smooth, func(v float64) {
			a.setPose(lerp(fromPos, toPos, v), lerp(fromScale, toScale, v))
		}),
		tick.Call(func() { a.setPose(toPos, toScale) }),
		a.ambient(toPos, toScale),
	))
}

// Close cancels motion and any cross-fade.
func (a *Animator) Close() {
	a.motion.Cancel()
	a.fade.Cancel()
}

// ambient samples three noise fields each step. Position offsets are
// symmetric around the anchor; the zoom factor only grows. The first
// BlendDuration seconds ease in from the given pose.
func (a *Animator) ambient(fromPos, fromScale mgl64.Vec3) tick.Task {
	sx, sy, ss := a.rng.Float64()*100, a.rng.Float64()*100, a.rng.Float64()*100
	m := a.opts.Movement
	elapsed := 0.0
	return tick.Forever(func(dt float64) {
		elapsed += dt
		t := a.sched.Now() * a.opts.Speed
		pos := a.origPos.Add(mgl64.Vec3{
			(a.nx.At(sx+t*0.3) - 0.5) * m,
			(a.ny.At(sy+t*0.3) - 0.5) * m,
			0,
		})
		scale := a.origScale.Mul(1 + a.ns.At(ss+t*0.2)*a.opts.Scale)
		if a.opts.BlendDuration > 0 && elapsed < a.opts.BlendDuration {
			w := easing.SmoothStep(0, a.opts.BlendDuration, elapsed)
			pos, scale = lerp(fromPos, pos, w), lerp(fromScale, scale, w)
		}
		a.setPose(pos, scale)
	})
}

func (a *Animator) setPose(pos, scale mgl64.Vec3) {
	a.pos, a.scale = pos, scale
	a.node.SetLocalPosition(pos)
	a.node.SetLocalScale(scale)
}

func smooth(t float64) float64 { return easing.SmoothStep(0, 1, t) }

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
