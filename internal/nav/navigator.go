// Package nav pages a horizontal scroll view between discrete sections.
package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/easing"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

// Scroller is the scroll view being paged.
type Scroller interface {
	// Offset is the horizontal normalized position in [0,1].
	Offset() float64
	SetOffset(v float64)
	// Velocity is the horizontal scroll speed in pixels per second.
	Velocity() float64
	// StopMotion zeroes the velocity so inertia cannot fight a settle.
	StopMotion()
	ViewportWidth() float64
	SetContentWidth(w float64)
}

// Section is one page of the scroll view.
type Section struct {
	Name string
	// Width in pixels; zero means one viewport wide.
	Width float64
	// Animators are restarted every time the section is entered.
	Animators []core.Restartable
	// Player, when set, is refreshed on entry.
	Player core.Refresher
	// Node, when set, receives the inactive/active scale effect.
	Node core.Node

	x     float64
	width float64
}

// X returns the laid-out left edge in content pixels.
func (s *Section) X() float64 { return s.x }

// LaidOutWidth returns the laid-out width in pixels.
func (s *Section) LaidOutWidth() float64 { return s.width }

// Options tunes paging behaviour.
type Options struct {
	// ScreenWidth scales the swipe threshold; zero uses the viewport width.
	ScreenWidth float64
	// SwipeThreshold is the fraction of the screen a drag must cover to page.
	SwipeThreshold float64
	// SnapSpeed multiplies elapsed time in the settle curve.
	SnapSpeed float64
	// SnapPrecision is the normalized distance at which a settle lands.
	SnapPrecision float64
	// LowMotionVelocity is the speed below which an idle view settles.
	LowMotionVelocity float64
	// GraceDelay separates landing from section activation.
	GraceDelay float64

	ScaleEffect   bool
	ActiveScale   float64
	InactiveScale float64
}

// DefaultOptions returns the stock paging parameters.
func DefaultOptions() Options {
	return Options{
		SwipeThreshold:    0.05,
		SnapSpeed:         10,
		SnapPrecision:     0.001,
		LowMotionVelocity: 50,
		GraceDelay:        0.2,
		ScaleEffect:       true,
		ActiveScale:       1,
		InactiveScale:     0.85,
	}
}

// State is the navigator's interaction state.
type State int

const (
	Idle State = iota
	Dragging
	Settling
)

func (s State) String() string {
	return [...]string{"Idle", "Dragging", "Settling"}[s]
}

type listener struct {
	id int
	fn func(int)
}

// Navigator maps section indices to scroll offsets and drives gesture paging.
type Navigator struct {
	opts     Options
	sched    *tick.Scheduler
	scroll   Scroller
	sections []*Section
	scales   []float64

	current   int
	activated int
	dragging  bool
	snapping  bool
	dragStart float64
	dragEnd   float64

	settle    *tick.Handle
	update    *tick.Handle
	listeners []listener
	nextID    int

	err error
	log zerolog.Logger
}

// New lays out sections side by side, jumps to the first one and starts the
// per-frame update task.
func New(sched *tick.Scheduler, scroll Scroller, sections []*Section, opts Options) *Navigator {
	n := &Navigator{
		opts:      opts,
		sched:     sched,
		scroll:    scroll,
		sections:  sections,
		scales:    make([]float64, len(sections)),
		activated: -1,
		log:       log.With().Str("component", "navigator").Logger(),
	}
	switch {
	case scroll == nil:
		n.err = &core.ConfigurationError{Component: "navigator", Missing: "scroll view"}
	case len(sections) == 0:
		n.err = &core.ConfigurationError{Component: "navigator", Missing: "sections"}
	}
	if n.err != nil {
		n.log.Error().Err(n.err).Msg("navigator disabled")
		return n
	}

	n.Layout()
	n.goTo(0, false, true)
	n.update = sched.Start(tick.Forever(n.frame))
	return n
}

// Err returns the configuration error that disabled the navigator, if any.
func (n *Navigator) Err() error { return n.err }

// Current returns the index of the current section.
func (n *Navigator) Current() int { return n.current }

// Count returns the number of sections.
func (n *Navigator) Count() int { return len(n.sections) }

// Section returns the section at i, or nil.
func (n *Navigator) Section(i int) *Section {
	if i < 0 || i >= len(n.sections) {
		return nil
	}
	return n.sections[i]
}

// State reports whether the view is idle, dragging or settling.
func (n *Navigator) State() State {
	switch {
	case n.dragging:
		return Dragging
	case n.snapping:
		return Settling
	default:
		return Idle
	}
}

// OnActivate registers fn to run after a section is entered. The returned
// function unregisters it.
func (n *Navigator) OnActivate(fn func(index int)) func() {
	id := n.nextID
	n.nextID++
	n.listeners = append(n.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range n.listeners {
			if l.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Layout positions sections side by side and publishes the content width.
func (n *Navigator) Layout() {
	if n.err != nil {
		return
	}
	viewport := n.scroll.ViewportWidth()
	x := 0.0
	for _, s := range n.sections {
		s.x = x
		s.width = s.Width
		if s.width <= 0 {
			s.width = viewport
		}
		x += s.width
	}
	n.scroll.SetContentWidth(x)
}

// Resize re-lays out the sections after a viewport change and keeps the
// current section in view when nothing is moving.
func (n *Navigator) Resize() {
	if n.err != nil {
		return
	}
	n.Layout()
	if !n.dragging && !n.snapping {
		n.scroll.SetOffset(n.Offset(n.current))
	}
}

func (n *Navigator) contentWidth() float64 {
	if len(n.sections) == 0 {
		return 0
	}
	last := n.sections[len(n.sections)-1]
	return last.x + last.width
}

// Offset returns the normalized scroll offset that centers section i.
func (n *Navigator) Offset(i int) float64 {
	if n.err != nil || i < 0 || i >= len(n.sections) {
		return 0
	}
	s := n.sections[i]
	viewport := n.scroll.ViewportWidth()
	scrollable := n.contentWidth() - viewport
	if scrollable <= 0 {
		return 0
	}
	return easing.Clamp01((s.x + s.width/2 - viewport/2) / scrollable)
}

// Nearest returns the section whose offset is closest to the current scroll.
func (n *Navigator) Nearest() int {
	if n.err != nil {
		return 0
	}
	pos := n.scroll.Offset()
	best, bestDist := 0, math.Inf(1)
	for i := range n.sections {
		if d := math.Abs(pos - n.Offset(i)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// SectionScale returns the display scale computed for section i this frame.
func (n *Navigator) SectionScale(i int) float64 {
	if i < 0 || i >= len(n.scales) {
		return 1
	}
	return n.scales[i]
}

// DragBegin cancels any settle and starts tracking a drag at screen x.
func (n *Navigator) DragBegin(x float64) {
	if n.err != nil {
		return
	}
	n.dragging = true
	n.snapping = false
	n.dragStart = x
	n.settle.Cancel()
}

// DragEnd pages one section when the drag covered enough of the screen,
// otherwise it settles on the nearest section. Dragging right pages back.
// A swipe past either edge re-enters the edge section.
func (n *Navigator) DragEnd(x float64) {
	if n.err != nil {
		return
	}
	n.dragging = false
	n.dragEnd = x
	delta := n.dragEnd - n.dragStart

	screen := n.opts.ScreenWidth
	if screen <= 0 {
		screen = n.scroll.ViewportWidth()
	}
	if math.Abs(delta) <= screen*n.opts.SwipeThreshold {
		n.snapToNearest()
		return
	}

	target := n.current + 1
	if delta > 0 {
		target = n.current - 1
	}
	n.goTo(clampIndex(target, len(n.sections)), true, true)
}

// GoToSection moves to section i, animated or immediately. The section is
// activated on arrival even if it is already current.
func (n *Navigator) GoToSection(i int, animate bool) error {
	if n.err != nil {
		return n.err
	}
	if i < 0 || i >= len(n.sections) {
		return core.IndexError("section", i, len(n.sections))
	}
	n.goTo(i, animate, true)
	return nil
}

// NextSection pages forward unless already on the last section.
func (n *Navigator) NextSection() {
	if n.err == nil && n.current < len(n.sections)-1 {
		n.goTo(n.current+1, true, true)
	}
}

// PreviousSection pages back unless already on the first section.
func (n *Navigator) PreviousSection() {
	if n.err == nil && n.current > 0 {
		n.goTo(n.current-1, true, true)
	}
}

// Close cancels the update and settle tasks.
func (n *Navigator) Close() {
	n.settle.Cancel()
	n.update.Cancel()
}

func (n *Navigator) goTo(i int, animate, force bool) {
	n.current = i
	n.snapping = false
	n.settle.Cancel()

	if animate {
		n.snapping = true
		n.settle = n.sched.Start(n.settleTask(i, force))
		return
	}
	n.scroll.SetOffset(n.Offset(i))
	n.applyScale()
	n.activate(i, force)
}

func (n *Navigator) snapToNearest() {
	nearest := n.Nearest()
	if nearest != n.current || !n.snapping {
		n.current = nearest
		n.snapping = true
		n.settle.Cancel()
		n.settle = n.sched.Start(n.settleTask(nearest, false))
	}
}

// settleTask eases the offset onto section i, then activates it after the
// grace delay. A non-positive SnapSpeed lands at once.
func (n *Navigator) settleTask(i int, force bool) tick.Task {
	start := n.scroll.Offset()
	target := n.Offset(i)
	elapsed := 0.0
	n.scroll.StopMotion()

	return tick.Sequence(
		tick.Func(func(dt float64) bool {
			if n.opts.SnapSpeed <= 0 || math.Abs(n.scroll.Offset()-target) <= n.opts.SnapPrecision {
				return true
			}
			elapsed += dt * n.opts.SnapSpeed
			n.scroll.SetOffset(easing.Lerp(start, target, easing.SmoothStep(0, 1, elapsed)))
			return false
		}),
		tick.Call(func() {
			n.scroll.SetOffset(target)
			n.snapping = false
		}),
		tick.Wait(n.opts.GraceDelay),
		tick.Call(func() { n.activate(i, force) }),
	)
}

func (n *Navigator) activate(i int, force bool) {
	if !force && i == n.activated {
		return
	}
	n.activated = i
	s := n.sections[i]
	for _, a := range s.Animators {
		if a != nil {
			a.Restart()
		}
	}
	if s.Player != nil {
		s.Player.ForceRefresh()
	}
	for _, l := range n.listeners {
		l.fn(i)
	}
	n.log.Debug().Int("section", i).Str("name", s.Name).Msg("section activated")
}

func (n *Navigator) frame(float64) {
	if !n.dragging && !n.snapping && math.Abs(n.scroll.Velocity()) < n.opts.LowMotionVelocity {
		if math.Abs(n.scroll.Offset()-n.Offset(n.Nearest())) > n.opts.SnapPrecision {
			n.snapToNearest()
		}
	}
	n.applyScale()
}

func (n *Navigator) applyScale() {
	pos := n.scroll.Offset()
	for i, s := range n.sections {
		scale := n.opts.ActiveScale
		if n.opts.ScaleEffect {
			d := easing.Clamp01(3 * math.Abs(pos-n.Offset(i)))
			scale = easing.Lerp(n.opts.ActiveScale, n.opts.InactiveScale, d)
		}
		n.scales[i] = scale
		if s.Node != nil {
			s.Node.SetLocalScale(mgl64.Vec3{scale, scale, 1})
		}
	}
}

func clampIndex(i, count int) int {
	if i < 0 {
		return 0
	}
	if i >= count {
		return count - 1
	}
	return i
}
