package animator

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

var allKinds = []Kind{Fade, Bounce, Elastic, Slide, Scale, Rotate, Flip, Swing, Zoom, Pop}

func newElement() *core.Element {
	orig := core.Identity()
	orig.Scale = mgl64.Vec3{2, 3, 1}
	orig.Position = mgl64.Vec3{40, 60, 0}
	orig.Rotation = mgl64.QuatRotate(0.3, mgl64.Vec3{0, 0, 1})
	return core.NewElement("card", orig)
}

func quatNear(a, b mgl64.Quat) bool {
	if math.Abs(a.W-b.W) > 1e-9 {
		return false
	}
	for i := range a.V {
		if math.Abs(a.V[i]-b.V[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestParseKind(t *testing.T) {
	for _, k := range allKinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind("zoom")
	require.NoError(t, err)
	assert.Equal(t, Zoom, got)

	_, err = ParseKind("wobble")
	assert.Error(t, err)
}

func TestApplyAtEndReproducesSnapshot(t *testing.T) {
	for _, k := range allKinds {
		el := newElement()
		spec := DefaultSpec(k)
		setHidden(el, spec, el.Snapshot())
		apply(el, spec, el.Snapshot(), k.Easing()(1), false)
		assert.True(t, el.Current().ApproxEqualThreshold(el.Snapshot(), 1e-4), "%v: %+v", k, el.Current())
	}
}

func TestRunRestoresSnapshot(t *testing.T) {
	for _, k := range allKinds {
		s := tick.NewScheduler()
		el := newElement()
		a := New(s, el, DefaultSpec(k))
		a.Play(DefaultSpec(k))
		assert.False(t, a.IsComplete())

		for i := 0; i < 6; i++ {
			s.Tick(0.125)
		}
		assert.True(t, a.IsComplete(), k.String())
		assert.Equal(t, el.Snapshot(), el.Current(), k.String())
	}
}

func TestInitialStates(t *testing.T) {
	tests := []struct {
		kind  Kind
		check func(t *testing.T, cur, orig core.Transform)
	}{
		{Fade, func(t *testing.T, cur, orig core.Transform) { assert.Equal(t, 0.0, cur.Alpha) }},
		{Bounce, func(t *testing.T, cur, orig core.Transform) { assert.Equal(t, mgl64.Vec3{}, cur.Scale) }},
		{Pop, func(t *testing.T, cur, orig core.Transform) { assert.Equal(t, mgl64.Vec3{}, cur.Scale) }},
		{Slide, func(t *testing.T, cur, orig core.Transform) {
			assert.Equal(t, orig.Position.Add(mgl64.Vec3{0, -500, 0}), cur.Position)
		}},
		{Zoom, func(t *testing.T, cur, orig core.Transform) {
			assert.Equal(t, mgl64.Vec3{}, cur.Scale)
			assert.Equal(t, 0.0, cur.Alpha)
		}},
		{Rotate, func(t *testing.T, cur, orig core.Transform) {
			want := orig.Rotation.Mul(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}))
			assert.True(t, quatNear(cur.Rotation, want))
		}},
		{Swing, func(t *testing.T, cur, orig core.Transform) {
			want := orig.Rotation.Mul(mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0}))
			assert.True(t, quatNear(cur.Rotation, want))
		}},
	}

	for _, tt := range tests {
		s := tick.NewScheduler()
		el := newElement()
		spec := DefaultSpec(tt.kind)
		spec.Delay = 1
		a := New(s, el, spec)
		a.Play(spec)
		tt.check(t, el.Current(), el.Snapshot())
		assert.True(t, a.Running())
	}
}

func TestFadeProgress(t *testing.T) {
	s := tick.NewScheduler()
	el := newElement()
	spec := DefaultSpec(Fade)
	spec.Duration = 1
	a := New(s, el, spec)
	a.Play(spec)

	s.Tick(0.25)
	assert.InDelta(t, 0.25, el.Current().Alpha, 1e-6)
	s.Tick(0.25)
	assert.InDelta(t, 0.5, el.Current().Alpha, 1e-6)
}

func TestFlipForeshortens(t *testing.T) {
	el := newElement()
	spec := DefaultSpec(Flip)
	apply(el, spec, el.Snapshot(), 0, false)
	// 90 degrees edge-on
	assert.InDelta(t, 0, el.Current().Scale.X(), 1e-9)
	assert.Equal(t, 3.0, el.Current().Scale.Y())
}

func TestPopOvershoot(t *testing.T) {
	assert.InDelta(t, 0.5, popMultiplier(0.4, false), 1e-12)
	assert.InDelta(t, 1.1, popMultiplier(0.8, false), 1e-12)
	assert.InDelta(t, 1.0, popMultiplier(1, false), 1e-12)
	assert.InDelta(t, 1.1, popMultiplier(0, true), 1e-12)
	assert.InDelta(t, 0.0, popMultiplier(1, true), 1e-12)
}

func TestPlayAfterCompleteIsNoop(t *testing.T) {
	s := tick.NewScheduler()
	el := newElement()
	a := New(s, el, DefaultSpec(Fade))
	a.Play(DefaultSpec(Fade))
	for i := 0; i < 5; i++ {
		s.Tick(0.125)
	}
	require.True(t, a.IsComplete())

	a.Play(DefaultSpec(Fade))
	assert.Equal(t, 1.0, el.Current().Alpha)
	assert.False(t, a.Running())

	a.Restart()
	assert.False(t, a.IsComplete())
	assert.Equal(t, 0.0, el.Current().Alpha)
	assert.True(t, a.Running())
}

func TestPlayCancelsInFlightRun(t *testing.T) {
	s := tick.NewScheduler()
	el := newElement()
	spec := DefaultSpec(Fade)
	spec.Duration = 1
	a := New(s, el, spec)
	a.Play(spec)
	s.Tick(0.5)
	a.Play(spec)
	assert.Equal(t, 0.0, el.Current().Alpha)
	assert.Equal(t, 1, s.Active())
}

func TestZeroDurationCompletesInstantly(t *testing.T) {
	s := tick.NewScheduler()
	el := newElement()
	spec := DefaultSpec(Zoom)
	spec.Duration = 0
	a := New(s, el, spec)
	a.Play(spec)
	assert.True(t, a.IsComplete())
	assert.Equal(t, el.Snapshot(), el.Current())
}

func TestDelayHoldsInitialState(t *testing.T) {
	s := tick.NewScheduler()
	el := newElement()
	spec := DefaultSpec(Fade)
	spec.Delay = 0.5
	spec.Duration = 0.5
	a := New(s, el, spec)
	a.Play(spec)

	s.Tick(0.25)
	assert.Equal(t, 0.0, el.Current().Alpha)
	s.Tick(0.25)
	s.Tick(0.25)
	assert.InDelta(t, 0.5, el.Current().Alpha, 1e-6)
	s.Tick(0.25)
	assert.True(t, a.IsComplete())
}

func TestCloseStopsMutation(t *testing.T) {
	s := tick.NewScheduler()
	el := newElement()
	spec := DefaultSpec(Fade)
	spec.Duration = 1
	a := New(s, el, spec)
	a.Play(spec)
	s.Tick(0.25)
	a.Close()
	s.Tick(0.25)
	assert.InDelta(t, 0.25, el.Current().Alpha, 1e-6)
	assert.False(t, a.IsComplete())
}

func TestNilNodeDisables(t *testing.T) {
	s := tick.NewScheduler()
	a := New(s, nil, DefaultSpec(Fade))
	assert.ErrorIs(t, a.Err(), core.ErrConfiguration)
	assert.NotPanics(t, func() {
		a.Play(DefaultSpec(Fade))
		a.Restart()
	})
	assert.Equal(t, 0, s.Active())
}
