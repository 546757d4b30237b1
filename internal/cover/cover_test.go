package cover

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/playback"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

var _ playback.Cover = (*Animator)(nil)

func newCover(t *testing.T, opts Options) (*Animator, *tick.Scheduler, *core.Element) {
	t.Helper()
	s := tick.NewScheduler()
	orig := core.Identity()
	orig.Position = mgl64.Vec3{100, 50, 0}
	orig.Scale = mgl64.Vec3{2, 2, 1}
	el := core.NewElement("cover", orig)
	a := New(s, el, opts)
	require.NoError(t, a.Err())
	return a, s, el
}

func run(s *tick.Scheduler, seconds float64) {
	for e := 0.0; e < seconds; e += 0.05 {
		s.Tick(0.05)
	}
}

func TestNoiseBoundedAndDeterministic(t *testing.T) {
	a, b := NewNoise(7), NewNoise(7)
	for x := 0.0; x < 50; x += 0.37 {
		v := a.At(x)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.Equal(t, v, b.At(x))
	}
}

func TestAmbientStaysInBounds(t *testing.T) {
	opts := DefaultOptions()
	opts.Movement = 20
	opts.Scale = 0.5
	a, s, el := newCover(t, opts)
	orig := el.Snapshot()

	a.Start()
	assert.True(t, a.Moving())
	for i := 0; i < 400; i++ {
		s.Tick(0.05)
		pos, scale := a.Pose()
		assert.LessOrEqual(t, math.Abs(pos.X()-orig.Position.X()), opts.Movement/2+1e-9)
		assert.LessOrEqual(t, math.Abs(pos.Y()-orig.Position.Y()), opts.Movement/2+1e-9)
		// zoom only grows
		assert.GreaterOrEqual(t, scale.X(), orig.Scale.X()-1e-9)
		assert.LessOrEqual(t, scale.X(), orig.Scale.X()*(1+opts.Scale)+1e-9)
		assert.Equal(t, pos, el.Current().Position)
	}
}

func TestAmbientStartsWithoutJump(t *testing.T) {
	a, _, el := newCover(t, DefaultOptions())
	a.Start()
	pos, scale := a.Pose()
	assert.Equal(t, el.Snapshot().Position, pos)
	assert.Equal(t, el.Snapshot().Scale, scale)
}

func TestStopReturnsToAnchor(t *testing.T) {
	a, s, el := newCover(t, DefaultOptions())
	a.Start()
	run(s, 2)
	a.Stop()
	assert.True(t, a.Moving())
	run(s, 0.4)
	assert.False(t, a.Moving())
	assert.Equal(t, el.Snapshot().Position, el.Current().Position)
	assert.Equal(t, el.Snapshot().Scale, el.Current().Scale)
}

func TestResumeBlendsFromCurrentPose(t *testing.T) {
	opts := DefaultOptions()
	opts.Movement = 10
	a, s, el := newCover(t, opts)
	a.Start()
	run(s, 3)
	before, _ := a.Pose()
	require.NotEqual(t, el.Snapshot().Position, before)

	a.Resume()
	after, _ := a.Pose()
	assert.Equal(t, before, after, "resume must not jump")

	run(s, 0.5)
	pos, scale := a.Pose()
	assert.LessOrEqual(t, math.Abs(pos.X()-el.Snapshot().Position.X()), opts.Movement/2+1e-9)
	assert.GreaterOrEqual(t, scale.X(), el.Snapshot().Scale.X()-1e-9)
	assert.True(t, a.Moving(), "ambient motion continues after the blend")
}

func TestResumeAtAnchorStarts(t *testing.T) {
	a, _, _ := newCover(t, DefaultOptions())
	a.Resume()
	assert.True(t, a.Moving())
}

func TestDisabledMotion(t *testing.T) {
	opts := DefaultOptions()
	opts.Enabled = false
	a, s, el := newCover(t, opts)
	a.Start()
	a.Resume()
	run(s, 1)
	assert.False(t, a.Moving())
	assert.Equal(t, el.Snapshot(), el.Current())
}

func TestCrossFade(t *testing.T) {
	a, s, _ := newCover(t, DefaultOptions())
	first := image.NewRGBA(image.Rect(0, 0, 1, 1))
	second := image.NewRGBA(image.Rect(0, 0, 2, 2))
	a.Show(first)
	assert.Equal(t, White, a.Front().Tint)

	a.CrossFade(second)
	assert.True(t, a.Fading())
	s.Tick(0.125)
	s.Tick(0.125)
	assert.InDelta(t, 0.5, a.Front().Alpha, 1e-6)
	assert.InDelta(t, 0.5, a.Back().Alpha, 1e-6)
	assert.Same(t, first, a.Front().Image)

	s.Tick(0.25)
	assert.False(t, a.Fading())
	assert.Same(t, second, a.Front().Image)
	assert.Equal(t, 1.0, a.Front().Alpha)
	assert.Equal(t, 0.0, a.Back().Alpha)
}

func TestMissingArtworkUsesTint(t *testing.T) {
	a, s, _ := newCover(t, DefaultOptions())
	a.CrossFade(nil)
	run(s, 1)
	assert.Nil(t, a.Front().Image)
	assert.Equal(t, Gray, a.Front().Tint)
}

func TestCrossFadeWithoutNode(t *testing.T) {
	s := tick.NewScheduler()
	a := New(s, nil, DefaultOptions())
	assert.ErrorIs(t, a.Err(), core.ErrConfiguration)
	a.Start()
	assert.False(t, a.Moving())

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	a.CrossFade(img)
	run(s, 1)
	assert.Same(t, img, a.Front().Image)
}

func TestFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			src.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	dst := Fit(src, 32)
	assert.Equal(t, image.Rect(0, 0, 32, 32), dst.Bounds())
	r, _, _, a := dst.At(16, 16).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.InDelta(t, 200*0x101, r, 0x200)

	assert.Equal(t, image.Rect(0, 0, 8, 8), Fit(image.NewRGBA(image.Rect(0, 0, 10, 40)), 8).Bounds())
}

func TestLoadArtwork(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 64, 48))))
	require.NoError(t, f.Close())

	img, err := LoadArtwork(path, 16)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())

	_, err = LoadArtwork(filepath.Join(dir, "none.png"), 16)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	_, err = LoadArtwork(bad, 16)
	assert.Error(t, err)
}
