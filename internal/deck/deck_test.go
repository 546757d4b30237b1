package deck

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swipedeck/internal/audio"
	"github.com/elektrokombinacija/swipedeck/internal/config"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

type fakeScroll struct {
	offset, velocity, content float64
}

func (f *fakeScroll) Offset() float64           { return f.offset }
func (f *fakeScroll) SetOffset(v float64)       { f.offset = v }
func (f *fakeScroll) Velocity() float64         { return f.velocity }
func (f *fakeScroll) StopMotion()               { f.velocity = 0 }
func (f *fakeScroll) ViewportWidth() float64    { return 800 }
func (f *fakeScroll) SetContentWidth(w float64) { f.content = w }

func smallConfig() *config.Config {
	c := config.Default()
	c.Audio = config.Audio{Driver: "sim", SampleRate: 100, Channels: 1}
	for i := range c.Tracks {
		c.Tracks[i].Seconds = 4
	}
	return c
}

func build(t *testing.T, c *config.Config) (*Deck, *tick.Scheduler, *fakeScroll) {
	t.Helper()
	s := tick.NewScheduler()
	out, err := OpenOutput(s, c.Audio)
	require.NoError(t, err)
	sc := &fakeScroll{}
	d, err := Build(s, c, sc, out)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d, s, sc
}

func run(s *tick.Scheduler, seconds float64) {
	for i := 0; i < int(seconds/0.125); i++ {
		s.Tick(0.125)
	}
}

func TestBuildDefaultDeck(t *testing.T) {
	d, _, sc := build(t, smallConfig())

	require.NoError(t, d.Coordinator.Err())
	require.NoError(t, d.Navigator.Err())
	assert.Len(t, d.Sections, 3)
	assert.Len(t, d.Catalog, 3)
	assert.Equal(t, 2400.0, sc.content)
	assert.Equal(t, 0, d.Navigator.Current())

	assert.Equal(t, "Sine Rise", d.Player.Title)
	assert.Equal(t, "00:04", d.Player.TotalTime)
	assert.True(t, d.Element(0, "heading").Animator.Running(), "first section intro plays on build")
	assert.False(t, d.Element(1, "title").Animator.Running())
}

func TestElementDisplay(t *testing.T) {
	d, _, _ := build(t, smallConfig())
	assert.Equal(t, "Sine Rise", d.Element(1, "title").Display(d.Player))
	assert.Equal(t, "Test Tones", d.Element(1, "artist").Display(d.Player))
	assert.Equal(t, "00:04", d.Element(1, "total").Display(d.Player))
	assert.Equal(t, "Swipe to browse", d.Element(0, "heading").Display(d.Player))
	assert.Equal(t, "Swipe to browse", d.Element(0, "heading").Display(nil))
	assert.Nil(t, d.Element(0, "missing"))
	assert.Nil(t, d.Element(7, "heading"))
}

func TestMirrorFollowsSource(t *testing.T) {
	d, s, _ := build(t, smallConfig())
	now := d.Element(2, "now-playing")
	require.NotNil(t, now)
	assert.Equal(t, "Sine Rise", now.Display(nil))

	d.Coordinator.Next()
	run(s, 0.5)
	assert.Equal(t, "Fifth Above", now.Display(d.Player))
}

func TestEnteringPlayerSectionReplaysBoundIntros(t *testing.T) {
	d, s, _ := build(t, smallConfig())
	require.NoError(t, d.Navigator.GoToSection(1, false))
	assert.True(t, d.Element(1, "title").Animator.Running())

	run(s, 2)
	assert.True(t, d.Element(1, "title").Animator.IsComplete())

	d.Coordinator.Next()
	run(s, 0.25)
	assert.Equal(t, "Fifth Above", d.Player.Title)
	assert.True(t, d.Element(1, "title").Animator.Running(), "track change replays bound intros")
	assert.False(t, d.Element(1, "title").Animator.IsComplete())
}

func TestPlaybackDrivesCover(t *testing.T) {
	d, s, _ := build(t, smallConfig())
	d.Coordinator.Play()
	run(s, 1)
	assert.True(t, d.Cover.Moving())
	assert.Greater(t, d.Coordinator.Primary().Position(), 0.5)

	d.Coordinator.Pause()
	run(s, 1)
	assert.False(t, d.Coordinator.IsPlaying())
}

func TestSplashHidesAfterDuration(t *testing.T) {
	c := smallConfig()
	c.Splash.Duration = 1
	d, s, _ := build(t, c)
	assert.True(t, d.Splash.Visible())
	run(s, 1.25)
	assert.True(t, d.Splash.Visible(), "exit animation still running")
	run(s, 0.5)
	assert.False(t, d.Splash.Visible())
}

func TestSplashSkip(t *testing.T) {
	d, s, _ := build(t, smallConfig())
	d.Splash.Skip()
	run(s, 0.5)
	assert.False(t, d.Splash.Visible())
}

func TestNoSplash(t *testing.T) {
	c := smallConfig()
	c.Splash.Duration = 0
	d, _, _ := build(t, c)
	assert.False(t, d.Splash.Visible())
	assert.NotPanics(t, d.Splash.Skip)
}

func TestSplashRejectsUnknownKind(t *testing.T) {
	c := smallConfig()
	c.Splash.Enter.Kind = "wobble"
	_, err := newSplash(tick.NewScheduler(), c.Splash)
	assert.ErrorContains(t, err, "splash enter")

	c = smallConfig()
	c.Splash.Exit.Kind = "wobble"
	_, err = newSplash(tick.NewScheduler(), c.Splash)
	assert.ErrorContains(t, err, "splash exit")
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	c := smallConfig()
	c.Sections = nil
	_, err := Build(tick.NewScheduler(), c, &fakeScroll{}, nil)
	assert.Error(t, err)
}

func TestBuildWithoutOutputDisablesPlayback(t *testing.T) {
	d, err := Build(tick.NewScheduler(), smallConfig(), &fakeScroll{}, nil)
	require.NoError(t, err)
	defer d.Close()
	assert.Error(t, d.Coordinator.Err())
	assert.NotPanics(t, func() {
		d.Coordinator.Play()
		d.Coordinator.Next()
	})
}

func TestLoadCatalogFromFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, audio.SavePCM(filepath.Join(dir, "a.pcm"), audio.Tone("a", 5, 2, 100, 1)))

	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	c := smallConfig()
	c.Dir = dir
	c.Cover.Size = 16
	c.Tracks = []config.Track{
		{Title: "File", PCM: "a.pcm", Cover: "a.png", Selectable: true},
		{Title: "Lost art", Tone: 100, Cover: "missing.png"},
		{Title: "Default length", Tone: 100},
	}
	catalog, err := LoadCatalog(c)
	require.NoError(t, err)
	require.Len(t, catalog, 3)

	assert.InDelta(t, 2, catalog[0].Clip.Length(), 1e-9)
	require.NotNil(t, catalog[0].Cover)
	assert.Equal(t, 16, catalog[0].Cover.Bounds().Dx())
	assert.True(t, catalog[0].Selectable)
	assert.Nil(t, catalog[1].Cover)
	assert.InDelta(t, DefaultToneSeconds, catalog[2].Clip.Length(), 1e-9)
}

func TestLoadCatalogMissingPCM(t *testing.T) {
	c := smallConfig()
	c.Dir = t.TempDir()
	c.Tracks = []config.Track{{Title: "Gone", PCM: "gone.pcm"}}
	_, err := LoadCatalog(c)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenOutput(t *testing.T) {
	s := tick.NewScheduler()
	out, err := OpenOutput(s, config.Audio{Driver: "sim", SampleRate: 100, Channels: 1})
	require.NoError(t, err)
	require.NoError(t, out.Wait(context.Background()))
	assert.NotNil(t, out.Primary)
	assert.NotNil(t, out.Secondary)
	assert.NoError(t, out.Close())

	_, err = OpenOutput(s, config.Audio{Driver: "alsa"})
	assert.Error(t, err)
}
