// Package playback coordinates a two-slot crossfading player and notifies UI
// observers of track, play-state and time changes.
package playback

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/easing"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

// ErrNoClip is returned by Seek when the primary slot has nothing loaded.
var ErrNoClip = errors.New("playback: no clip loaded")

// Options configures transitions. Durations are in seconds.
type Options struct {
	// Crossfade > 0 switches tracks by ramping two slots against each other.
	Crossfade float64
	// Fade > 0 ramps volume on play and pause.
	Fade float64
	// SettleDelay separates loading from starting in a direct switch.
	SettleDelay float64
}

// DefaultOptions returns direct switching with no fades.
func DefaultOptions() Options {
	return Options{SettleDelay: 0.05}
}

// Coordinator owns the current track and play state.
type Coordinator struct {
	opts    Options
	sched   *tick.Scheduler
	catalog core.Catalog
	sources [2]Source
	primary int
	cover   Cover

	index    int
	playing  bool
	changing bool

	update *tick.Handle
	change *tick.Handle
	fade   *tick.Handle

	obs observers
	err error
	log zerolog.Logger
}

// New loads the first track into the primary slot and starts the per-frame
// time update. cover may be nil. A nil secondary slot disables crossfading.
func New(sched *tick.Scheduler, catalog core.Catalog, primary, secondary Source, cover Cover, opts Options) *Coordinator {
	c := &Coordinator{
		opts:    opts,
		sched:   sched,
		catalog: catalog,
		sources: [2]Source{primary, secondary},
		cover:   cover,
		log:     log.With().Str("component", "playback").Logger(),
	}
	switch {
	case primary == nil:
		c.err = &core.ConfigurationError{Component: "playback", Missing: "audio source"}
	case len(catalog) == 0:
		c.err = &core.ConfigurationError{Component: "playback", Missing: "tracks"}
	}
	if c.err != nil {
		c.log.Error().Err(c.err).Msg("playback disabled")
		return c
	}
	if secondary == nil && opts.Crossfade > 0 {
		c.log.Error().Err(&core.ConfigurationError{Component: "playback", Missing: "secondary audio source"}).
			Msg("crossfade disabled")
		c.opts.Crossfade = 0
	}

	primary.SetVolume(1)
	if secondary != nil {
		secondary.SetVolume(0)
	}
	track := catalog[0]
	primary.Load(track.Clip)
	if cover != nil {
		cover.Show(track.Cover)
	}
	c.update = sched.Start(tick.Forever(c.frame))
	return c
}

// Err returns the configuration error that disabled the coordinator, if any.
func (c *Coordinator) Err() error { return c.err }

// Subscribe registers o and returns a function that removes it.
func (c *Coordinator) Subscribe(o Observer) func() { return c.obs.add(o) }

// Catalog returns the track list.
func (c *Coordinator) Catalog() core.Catalog { return c.catalog }

// CurrentIndex returns the index of the current track. During a switch it is
// already the incoming track.
func (c *Coordinator) CurrentIndex() int { return c.index }

// CurrentTrack returns the current track, or nil for an empty catalog.
func (c *Coordinator) CurrentTrack() *core.Track { return c.catalog.At(c.index) }

// IsPlaying reports the coordinator's play state.
func (c *Coordinator) IsPlaying() bool { return c.playing }

// ChangingTrack reports whether a switch sequence is in flight.
func (c *Coordinator) ChangingTrack() bool { return c.changing }

// Primary returns the slot currently considered audible.
func (c *Coordinator) Primary() Source { return c.sources[c.primary] }

// Secondary returns the idle slot used as the crossfade target.
func (c *Coordinator) Secondary() Source { return c.sources[1-c.primary] }

// Play starts or resumes the primary slot.
func (c *Coordinator) Play() {
	if c.err != nil || c.playing {
		return
	}
	if c.changing {
		c.log.Debug().Msg("play ignored during track change")
		return
	}
	src := c.Primary()
	c.fade.Cancel()
	if c.opts.Fade > 0 {
		src.SetVolume(0)
		src.Play()
		c.fade = c.sched.Start(tick.Tween(c.opts.Fade, easing.Linear, src.SetVolume))
	} else {
		src.Play()
		src.SetVolume(1)
	}

	c.playing = true
	c.emitPlayState()
	if c.cover != nil {
		c.cover.Start()
	}
}

// Pause pauses the primary slot, fading out first when configured.
func (c *Coordinator) Pause() {
	if c.err != nil || !c.playing {
		return
	}
	if c.changing {
		c.log.Debug().Msg("pause ignored during track change")
		return
	}
	src := c.Primary()
	c.fade.Cancel()
	if c.opts.Fade > 0 {
		start := src.Volume()
		c.fade = c.sched.Start(tick.Sequence(
			tick.Tween(c.opts.Fade, easing.Linear, func(v float64) {
				src.SetVolume(easing.Lerp(start, 0, v))
			}),
			tick.Call(func() {
				src.SetVolume(0)
				src.Pause()
			}),
		))
	} else {
		src.Pause()
	}

	c.playing = false
	c.emitPlayState()
	if c.cover != nil {
		c.cover.Stop()
	}
}

// TogglePlayPause plays when paused and pauses when playing.
func (c *Coordinator) TogglePlayPause() {
	if c.playing {
		c.Pause()
		return
	}
	c.Play()
}

// Next switches to the following track, wrapping at the end.
func (c *Coordinator) Next() {
	if c.err != nil {
		return
	}
	if c.changing {
		c.log.Debug().Err(core.ErrReentrant).Msg("next ignored")
		return
	}
	c.startChange((c.index+1)%len(c.catalog), false)
}

// Previous switches to the preceding track, wrapping at the start.
func (c *Coordinator) Previous() {
	if c.err != nil {
		return
	}
	if c.changing {
		c.log.Debug().Err(core.ErrReentrant).Msg("previous ignored")
		return
	}
	n := len(c.catalog)
	c.startChange((c.index-1+n)%n, false)
}

// SelectTrack switches to track i. Selecting the current track while it
// plays does nothing; while paused it restarts the track. ErrReentrant is
// returned while a switch is in flight.
func (c *Coordinator) SelectTrack(i int) error {
	if c.err != nil {
		return c.err
	}
	if c.changing {
		c.log.Debug().Int("track", i).Msg("select ignored during track change")
		return core.ErrReentrant
	}
	if i < 0 || i >= len(c.catalog) {
		return core.IndexError("track", i, len(c.catalog))
	}
	if i == c.index && c.playing {
		return nil
	}
	c.startChange(i, true)
	return nil
}

// Seek moves the primary slot to norm times the clip length.
func (c *Coordinator) Seek(norm float64) error {
	if c.err != nil {
		return c.err
	}
	src := c.Primary()
	clip := src.Clip()
	if clip == nil {
		return ErrNoClip
	}
	src.SetPosition(easing.Clamp01(norm) * clip.Length())
	return nil
}

// Progress returns the primary slot's position normalized by clip length.
func (c *Coordinator) Progress() float64 {
	if c.err != nil {
		return 0
	}
	src := c.Primary()
	if l := src.Clip().Length(); l > 0 {
		return src.Position() / l
	}
	return 0
}

// ForceRefresh re-announces the current track to every observer.
func (c *Coordinator) ForceRefresh() {
	if t := c.CurrentTrack(); t != nil && c.err == nil {
		c.obs.each(func(o Observer) { o.TrackChanged(t) })
	}
}

// Close cancels every owned task and stops both slots.
func (c *Coordinator) Close() {
	c.update.Cancel()
	c.change.Cancel()
	c.fade.Cancel()
	for _, s := range c.sources {
		if s != nil {
			s.Stop()
		}
	}
}

func (c *Coordinator) frame(float64) {
	src := c.Primary()
	clip := src.Clip()
	if clip == nil {
		return
	}
	t, l := src.Position(), clip.Length()
	c.obs.each(func(o Observer) { o.TrackTimeChanged(t, l) })

	if !src.IsPlaying() && c.playing && l > 0 && t >= l {
		c.Next()
	}
}

func (c *Coordinator) emitPlayState() {
	playing := c.playing
	c.obs.each(func(o Observer) { o.PlayStateChanged(playing) })
}
