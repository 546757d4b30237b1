package playback

import (
	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/easing"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

// startChange announces the switch, then runs the direct or crossfade
// sequence. The guard is released by the sequence cleanup however it ends.
func (c *Coordinator) startChange(next int, allowSame bool) {
	if next == c.index && !allowSame {
		return
	}
	prev := c.index
	c.change.Cancel()
	c.fade.Cancel()
	c.changing = true
	c.index = next

	c.obs.each(func(o Observer) { o.ChangeSequenceStarted(prev, next) })

	var seq tick.Task
	if c.opts.Crossfade > 0 {
		seq = c.crossfadeTo(c.catalog[next])
	} else {
		seq = c.directTo(c.catalog[next])
	}
	c.change = c.sched.Start(seq, func() { c.changing = false })
}

func (c *Coordinator) directTo(track *core.Track) tick.Task {
	src := c.Primary()
	return tick.Sequence(
		tick.Call(func() {
			src.Stop()
			src.SetPosition(0)
			if c.cover != nil {
				c.cover.CrossFade(track.Cover)
			}
			src.Load(track.Clip)
		}),
		tick.Wait(c.opts.SettleDelay),
		tick.Call(func() {
			src.SetVolume(1)
			src.Play()
			c.finishChange(track)
		}),
	)
}

func (c *Coordinator) crossfadeTo(track *core.Track) tick.Task {
	out, in := c.Primary(), c.Secondary()
	var start float64
	return tick.Sequence(
		tick.Call(func() {
			if c.cover != nil {
				c.cover.CrossFade(track.Cover)
			}
			in.Load(track.Clip)
			in.SetPosition(0)
			in.SetVolume(0)
			in.Play()
			start = out.Volume()
		}),
		tick.Tween(c.opts.Crossfade, easing.Linear, func(v float64) {
			out.SetVolume(easing.Lerp(start, 0, v))
			in.SetVolume(v)
		}),
		tick.Call(func() {
			out.Stop()
			out.SetVolume(1)
			in.SetVolume(1)
			c.primary = 1 - c.primary
			c.finishChange(track)
		}),
	)
}

func (c *Coordinator) finishChange(track *core.Track) {
	c.playing = true
	c.emitPlayState()
	c.obs.each(func(o Observer) { o.TrackChanged(track) })
	if c.cover != nil {
		c.cover.Resume()
	}
	c.log.Info().Int("track", c.index).Str("title", track.Title).Msg("track changed")
}
