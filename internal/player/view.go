// Package player keeps the now-playing view model in sync with the playback
// coordinator.
package player

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/playback"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

// CueDelay is how long the pause cue shows before flipping back to play
// when a track change starts mid-playback.
const CueDelay = 0.3

// Model is the part of the coordinator the view reads and controls.
type Model interface {
	CurrentTrack() *core.Track
	IsPlaying() bool
	Seek(norm float64) error
	Subscribe(o playback.Observer) func()
}

// Cue is the transport icon state.
type Cue int

const (
	CuePaused Cue = iota
	CuePlaying
)

func (c Cue) String() string {
	if c == CuePlaying {
		return "playing"
	}
	return "paused"
}

// View holds display text, progress and the transport cue.
type View struct {
	Title       string
	Artist      string
	Album       string
	CurrentTime string
	TotalTime   string

	sched     *tick.Scheduler
	model     Model
	animators []core.Restartable

	progress float64
	dragging bool
	cue      Cue
	cueTask  *tick.Handle
	unsub    func()

	log zerolog.Logger
}

// New subscribes to model and fills the view from its current state.
// animators are restarted whenever the track changes.
func New(sched *tick.Scheduler, model Model, animators ...core.Restartable) *View {
	v := &View{
		sched:     sched,
		model:     model,
		animators: animators,
		log:       log.With().Str("component", "player").Logger(),
	}
	if model == nil {
		v.log.Error().Err(&core.ConfigurationError{Component: "player", Missing: "playback model"}).
			Msg("player view disabled")
		return v
	}
	v.unsub = model.Subscribe(v)
	v.refresh(false)
	return v
}

// Progress returns the slider value in [0,1].
func (v *View) Progress() float64 { return v.progress }

// Cue returns the transport icon state.
func (v *View) Cue() Cue { return v.cue }

// Dragging reports whether the user holds the progress slider.
func (v *View) Dragging() bool { return v.dragging }

func (v *View) TrackChanged(t *core.Track) {
	if t == nil {
		return
	}
	v.setText(t)
	for _, a := range v.animators {
		if a != nil {
			a.Restart()
		}
	}
}

// PlayStateChanged sets the cue. A pending pause-then-play cue keeps
// running when playback resumes underneath it.
func (v *View) PlayStateChanged(playing bool) {
	if playing && v.cueTask.Active() {
		return
	}
	v.cueTask.Cancel()
	if playing {
		v.cue = CuePlaying
	} else {
		v.cue = CuePaused
	}
}

func (v *View) TrackTimeChanged(current, total float64) {
	if !v.dragging {
		if total > 0 {
			v.progress = current / total
		} else {
			v.progress = 0
		}
	}
	v.CurrentTime = playback.FormatTime(current)
	if v.TotalTime == "" || v.TotalTime == playback.FormatTime(0) {
		v.TotalTime = playback.FormatTime(total)
	}
}

// ChangeSequenceStarted flashes the pause cue, then the play cue, while a
// playing track is switched.
func (v *View) ChangeSequenceStarted(prev, next int) {
	if !v.model.IsPlaying() {
		return
	}
	v.cueTask.Cancel()
	v.cue = CuePaused
	v.cueTask = v.sched.Start(tick.Sequence(
		tick.Wait(CueDelay),
		tick.Call(func() { v.cue = CuePlaying }),
	))
}

// BeginDrag stops time updates from moving the slider.
func (v *View) BeginDrag() { v.dragging = true }

// Drag moves the slider without seeking.
func (v *View) Drag(value float64) {
	if v.dragging {
		v.progress = value
	}
}

// EndDrag releases the slider and seeks to value.
func (v *View) EndDrag(value float64) {
	v.dragging = false
	v.progress = value
	if v.model == nil {
		return
	}
	if err := v.model.Seek(value); err != nil {
		v.log.Warn().Err(err).Float64("value", value).Msg("seek failed")
	}
}

// ForceRefresh re-reads the current track and play state.
func (v *View) ForceRefresh() { v.refresh(true) }

func (v *View) refresh(restart bool) {
	if v.model == nil {
		return
	}
	if t := v.model.CurrentTrack(); t != nil {
		if restart {
			v.TrackChanged(t)
		} else {
			v.setText(t)
		}
	}
	v.PlayStateChanged(v.model.IsPlaying())
}

func (v *View) setText(t *core.Track) {
	v.Title, v.Artist, v.Album = t.Title, t.Artist, t.Album
	v.CurrentTime = playback.FormatTime(0)
	v.TotalTime = playback.FormatTime(t.Clip.Length())
}

// Close unsubscribes from the model and cancels the cue.
func (v *View) Close() {
	v.cueTask.Cancel()
	if v.unsub != nil {
		v.unsub()
	}
}
