// Package observer provides playback observers for the front ends.
package observer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/playback"
)

// Logger writes coordinator notifications to a zerolog logger. Time updates
// go to trace level since they fire every frame.
type Logger struct {
	log zerolog.Logger
}

// NewLogger creates a logging observer.
func NewLogger(l zerolog.Logger) *Logger {
	return &Logger{log: l.With().Str("component", "observer").Logger()}
}

func (o *Logger) TrackChanged(t *core.Track) {
	o.log.Info().Str("title", t.Title).Str("artist", t.Artist).Msg("track changed")
}

func (o *Logger) PlayStateChanged(playing bool) {
	o.log.Info().Bool("playing", playing).Msg("play state changed")
}

func (o *Logger) TrackTimeChanged(current, total float64) {
	o.log.Trace().Float64("current", current).Float64("total", total).Msg("time")
}

func (o *Logger) ChangeSequenceStarted(prev, next int) {
	o.log.Debug().Int("from", prev).Int("to", next).Msg("change sequence started")
}

// NewRedraw returns an observer that calls invalidate on every discrete
// notification, so a window idle between frames still repaints.
func NewRedraw(invalidate func()) playback.Observer {
	return playback.Funcs{
		OnTrackChanged:          func(*core.Track) { invalidate() },
		OnPlayStateChanged:      func(bool) { invalidate() },
		OnChangeSequenceStarted: func(int, int) { invalidate() },
	}
}

// Recorder keeps a readable log of discrete notifications.
type Recorder struct {
	Events []string
}

func (r *Recorder) TrackChanged(t *core.Track) {
	r.Events = append(r.Events, "track "+t.Title)
}

func (r *Recorder) PlayStateChanged(playing bool) {
	if playing {
		r.Events = append(r.Events, "playing")
	} else {
		r.Events = append(r.Events, "paused")
	}
}

func (r *Recorder) TrackTimeChanged(current, total float64) {}

func (r *Recorder) ChangeSequenceStarted(prev, next int) {
	r.Events = append(r.Events, fmt.Sprintf("change %d->%d", prev, next))
}
