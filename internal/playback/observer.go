package playback

import "github.com/elektrokombinacija/swipedeck/internal/core"

// Observer receives coordinator notifications. Calls are synchronous, on the
// ticking goroutine, in subscription order.
type Observer interface {
	TrackChanged(t *core.Track)
	PlayStateChanged(playing bool)
	TrackTimeChanged(current, total float64)
	// ChangeSequenceStarted fires before any audio changes for a track switch.
	ChangeSequenceStarted(prev, next int)
}

// Funcs adapts optional callbacks to Observer.
type Funcs struct {
	OnTrackChanged          func(t *core.Track)
	OnPlayStateChanged      func(playing bool)
	OnTrackTimeChanged      func(current, total float64)
	OnChangeSequenceStarted func(prev, next int)
}

func (f Funcs) TrackChanged(t *core.Track) {
	if f.OnTrackChanged != nil {
		f.OnTrackChanged(t)
	}
}

func (f Funcs) PlayStateChanged(playing bool) {
	if f.OnPlayStateChanged != nil {
		f.OnPlayStateChanged(playing)
	}
}

func (f Funcs) TrackTimeChanged(current, total float64) {
	if f.OnTrackTimeChanged != nil {
		f.OnTrackTimeChanged(current, total)
	}
}

func (f Funcs) ChangeSequenceStarted(prev, next int) {
	if f.OnChangeSequenceStarted != nil {
		f.OnChangeSequenceStarted(prev, next)
	}
}

type subscriber struct {
	id int
	o  Observer
}

type observers struct {
	list   []subscriber
	nextID int
}

func (s *observers) add(o Observer) func() {
	id := s.nextID
	s.nextID++
	s.list = append(s.list, subscriber{id: id, o: o})
	return func() {
		for i, sub := range s.list {
			if sub.id == id {
				s.list = append(s.list[:i:i], s.list[i+1:]...)
				return
			}
		}
	}
}

// each dispatches over a copy so observers may unsubscribe while notified.
func (s *observers) each(fn func(Observer)) {
	for _, sub := range append([]subscriber(nil), s.list...) {
		fn(sub.o)
	}
}
