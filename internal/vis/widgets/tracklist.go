package widgets

import (
	"image"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/rs/zerolog/log"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/playback"
	"github.com/elektrokombinacija/swipedeck/internal/vis/draw"
)

// Tracklist shows a button per selectable track. The current track's
// button glows, and the glow springs across when the track changes.
type Tracklist struct {
	coord   *playback.Coordinator
	entries []trackEntry
}

type trackEntry struct {
	index int
	track *core.Track
	btn   widget.Clickable
	glow  *Spring
}

// NewTracklist creates buttons for the selectable tracks of coord's catalog.
func NewTracklist(coord *playback.Coordinator) *Tracklist {
	tl := &Tracklist{coord: coord}
	for i, tr := range coord.Catalog() {
		if !tr.Selectable {
			continue
		}
		glow := 0.0
		if i == coord.CurrentIndex() {
			glow = 1
		}
		tl.entries = append(tl.entries, trackEntry{index: i, track: tr, glow: NewSpring(glow, 10, 0.8)})
	}
	return tl
}

// Highlight returns the glow of each button, in catalog order.
func (tl *Tracklist) Highlight() []float64 {
	out := make([]float64, len(tl.entries))
	for i, e := range tl.entries {
		out[i] = e.glow.Pos
	}
	return out
}

// Update steps the glow springs toward the current track.
func (tl *Tracklist) Update(dt float64) {
	current := tl.coord.CurrentIndex()
	for _, e := range tl.entries {
		e.glow.Target = 0
		if e.index == current {
			e.glow.Target = 1
		}
		e.glow.Update(dt)
	}
}

// Layout renders the buttons in a row.
func (tl *Tracklist) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	for i := range tl.entries {
		e := &tl.entries[i]
		for e.btn.Clicked(gtx) {
			if err := tl.coord.SelectTrack(e.index); err != nil {
				log.Debug().Err(err).Int("track", e.index).Msg("select ignored")
			}
		}
	}

	children := make([]layout.FlexChild, 0, 2*len(tl.entries))
	for i := range tl.entries {
		e := &tl.entries[i]
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return tl.layoutEntry(gtx, th, e)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
		)
	}
	return layout.Inset{Left: unit.Dp(10), Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
	})
}

func (tl *Tracklist) layoutEntry(gtx layout.Context, th *material.Theme, e *trackEntry) layout.Dimensions {
	idle := buttonColor(&e.btn, false)
	bg := draw.Lerp(idle, draw.ColorFill, e.glow.Pos)
	return e.btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				draw.FillRect(gtx.Ops, image.Rectangle{Max: gtx.Constraints.Min}, bg)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Label(th, 12, e.track.Title)
					lbl.Color = draw.ColorText
					return lbl.Layout(gtx)
				})
			},
		)
	})
}
