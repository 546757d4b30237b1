package widgets

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/swipedeck/internal/player"
	"github.com/elektrokombinacija/swipedeck/internal/vis/draw"
)

// Timeline is the seek bar of the player view. While held it moves freely
// and only seeks on release.
type Timeline struct {
	view *player.View
}

// NewTimeline creates a seek bar bound to view.
func NewTimeline(view *player.View) *Timeline {
	return &Timeline{view: view}
}

// Layout renders the timeline.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Dp(unit.Dp(60))
	width := gtx.Constraints.Max.X

	draw.FillRect(gtx.Ops, image.Rect(0, 0, width, height), draw.ColorPanel)

	margin := gtx.Dp(unit.Dp(20))
	trackWidth := width - 2*margin
	t.handlePointerEvents(gtx, height, margin, trackWidth)

	trackY := height / 2
	trackHeight := 6
	draw.FillRect(gtx.Ops, image.Rect(margin, trackY-trackHeight/2, margin+trackWidth, trackY+trackHeight/2), draw.ColorTrack)

	fillWidth := int(float64(trackWidth) * t.view.Progress())
	if fillWidth > 0 {
		draw.FillRect(gtx.Ops, image.Rect(margin, trackY-trackHeight/2, margin+fillWidth, trackY+trackHeight/2), draw.ColorFill)
	}

	headX := margin + fillWidth
	headSize := 12
	if t.view.Dragging() {
		headSize = 16
	}
	draw.FillRect(gtx.Ops, image.Rect(headX-headSize/2, trackY-headSize/2, headX+headSize/2, trackY+headSize/2), draw.ColorText)

	t.drawTimeLabels(gtx, th)
	return layout.Dimensions{Size: image.Point{X: width, Y: height}}
}

func (t *Timeline) drawTimeLabels(gtx layout.Context, th *material.Theme) {
	current := material.Label(th, 12, t.view.CurrentTime)
	current.Color = draw.ColorText
	total := material.Label(th, 12, t.view.TotalTime)
	total.Color = draw.ColorMuted

	layout.Inset{Top: unit.Dp(4), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(current.Layout),
			layout.Rigid(total.Layout),
		)
	})
}

func (t *Timeline) handlePointerEvents(gtx layout.Context, height, margin, trackWidth int) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		v := seekValue(pe.Position.X, margin, trackWidth)
		switch pe.Kind {
		case pointer.Press:
			t.view.BeginDrag()
			t.view.Drag(v)
		case pointer.Drag:
			t.view.Drag(v)
		case pointer.Release:
			if t.view.Dragging() {
				t.view.EndDrag(v)
			}
		case pointer.Cancel:
			if t.view.Dragging() {
				t.view.EndDrag(t.view.Progress())
			}
		}
	}
}

// seekValue maps a screen x onto the track as a value in [0,1].
func seekValue(screenX float32, margin, trackWidth int) float64 {
	if trackWidth <= 0 {
		return 0
	}
	v := (float64(screenX) - float64(margin)) / float64(trackWidth)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
