package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/swipedeck/internal/player"
	"github.com/elektrokombinacija/swipedeck/internal/vis/draw"
	"github.com/elektrokombinacija/swipedeck/internal/vis/state"
)

// Toolbar provides transport, paging and clock controls.
type Toolbar struct {
	state *state.State

	prevTrackBtn widget.Clickable
	playBtn      widget.Clickable
	nextTrackBtn widget.Clickable

	prevSectionBtn widget.Clickable
	nextSectionBtn widget.Clickable

	speedUpBtn   widget.Clickable
	speedDownBtn widget.Clickable
	freezeBtn    widget.Clickable

	// 0 draws the play triangle, 1 the pause bars
	morph *Spring
}

// NewToolbar creates a new toolbar.
func NewToolbar(st *state.State) *Toolbar {
	return &Toolbar{
		state: st,
		morph: NewSpring(cueTarget(st.Deck.Player.Cue()), 14, 0.6),
	}
}

func cueTarget(c player.Cue) float64 {
	if c == player.CuePlaying {
		return 1
	}
	return 0
}

// Update steps the icon morph toward the player cue.
func (t *Toolbar) Update(dt float64) {
	t.morph.Target = cueTarget(t.state.Deck.Player.Cue())
	t.morph.Update(dt)
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Dp(unit.Dp(48))
	draw.FillRect(gtx.Ops, image.Rect(0, 0, gtx.Constraints.Max.X, height), draw.ColorPanel)

	t.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutTransport(gtx, th)
			}),
			layout.Rigid(t.layoutSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutPaging(gtx, th)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutClock(gtx, th)
			}),
		)
	})
}

func (t *Toolbar) layoutTransport(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.prevTrackBtn, "|<", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.playButton(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.nextTrackBtn, ">|", false)
		}),
	)
}

func (t *Toolbar) layoutPaging(gtx layout.Context, th *material.Theme) layout.Dimensions {
	nav := t.state.Deck.Navigator
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.prevSectionBtn, "<", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Label(th, 12, fmt.Sprintf("%d / %d", nav.Current()+1, nav.Count()))
			lbl.Color = draw.ColorMuted
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.nextSectionBtn, ">", false)
		}),
	)
}

func (t *Toolbar) layoutClock(gtx layout.Context, th *material.Theme) layout.Dimensions {
	clock := t.state.Clock
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.speedDownBtn, "-", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Label(th, 12, fmt.Sprintf("%.1fx", clock.Speed))
			lbl.Color = draw.ColorMuted
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.speedUpBtn, "+", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.freezeBtn, "F", clock.Frozen)
		}),
	)
}

func (t *Toolbar) layoutSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		draw.FillRect(gtx.Ops, image.Rect(0, 0, 1, 24), draw.ColorTrack)
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func buttonColor(btn *widget.Clickable, active bool) color.NRGBA {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if active {
		bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	}
	if btn.Hovered() {
		bg.R = lighten(bg.R)
		bg.G = lighten(bg.G)
		bg.B = lighten(bg.B)
	}
	return bg
}

func (t *Toolbar) textButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Dimensions {
	bg := buttonColor(btn, active)
	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: 32, Y: 28}
				draw.FillRect(gtx.Ops, image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y), bg)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 12, text)
					label.Color = draw.ColorText
					return label.Layout(gtx)
				})
			},
		)
	})
}

// playButton draws the morphing play/pause icon.
func (t *Toolbar) playButton(gtx layout.Context) layout.Dimensions {
	bg := buttonColor(&t.playBtn, false)
	return t.playBtn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		size := image.Point{X: 40, Y: 28}
		draw.FillRect(gtx.Ops, image.Rectangle{Max: size}, bg)
		center := f32.Pt(float32(size.X)/2, float32(size.Y)/2)
		for _, quad := range iconQuads(t.morph.Pos, 14) {
			var p clip.Path
			p.Begin(gtx.Ops)
			p.MoveTo(center.Add(quad[0]))
			for _, pt := range quad[1:] {
				p.LineTo(center.Add(pt))
			}
			p.Close()
			paint.FillShape(gtx.Ops, draw.ColorText, clip.Outline{Path: p.End()}.Op())
		}
		return layout.Dimensions{Size: size}
	})
}

// iconQuads returns the two halves of the transport icon. m=0 is the play
// triangle split down the middle, m=1 the two pause bars.
func iconQuads(m float64, s float32) [2][4]f32.Point {
	h := s / 2
	play := [2][4]f32.Point{
		{{X: -h, Y: -h}, {X: 0, Y: -h / 2}, {X: 0, Y: h / 2}, {X: -h, Y: h}},
		{{X: 0, Y: -h / 2}, {X: h, Y: 0}, {X: h, Y: 0}, {X: 0, Y: h / 2}},
	}
	pause := [2][4]f32.Point{
		{{X: -h, Y: -h}, {X: -h / 3, Y: -h}, {X: -h / 3, Y: h}, {X: -h, Y: h}},
		{{X: h / 3, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: h / 3, Y: h}},
	}
	k := float32(m)
	var out [2][4]f32.Point
	for i := range out {
		for j := range out[i] {
			a, b := play[i][j], pause[i][j]
			out[i][j] = f32.Pt(a.X+(b.X-a.X)*k, a.Y+(b.Y-a.Y)*k)
		}
	}
	return out
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	d := t.state.Deck
	for t.prevTrackBtn.Clicked(gtx) {
		d.Coordinator.Previous()
	}
	for t.playBtn.Clicked(gtx) {
		d.Coordinator.TogglePlayPause()
	}
	for t.nextTrackBtn.Clicked(gtx) {
		d.Coordinator.Next()
	}

	for t.prevSectionBtn.Clicked(gtx) {
		d.Navigator.PreviousSection()
	}
	for t.nextSectionBtn.Clicked(gtx) {
		d.Navigator.NextSection()
	}

	for t.speedUpBtn.Clicked(gtx) {
		t.state.Clock.SetSpeed(t.state.Clock.Speed * 1.5)
	}
	for t.speedDownBtn.Clicked(gtx) {
		t.state.Clock.SetSpeed(t.state.Clock.Speed / 1.5)
	}
	for t.freezeBtn.Clicked(gtx) {
		t.state.Clock.ToggleFreeze()
	}
}

func lighten(c uint8) uint8 {
	if c > 240 {
		return 255
	}
	return c + 15
}
