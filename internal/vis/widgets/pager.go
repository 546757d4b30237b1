// Package widgets provides Gio UI widgets for the deck window.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/swipedeck/internal/config"
	"github.com/elektrokombinacija/swipedeck/internal/deck"
	"github.com/elektrokombinacija/swipedeck/internal/vis/draw"
	"github.com/elektrokombinacija/swipedeck/internal/vis/state"
)

// Pager is the swipeable section area.
type Pager struct {
	state   *state.State
	artwork *draw.Artwork
}

// NewPager creates the section area.
func NewPager(st *state.State) *Pager {
	return &Pager{state: st, artwork: draw.NewArtwork()}
}

// Layout renders every section that overlaps the viewport.
func (p *Pager) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	p.state.Resize(float64(bounds.X))
	p.handlePointerEvents(gtx)

	d := p.state.Deck
	for i, s := range d.Sections {
		sec := d.Navigator.Section(i)
		x := p.state.SectionX(i)
		w := sec.LaidOutWidth()
		if x+w < 0 || x > float64(bounds.X) {
			continue
		}
		p.layoutSection(gtx, th, s, float32(x), float32(w), float32(bounds.Y))
	}
	return layout.Dimensions{Size: bounds}
}

func (p *Pager) layoutSection(gtx layout.Context, th *material.Theme, s *deck.Section, x, w, h float32) {
	// section scale pivots on its center
	center := f32.Pt(x+w/2, h/2)
	pop := draw.Push(gtx.Ops, s.Node.Current(), center)
	defer pop()

	for _, e := range s.Elements {
		anchor := f32.Pt(float32(e.X-0.5)*w, float32(e.Y-0.5)*h)
		p.layoutElement(gtx, th, e, anchor)
	}
}

func (p *Pager) layoutElement(gtx layout.Context, th *material.Theme, e *deck.Element, anchor f32.Point) {
	pop := draw.Push(gtx.Ops, e.Node.Current(), anchor)
	defer pop()

	d := p.state.Deck
	if e.Bind == config.BindCover {
		size := int(e.Size)
		if size <= 0 {
			size = d.Config.Cover.Size
		}
		// ambient motion rides on top of the intro transform
		motion := draw.Push(gtx.Ops, d.CoverNode.Current(), f32.Point{})
		defer motion()
		p.artwork.DrawSlot(gtx.Ops, d.Cover.Back(), size)
		p.artwork.DrawSlot(gtx.Ops, d.Cover.Front(), size)
		return
	}

	size := e.Size
	if size <= 0 {
		size = 16
	}
	draw.CenteredLabel(gtx, th, size, e.Display(d.Player), draw.ColorText)
}

func (p *Pager) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, p)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: p,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			p.state.Scroll.HandleEvent(pe)
		}
	}
}

// Splash draws the title card over everything while it is visible.
type Splash struct {
	splash *deck.Splash
}

func NewSplash(s *deck.Splash) *Splash {
	return &Splash{splash: s}
}

func (s *Splash) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	if !s.splash.Visible() {
		return layout.Dimensions{}
	}
	size := gtx.Constraints.Max
	t := s.splash.Node.Current()
	center := f32.Pt(float32(size.X)/2, float32(size.Y)/2)

	func() {
		defer paint.PushOpacity(gtx.Ops, float32(min(max(t.Alpha, 0), 1))).Pop()
		paint.Fill(gtx.Ops, color.NRGBA{R: 18, G: 20, B: 24, A: 255})
	}()

	pop := draw.Push(gtx.Ops, t, center)
	defer pop()
	draw.CenteredLabel(gtx, th, 48, s.splash.Title, draw.ColorText)
	return layout.Dimensions{Size: size}
}
