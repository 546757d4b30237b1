// Package draw renders animated elements with Gio.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/elektrokombinacija/swipedeck/internal/core"
)

var (
	ColorText  = color.NRGBA{R: 230, G: 230, B: 235, A: 255}
	ColorMuted = color.NRGBA{R: 150, G: 155, B: 165, A: 255}
	ColorPanel = color.NRGBA{R: 40, G: 43, B: 48, A: 255}
	ColorTrack = color.NRGBA{R: 60, G: 65, B: 70, A: 255}
	ColorFill  = color.NRGBA{R: 100, G: 180, B: 255, A: 255}
)

// Affine maps element-local screen points through t, placed at anchor.
// Local space is y-up, so positive y offsets move up the screen. Rotations
// about x or y foreshorten the element like a card turning in depth.
func Affine(t core.Transform, anchor f32.Point) f32.Affine2D {
	ex := t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
	ey := t.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
	sx, sy := t.Scale.X(), t.Scale.Y()
	return f32.NewAffine2D(
		float32(sx*ex.X()), float32(-sy*ey.X()), anchor.X+float32(t.Position.X()),
		float32(-sx*ex.Y()), float32(sy*ey.Y()), anchor.Y-float32(t.Position.Y()),
	)
}

// Push applies t at anchor, including its opacity. Pop the returned func
// when done drawing.
func Push(ops *op.Ops, t core.Transform, anchor f32.Point) func() {
	tr := op.Affine(Affine(t, anchor)).Push(ops)
	alpha := t.Alpha
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	opacity := paint.PushOpacity(ops, float32(alpha))
	return func() {
		opacity.Pop()
		tr.Pop()
	}
}

// CenteredLabel draws text centered on the origin.
func CenteredLabel(gtx layout.Context, th *material.Theme, size float64, txt string, col color.NRGBA) {
	lbl := material.Label(th, unit.Sp(float32(size)), txt)
	lbl.Color = col
	gtx.Constraints.Min = image.Point{}

	macro := op.Record(gtx.Ops)
	dims := lbl.Layout(gtx)
	call := macro.Stop()

	defer op.Offset(image.Pt(-dims.Size.X/2, -dims.Size.Y/2)).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

// FillRect fills r.
func FillRect(ops *op.Ops, r image.Rectangle, col color.NRGBA) {
	paint.FillShape(ops, col, clip.Rect(r).Op())
}

// Lerp blends two colors; t is clamped to [0,1].
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
