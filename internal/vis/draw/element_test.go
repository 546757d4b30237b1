package draw

import (
	"image/color"
	"math"
	"testing"

	"gioui.org/f32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/elektrokombinacija/swipedeck/internal/core"
)

func assertPt(t *testing.T, want, got f32.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-3)
	assert.InDelta(t, want.Y, got.Y, 1e-3)
}

func TestAffineIdentity(t *testing.T) {
	a := Affine(core.Identity(), f32.Pt(100, 50))
	assertPt(t, f32.Pt(110, 45), a.Transform(f32.Pt(10, -5)))
}

func TestAffinePositionIsYUp(t *testing.T) {
	tr := core.Identity()
	tr.Position = mgl64.Vec3{20, 30, 0}
	a := Affine(tr, f32.Pt(100, 100))
	assertPt(t, f32.Pt(120, 70), a.Transform(f32.Pt(0, 0)))
}

func TestAffineScale(t *testing.T) {
	tr := core.Identity()
	tr.Scale = mgl64.Vec3{2, 0.5, 1}
	a := Affine(tr, f32.Pt(0, 0))
	assertPt(t, f32.Pt(20, 5), a.Transform(f32.Pt(10, 10)))
}

func TestAffineRotateZ(t *testing.T) {
	tr := core.Identity()
	tr.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	a := Affine(tr, f32.Pt(0, 0))
	// counter-clockwise in y-up space turns screen-right into screen-up
	assertPt(t, f32.Pt(0, -10), a.Transform(f32.Pt(10, 0)))
}

func TestAffineFlipForeshortens(t *testing.T) {
	tr := core.Identity()
	tr.Rotation = mgl64.QuatRotate(math.Pi/3, mgl64.Vec3{0, 1, 0})
	a := Affine(tr, f32.Pt(0, 0))
	assertPt(t, f32.Pt(5, 0), a.Transform(f32.Pt(10, 0)))
	assertPt(t, f32.Pt(0, 10), a.Transform(f32.Pt(0, 10)))
}

func TestLerpColor(t *testing.T) {
	a := color.NRGBA{R: 0, G: 100, B: 200, A: 255}
	b := color.NRGBA{R: 100, G: 100, B: 0, A: 255}
	assert.Equal(t, color.NRGBA{R: 50, G: 100, B: 100, A: 255}, Lerp(a, b, 0.5))
	assert.Equal(t, a, Lerp(a, b, 0))
}
