package draw

import (
	"image"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/swipedeck/internal/cover"
)

// Artwork draws cover slots, uploading each image once.
type Artwork struct {
	cache map[image.Image]paint.ImageOp
}

func NewArtwork() *Artwork {
	return &Artwork{cache: make(map[image.Image]paint.ImageOp)}
}

// DrawSlot draws s as a size x size square centered on the origin. Slots
// without an image show their tint.
func (a *Artwork) DrawSlot(ops *op.Ops, s cover.Slot, size int) {
	if s.Alpha <= 0 {
		return
	}
	defer op.Offset(image.Pt(-size/2, -size/2)).Push(ops).Pop()
	defer paint.PushOpacity(ops, float32(min(s.Alpha, 1))).Pop()

	r := image.Rect(0, 0, size, size)
	if s.Image == nil {
		FillRect(ops, r, s.Tint)
		return
	}
	imgOp, ok := a.cache[s.Image]
	if !ok {
		imgOp = paint.NewImageOp(s.Image)
		a.cache[s.Image] = imgOp
	}
	b := s.Image.Bounds()
	if b.Dx() > 0 && b.Dx() != size {
		k := float32(size) / float32(b.Dx())
		defer op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(k, k))).Push(ops).Pop()
	}
	defer clip.Rect(image.Rect(0, 0, b.Dx(), b.Dy())).Push(ops).Pop()
	imgOp.Add(ops)
	paint.PaintOp{}.Add(ops)
}
