package cover

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// LoadArtwork decodes a PNG or JPEG and fits it into a size x size square.
func LoadArtwork(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load artwork: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode artwork %s: %w", path, err)
	}
	return Fit(src, size), nil
}

// Fit scales src to cover a size x size square, cropping the longer side
// around the center.
func Fit(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	b := src.Bounds()
	if b.Empty() || size <= 0 {
		return dst
	}
	crop := b
	if w, h := b.Dx(), b.Dy(); w > h {
		off := (w - h) / 2
		crop = image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+h, b.Max.Y)
	} else if h > w {
		off := (h - w) / 2
		crop = image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+w)
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}
