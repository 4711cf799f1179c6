// Package compositor alpha-blends a garment image onto a user photo.
package compositor

import (
	"image"

	"github.com/disintegration/imaging"
)

// ToNRGBA returns img as a non-premultiplied RGBA image. Images without an
// alpha channel come back fully opaque.
func ToNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Bounds().Min == (image.Point{}) {
		return nrgba
	}
	return imaging.Clone(img)
}

// Overlay blends fg onto base with its top-left corner at (xOffset, yOffset)
// and returns base, which is modified in place. The blended region is clipped
// to the bounds of base; pixels outside it and the alpha channel of base are
// left untouched.
func Overlay(base *image.NRGBA, fg image.Image, xOffset, yOffset int) *image.NRGBA {
	src := ToNRGBA(fg)

	bw, bh := base.Rect.Dx(), base.Rect.Dy()
	fw, fh := src.Rect.Dx(), src.Rect.Dy()

	x1, y1 := xOffset, yOffset
	x2, y2 := min(xOffset+fw, bw), min(yOffset+fh, bh)
	x1, y1 = max(x1, 0), max(y1, 0)
	if x1 >= x2 || y1 >= y2 {
		return base
	}

	for y := y1; y < y2; y++ {
		bi := base.PixOffset(base.Rect.Min.X+x1, base.Rect.Min.Y+y)
		si := src.PixOffset(x1-xOffset, y-yOffset)
		for x := x1; x < x2; x++ {
			alpha := float64(src.Pix[si+3]) / 255
			for c := 0; c < 3; c++ {
				base.Pix[bi+c] = blend(src.Pix[si+c], base.Pix[bi+c], alpha)
			}
			bi += 4
			si += 4
		}
	}

	return base
}

func blend(fg, bg uint8, alpha float64) uint8 {
	v := alpha*float64(fg) + (1-alpha)*float64(bg) + 0.5
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
