package fittingService

import (
	"image"
	"math"

	"VirtualFitting/internal/api/fitting"
)

const (
	// neckline is where the top of the dress sits, as a fraction of the photo height.
	neckline = 0.3
	// maxOverlayScale bounds the dress size relative to the photo in each dimension.
	maxOverlayScale = 2
)

// computePlacement returns the rectangle the dress occupies on a base of the
// given size. Without measurements the dress covers the whole frame.
func computePlacement(base image.Point, m *fitting.FitMeasurements) (image.Rectangle, error) {
	if m == nil {
		return image.Rect(0, 0, base.X, base.Y), nil
	}

	if m.ShoulderWidth > maxOverlayScale || m.Height > maxOverlayScale {
		return image.Rectangle{}, fitting.ErrInvalidMeasurements
	}

	w := int(m.ShoulderWidth * float64(base.X))
	h := int(m.Height * float64(base.Y))
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fitting.ErrInvalidMeasurements
	}

	x := (base.X - w) / 2
	if base.X < w && (base.X-w)%2 != 0 {
		x--
	}
	y := int(neckline * float64(base.Y))

	return image.Rect(x, y, x+w, y+h), nil
}

// visibleSource returns the part of src that lands inside visible once src is
// stretched over placement.
func visibleSource(src, placement, visible image.Rectangle) image.Rectangle {
	sx := float64(src.Dx()) / float64(placement.Dx())
	sy := float64(src.Dy()) / float64(placement.Dy())

	r := image.Rect(
		src.Min.X+int(math.Floor(float64(visible.Min.X-placement.Min.X)*sx)),
		src.Min.Y+int(math.Floor(float64(visible.Min.Y-placement.Min.Y)*sy)),
		src.Min.X+int(math.Ceil(float64(visible.Max.X-placement.Min.X)*sx)),
		src.Min.Y+int(math.Ceil(float64(visible.Max.Y-placement.Min.Y)*sy)),
	)
	return r.Intersect(src)
}
