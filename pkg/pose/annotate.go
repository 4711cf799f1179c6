package pose

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"VirtualFitting/internal/entity"
	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"
)

const visibilityThreshold = 0.5

var (
	connectionColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	landmarkColor   = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
)

// Annotate returns a copy of img with the skeleton connections and landmark
// points drawn on top. Landmarks reported with a low visibility are skipped.
func Annotate(img image.Image, landmarks entity.Landmarks) *image.NRGBA {
	dst := imaging.Clone(img)
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return dst
	}

	scale := float32(math.Max(float64(min(w, h))/200, 1))

	lines := vector.NewRasterizer(w, h)
	lines.DrawOp = draw.Over
	for _, c := range Connections {
		p1, ok1 := visible(landmarks, c[0])
		p2, ok2 := visible(landmarks, c[1])
		if !ok1 || !ok2 {
			continue
		}
		segment(lines, toPixel(p1, w, h), toPixel(p2, w, h), scale)
	}
	lines.Draw(dst, dst.Bounds(), image.NewUniform(connectionColor), image.Point{})

	points := vector.NewRasterizer(w, h)
	points.DrawOp = draw.Over
	for _, name := range Names {
		p, ok := visible(landmarks, name)
		if !ok {
			continue
		}
		circle(points, toPixel(p, w, h), 2*scale)
	}
	points.Draw(dst, dst.Bounds(), image.NewUniform(landmarkColor), image.Point{})

	return dst
}

func visible(landmarks entity.Landmarks, name string) (entity.Landmark, bool) {
	lm, ok := landmarks[name]
	if !ok {
		return lm, false
	}
	if lm.Visibility > 0 && lm.Visibility < visibilityThreshold {
		return lm, false
	}
	return lm, true
}

type point struct{ x, y float32 }

func toPixel(lm entity.Landmark, w, h int) point {
	x := math.Min(math.Max(lm.X, 0), 1) * float64(w)
	y := math.Min(math.Max(lm.Y, 0), 1) * float64(h)
	return point{x: float32(x), y: float32(y)}
}

func segment(z *vector.Rasterizer, a, b point, thickness float32) {
	dx, dy := b.x-a.x, b.y-a.y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*thickness/2, dx/length*thickness/2

	z.MoveTo(a.x+nx, a.y+ny)
	z.LineTo(b.x+nx, b.y+ny)
	z.LineTo(b.x-nx, b.y-ny)
	z.LineTo(a.x-nx, a.y-ny)
	z.ClosePath()
}

func circle(z *vector.Rasterizer, c point, r float32) {
	const steps = 16
	z.MoveTo(c.x+r, c.y)
	for i := 1; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / steps
		z.LineTo(c.x+r*float32(math.Cos(theta)), c.y+r*float32(math.Sin(theta)))
	}
	z.ClosePath()
}
