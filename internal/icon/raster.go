package icon

import (
	"image"
	"image/color"
	"math"

	"tripagent-icongen/internal/pine"
)

// Hard-edged fills, no anti-aliasing. A pixel is covered when its center
// falls inside the shape; spans are half-open so adjacent shapes never
// double-cover or gap.

// span converts a [lo, hi) coordinate interval to the pixel range whose
// centers it contains, clamped to [0, limit).
func span(lo, hi float64, limit int) (int, int) {
	first := int(math.Ceil(lo - 0.5))
	last := int(math.Ceil(hi - 0.5))
	return max(first, 0), min(last, limit)
}

func fillRect(img *image.RGBA, r pine.Rect, c color.RGBA) {
	size := img.Bounds().Dx()
	x0, x1 := span(r.Left, r.Right, size)
	y0, y1 := span(r.Top, r.Bottom, size)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func fillTriangle(img *image.RGBA, tri pine.Triangle, c color.RGBA) {
	height := tri.Height()
	if height <= 0 {
		return
	}
	size := img.Bounds().Dx()
	halfWidth := tri.Width() / 2

	y0, y1 := span(tri.Apex.Y, tri.BaseLeft.Y, size)
	for y := y0; y < y1; y++ {
		center := float64(y) + 0.5
		reach := (center - tri.Apex.Y) / height * halfWidth
		x0, x1 := span(tri.Apex.X-reach, tri.Apex.X+reach, size)
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
