package icon

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"tripagent-icongen/internal/pine"
)

// TripAgent brand colors. The icons are two-tone: white silhouette on the
// dark green base.
var (
	Background = color.RGBA{R: 0x16, G: 0x65, B: 0x34, A: 0xFF}
	Foreground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

type Target struct {
	Name string
	Size int
}

func (t Target) Dimensions() string {
	return fmt.Sprintf("%dx%d", t.Size, t.Size)
}

// Targets is the fixed output set, in generation order.
var Targets = []Target{
	{Name: "icon.png", Size: 1024},
	{Name: "adaptive-icon.png", Size: 432},
	{Name: "splash-icon.png", Size: 200},
	{Name: "favicon.png", Size: 48},
}

func TargetByName(name string) (Target, bool) {
	for _, t := range Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// Render rasterizes the pine tree silhouette onto a fully opaque size×size
// canvas. Pixel-identical output for identical size.
func Render(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	tree := pine.Layout(size)
	fillRect(img, tree.Trunk, Foreground)
	for _, layer := range tree.Layers {
		fillTriangle(img, layer, Foreground)
	}
	return img
}
