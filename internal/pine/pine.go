package pine

// All proportions are fractions of the square canvas side, except the foliage
// layer dimensions, which scale against the tree extent (0.6 of the canvas).
// The overlap factor and the layer table are deliberate aesthetic constants;
// keep them exactly as they are.
const (
	TrunkWidthFrac  = 0.15
	TrunkHeightFrac = 0.25
	TrunkDropFrac   = 0.15
	CrownRiseFrac   = 0.3
	ExtentFrac      = 0.6
	LayerOverlap    = 0.6
)

// Widest layer first: (width, height) fractions of the tree extent. Layers
// stack downward from the crown, each apex below the previous one.
var layerShapes = [3][2]float64{
	{0.5, 0.4},
	{0.4, 0.35},
	{0.3, 0.3},
}

type Point struct {
	X float64
	Y float64
}

type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (r Rect) Width() float64 {
	return r.Right - r.Left
}

func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Triangle is an isosceles foliage layer, apex up. BaseLeft and BaseRight
// share the same Y.
type Triangle struct {
	Apex      Point
	BaseLeft  Point
	BaseRight Point
}

func (t Triangle) Width() float64 {
	return t.BaseRight.X - t.BaseLeft.X
}

func (t Triangle) Height() float64 {
	return t.BaseLeft.Y - t.Apex.Y
}

// Tree is the complete silhouette for one canvas size, in float64 canvas
// coordinates with the origin at the top-left corner.
type Tree struct {
	Size    int
	CenterX float64
	CenterY float64
	Trunk   Rect
	Layers  [3]Triangle
}

// Layout computes the tree silhouette for a square canvas of the given side
// length. It is a pure function: the same size always yields the same
// geometry. size must be positive.
func Layout(size int) Tree {
	s := float64(size)
	cx := s / 2
	cy := s / 2

	tree := Tree{
		Size:    size,
		CenterX: cx,
		CenterY: cy,
		Trunk: Rect{
			Left:   cx - TrunkWidthFrac/2*s,
			Top:    cy + TrunkDropFrac*s,
			Right:  cx + TrunkWidthFrac/2*s,
			Bottom: cy + (TrunkDropFrac+TrunkHeightFrac)*s,
		},
	}

	extent := ExtentFrac * s
	y := cy - CrownRiseFrac*s
	for i, shape := range layerShapes {
		width := shape[0] * extent
		height := shape[1] * extent
		tree.Layers[i] = Triangle{
			Apex:      Point{X: cx, Y: y},
			BaseLeft:  Point{X: cx - width/2, Y: y + height},
			BaseRight: Point{X: cx + width/2, Y: y + height},
		}
		y += height * LayerOverlap
	}
	return tree
}
