package pine

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

var iconSizes = []int{1024, 432, 200, 48}

func TestLayoutIsDeterministic(t *testing.T) {
	for _, size := range iconSizes {
		a := Layout(size)
		b := Layout(size)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("Layout(%d) not deterministic:\n%#v\n%#v", size, a, b)
		}
	}
}

func TestLayoutTrunkProportions(t *testing.T) {
	for _, size := range iconSizes {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			s := float64(size)
			tree := Layout(size)

			if got, want := tree.Trunk.Width(), TrunkWidthFrac*s; !closeTo(got, want) {
				t.Fatalf("trunk width = %v, want %v", got, want)
			}
			if got, want := tree.Trunk.Height(), TrunkHeightFrac*s; !closeTo(got, want) {
				t.Fatalf("trunk height = %v, want %v", got, want)
			}
			if got, want := tree.Trunk.Top, tree.CenterY+TrunkDropFrac*s; got != want {
				t.Fatalf("trunk top = %v, want %v", got, want)
			}
			if mid := (tree.Trunk.Left + tree.Trunk.Right) / 2; !closeTo(mid, tree.CenterX) {
				t.Fatalf("trunk not centered: midpoint %v, center %v", mid, tree.CenterX)
			}
		})
	}
}

func TestLayoutTrunkStrictlyInsideCanvas(t *testing.T) {
	for _, size := range iconSizes {
		s := float64(size)
		trunk := Layout(size).Trunk
		if trunk.Left <= 0 || trunk.Top <= 0 || trunk.Right >= s || trunk.Bottom >= s {
			t.Fatalf("size %d: trunk %+v not strictly inside canvas", size, trunk)
		}
	}
}

func TestLayoutFirstApexAndStacking(t *testing.T) {
	for _, size := range iconSizes {
		s := float64(size)
		tree := Layout(size)

		if got, want := tree.Layers[0].Apex.Y, tree.CenterY-CrownRiseFrac*s; got != want {
			t.Fatalf("size %d: first apex y = %v, want %v", size, got, want)
		}
		for i := 1; i < len(tree.Layers); i++ {
			prev := tree.Layers[i-1].Apex.Y
			cur := tree.Layers[i].Apex.Y
			if cur <= prev {
				t.Fatalf("size %d: layer %d apex y %v not below layer %d apex y %v", size, i, cur, i-1, prev)
			}
		}
	}
}

func TestLayoutLayerShapes(t *testing.T) {
	tests := []struct {
		layer      int
		widthFrac  float64
		heightFrac float64
	}{
		{layer: 0, widthFrac: 0.5, heightFrac: 0.4},
		{layer: 1, widthFrac: 0.4, heightFrac: 0.35},
		{layer: 2, widthFrac: 0.3, heightFrac: 0.3},
	}

	for _, size := range iconSizes {
		extent := ExtentFrac * float64(size)
		tree := Layout(size)
		for _, tc := range tests {
			tri := tree.Layers[tc.layer]
			if got, want := tri.Width(), tc.widthFrac*extent; !closeTo(got, want) {
				t.Fatalf("size %d layer %d: width = %v, want %v", size, tc.layer, got, want)
			}
			if got, want := tri.Height(), tc.heightFrac*extent; !closeTo(got, want) {
				t.Fatalf("size %d layer %d: height = %v, want %v", size, tc.layer, got, want)
			}
			if tri.BaseLeft.Y != tri.BaseRight.Y {
				t.Fatalf("size %d layer %d: base not horizontal: %+v", size, tc.layer, tri)
			}
			if !closeTo(tri.Apex.X, float64(size)/2) {
				t.Fatalf("size %d layer %d: apex x = %v, want centered", size, tc.layer, tri.Apex.X)
			}
		}
		for i := 1; i < len(tree.Layers); i++ {
			if tree.Layers[i].Width() >= tree.Layers[i-1].Width() {
				t.Fatalf("size %d: layer widths should narrow upward: %v then %v", size, tree.Layers[i-1].Width(), tree.Layers[i].Width())
			}
		}
	}
}

func TestLayoutFoliageMeetsTrunk(t *testing.T) {
	// The bottom of the last (narrowest) layer lands exactly on the trunk
	// top; the silhouette has no gap between foliage and trunk.
	for _, size := range iconSizes {
		tree := Layout(size)
		last := tree.Layers[len(tree.Layers)-1]
		if !closeTo(last.BaseLeft.Y, tree.Trunk.Top) {
			t.Fatalf("size %d: foliage bottom %v does not meet trunk top %v", size, last.BaseLeft.Y, tree.Trunk.Top)
		}
	}
}

func TestLayoutEntirelyWithinCanvas(t *testing.T) {
	for _, size := range iconSizes {
		s := float64(size)
		tree := Layout(size)

		points := []Point{
			{tree.Trunk.Left, tree.Trunk.Top},
			{tree.Trunk.Right, tree.Trunk.Bottom},
		}
		for _, tri := range tree.Layers {
			points = append(points, tri.Apex, tri.BaseLeft, tri.BaseRight)
		}
		for _, p := range points {
			if p.X < 0 || p.X > s || p.Y < 0 || p.Y > s {
				t.Fatalf("size %d: point %+v outside canvas", size, p)
			}
		}
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9*(1+math.Abs(b))
}
