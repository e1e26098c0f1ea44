package icon

import (
	"image"
	"testing"

	"tripagent-icongen/internal/pine"
)

func TestSpanCoversPixelCenters(t *testing.T) {
	tests := []struct {
		name      string
		lo, hi    float64
		limit     int
		wantFirst int
		wantLast  int
	}{
		{name: "interior", lo: 0.4, hi: 2.6, limit: 10, wantFirst: 0, wantLast: 3},
		{name: "exact_center_bounds", lo: 1.5, hi: 3.5, limit: 10, wantFirst: 1, wantLast: 3},
		{name: "clamped_left", lo: -4, hi: 0.6, limit: 10, wantFirst: 0, wantLast: 1},
		{name: "clamped_right", lo: 9.2, hi: 12, limit: 10, wantFirst: 9, wantLast: 10},
		{name: "empty", lo: 2.1, hi: 2.3, limit: 10, wantFirst: 2, wantLast: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			first, last := span(tc.lo, tc.hi, tc.limit)
			if first != tc.wantFirst || last != tc.wantLast {
				t.Fatalf("span(%v, %v, %d) = (%d, %d), want (%d, %d)",
					tc.lo, tc.hi, tc.limit, first, last, tc.wantFirst, tc.wantLast)
			}
		})
	}
}

func TestFillRectCoversExpectedPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fillRect(img, pine.Rect{Left: 2, Top: 2, Right: 5, Bottom: 4}, Foreground)

	count := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if img.RGBAAt(x, y) != Foreground {
				continue
			}
			count++
			if x < 2 || x > 4 || y < 2 || y > 3 {
				t.Fatalf("unexpected filled pixel (%d,%d)", x, y)
			}
		}
	}
	if count != 6 {
		t.Fatalf("filled pixel count = %d, want 6", count)
	}
}

func TestFillTriangleWidensTowardBase(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 12))
	tri := pine.Triangle{
		Apex:      pine.Point{X: 6, Y: 1},
		BaseLeft:  pine.Point{X: 2, Y: 11},
		BaseRight: pine.Point{X: 10, Y: 11},
	}
	fillTriangle(img, tri, Foreground)

	rowWidth := func(y int) int {
		n := 0
		for x := 0; x < 12; x++ {
			if img.RGBAAt(x, y) == Foreground {
				n++
			}
		}
		return n
	}

	if rowWidth(0) != 0 {
		t.Fatalf("row above apex filled")
	}
	prev := -1
	for y := 2; y < 11; y++ {
		w := rowWidth(y)
		if w < prev {
			t.Fatalf("row %d width %d narrower than previous %d", y, w, prev)
		}
		prev = w
	}
	if prev < 6 {
		t.Fatalf("base row width = %d, want near full base span", prev)
	}
	for y := 2; y < 11; y++ {
		for x := 0; x < 12; x++ {
			if img.RGBAAt(x, y) == Foreground {
				left := 6 - (float64(x) + 0.5)
				right := (float64(x) + 0.5) - 6
				reach := (float64(y) + 0.5 - 1) / 10 * 4
				if left > reach || right > reach {
					t.Fatalf("pixel (%d,%d) outside triangle edge", x, y)
				}
			}
		}
	}
}

func TestFillTriangleDegenerateHeight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tri := pine.Triangle{
		Apex:      pine.Point{X: 2, Y: 2},
		BaseLeft:  pine.Point{X: 1, Y: 2},
		BaseRight: pine.Point{X: 3, Y: 2},
	}
	fillTriangle(img, tri, Foreground)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if img.RGBAAt(x, y) == Foreground {
				t.Fatalf("degenerate triangle filled pixel (%d,%d)", x, y)
			}
		}
	}
}
