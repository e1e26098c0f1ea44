package headless

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"

	"tripagent-icongen/internal/icon"
)

const previewColumns = 28

// renderPreview downscales the full-size render and paints it with upper
// half blocks, packing two pixel rows into every terminal row. Colors come
// out as hex so truecolor terminals show the real palette.
func renderPreview(columns int) string {
	if columns < 2 {
		columns = 2
	}
	if columns%2 != 0 {
		columns--
	}

	src := icon.Render(icon.Targets[0].Size)
	small := image.NewRGBA(image.Rect(0, 0, columns, columns))
	xdraw.NearestNeighbor.Scale(small, small.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	var b strings.Builder
	for y := 0; y < columns; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < columns; x++ {
			upper, _ := colorful.MakeColor(small.RGBAAt(x, y))
			lower, _ := colorful.MakeColor(small.RGBAAt(x, y+1))
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(upper.Hex())).
				Background(lipgloss.Color(lower.Hex()))
			b.WriteString(cell.Render("▀"))
		}
	}
	return b.String()
}
