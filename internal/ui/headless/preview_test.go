package headless

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderPreviewGrid(t *testing.T) {
	preview := renderPreview(28)

	lines := strings.Split(preview, "\n")
	if len(lines) != 14 {
		t.Fatalf("expected 14 rows for 28 columns, got %d", len(lines))
	}
	for i, line := range lines {
		if width := ansi.StringWidth(line); width != 28 {
			t.Fatalf("row %d is %d cells wide, want 28", i, width)
		}
	}
}

func TestRenderPreviewClampsOddAndTinyWidths(t *testing.T) {
	odd := renderPreview(29)
	if got := len(strings.Split(odd, "\n")); got != 14 {
		t.Fatalf("29 columns should round down to 28, got %d rows", got)
	}

	tiny := renderPreview(1)
	if got := len(strings.Split(tiny, "\n")); got != 1 {
		t.Fatalf("tiny preview should still produce one row, got %d", got)
	}
}
