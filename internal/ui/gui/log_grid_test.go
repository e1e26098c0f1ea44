//go:build !headless

package gui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/widget"
)

func rowText(row widget.TextGridRow) string {
	runes := make([]rune, 0, len(row.Cells))
	for _, cell := range row.Cells {
		runes = append(runes, cell.Rune)
	}
	return string(runes)
}

func TestAnsiLineToRowKeepsTextAndDropsSequences(t *testing.T) {
	row := ansiLineToRow("\x1b[1m12:00:00\x1b[0m INF \x1b[38;5;114mwrote icon.png\x1b[0m")
	want := "12:00:00 INF wrote icon.png"
	if got := rowText(row); got != want {
		t.Fatalf("row text = %q, want %q", got, want)
	}
}

func TestAnsiLineToRowAppliesTruecolor(t *testing.T) {
	row := ansiLineToRow("\x1b[38;2;34;197;94mX\x1b[0m plain")
	if len(row.Cells) == 0 {
		t.Fatal("no cells parsed")
	}
	style := row.Cells[0].Style
	if style == nil {
		t.Fatal("styled cell has nil style")
	}
	fg := style.TextColor()
	if fg != (color.NRGBA{R: 34, G: 197, B: 94, A: 0xFF}) {
		t.Fatalf("foreground = %#v", fg)
	}
	last := row.Cells[len(row.Cells)-1]
	if last.Style != nil {
		t.Fatalf("text after reset still styled: %#v", last.Style)
	}
}

func TestAnsiLineToRowBoldSurvivesColorChange(t *testing.T) {
	row := ansiLineToRow("\x1b[1;31mab\x1b[39mc")
	if len(row.Cells) != 3 {
		t.Fatalf("cell count = %d, want 3", len(row.Cells))
	}
	for i, cell := range row.Cells {
		custom, ok := cell.Style.(*widget.CustomTextGridStyle)
		if !ok {
			t.Fatalf("cell %d style is %T", i, cell.Style)
		}
		if !custom.TextStyle.Bold {
			t.Fatalf("cell %d lost bold", i)
		}
	}
	if row.Cells[2].Style.(*widget.CustomTextGridStyle).FGColor != nil {
		t.Fatal("cell after 39 kept a foreground color")
	}
}

func TestAnsi256ColorRanges(t *testing.T) {
	tests := []struct {
		index int
		want  color.NRGBA
		ok    bool
	}{
		{index: 1, want: ansi16Palette[1], ok: true},
		{index: 16, want: color.NRGBA{A: 0xFF}, ok: true},
		{index: 196, want: color.NRGBA{R: 255, A: 0xFF}, ok: true},
		{index: 232, want: color.NRGBA{R: 8, G: 8, B: 8, A: 0xFF}, ok: true},
		{index: 255, want: color.NRGBA{R: 238, G: 238, B: 238, A: 0xFF}, ok: true},
		{index: 256, ok: false},
		{index: -1, ok: false},
	}
	for _, tc := range tests {
		got, ok := ansi256Color(tc.index)
		if ok != tc.ok {
			t.Errorf("ansi256Color(%d) ok = %v, want %v", tc.index, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ansi256Color(%d) = %#v, want %#v", tc.index, got, tc.want)
		}
	}
}

func TestPlainTextOfStripsSequences(t *testing.T) {
	got := plainTextOf("\x1b[38;5;203mERR\x1b[0m generation \x1b[1mfailed\x1b[0m")
	want := "ERR generation failed"
	if got != want {
		t.Fatalf("plainTextOf = %q, want %q", got, want)
	}
}

func TestWrapRowSplitsAtColumnCount(t *testing.T) {
	row := ansiLineToRow("abcdefghij")
	wrapped := wrapRow(row, 4)
	if len(wrapped) != 3 {
		t.Fatalf("wrapped rows = %d, want 3", len(wrapped))
	}
	if got := rowText(wrapped[0]); got != "abcd" {
		t.Fatalf("first row = %q", got)
	}
	if got := rowText(wrapped[2]); got != "ij" {
		t.Fatalf("last row = %q", got)
	}
	if got := wrapRow(row, 0); len(got) != 1 {
		t.Fatalf("zero columns should not wrap, got %d rows", len(got))
	}
}
