//go:build !headless

package gui

import (
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// The log pane renders the same ANSI stream the terminal sees. The
// formatter emits a small SGR vocabulary: reset, bold, the 16 base
// colors, 256-color indexes, and truecolor, for foreground and
// background. Anything else is consumed and ignored.

var ansi16Palette = [16]color.NRGBA{
	{0x00, 0x00, 0x00, 0xFF},
	{0xCC, 0x33, 0x33, 0xFF},
	{0x33, 0xAA, 0x33, 0xFF},
	{0xCC, 0xAA, 0x33, 0xFF},
	{0x33, 0x66, 0xCC, 0xFF},
	{0xAA, 0x44, 0xAA, 0xFF},
	{0x33, 0xAA, 0xAA, 0xFF},
	{0xC8, 0xC8, 0xC8, 0xFF},
	{0x66, 0x66, 0x66, 0xFF},
	{0xFF, 0x55, 0x55, 0xFF},
	{0x55, 0xDD, 0x55, 0xFF},
	{0xFF, 0xDD, 0x55, 0xFF},
	{0x55, 0x88, 0xFF, 0xFF},
	{0xDD, 0x66, 0xDD, 0xFF},
	{0x55, 0xDD, 0xDD, 0xFF},
	{0xFF, 0xFF, 0xFF, 0xFF},
}

func ansi256Color(n int) (color.NRGBA, bool) {
	switch {
	case n >= 0 && n < 16:
		return ansi16Palette[n], true
	case n >= 16 && n < 232:
		n -= 16
		return color.NRGBA{
			R: cubeLevel(n / 36),
			G: cubeLevel((n / 6) % 6),
			B: cubeLevel(n % 6),
			A: 0xFF,
		}, true
	case n >= 232 && n < 256:
		v := uint8(8 + 10*(n-232))
		return color.NRGBA{R: v, G: v, B: v, A: 0xFF}, true
	}
	return color.NRGBA{}, false
}

func cubeLevel(i int) uint8 {
	if i <= 0 {
		return 0
	}
	return uint8(55 + 40*i)
}

// sgrState is the live attribute set while scanning one line.
type sgrState struct {
	bold  bool
	fg    color.NRGBA
	fgSet bool
	bg    color.NRGBA
	bgSet bool
}

func (s *sgrState) reset() { *s = sgrState{} }

// apply consumes the parameter list of one SGR sequence.
func (s *sgrState) apply(params []int) {
	if len(params) == 0 {
		s.reset()
		return
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			s.reset()
		case p == 1:
			s.bold = true
		case p == 22:
			s.bold = false
		case p >= 30 && p <= 37:
			s.fg, s.fgSet = ansi16Palette[p-30], true
		case p >= 90 && p <= 97:
			s.fg, s.fgSet = ansi16Palette[p-90+8], true
		case p == 39:
			s.fgSet = false
		case p >= 40 && p <= 47:
			s.bg, s.bgSet = ansi16Palette[p-40], true
		case p >= 100 && p <= 107:
			s.bg, s.bgSet = ansi16Palette[p-100+8], true
		case p == 49:
			s.bgSet = false
		case p == 38 || p == 48:
			c, n, ok := extendedColor(params[i+1:])
			i += n
			if !ok {
				continue
			}
			if p == 38 {
				s.fg, s.fgSet = c, true
			} else {
				s.bg, s.bgSet = c, true
			}
		}
	}
}

// extendedColor decodes the tail of a 38/48 sequence, returning the
// color, the number of parameters consumed, and whether it was valid.
func extendedColor(rest []int) (color.NRGBA, int, bool) {
	if len(rest) == 0 {
		return color.NRGBA{}, 0, false
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return color.NRGBA{}, len(rest), false
		}
		c, ok := ansi256Color(rest[1])
		return c, 2, ok
	case 2:
		if len(rest) < 4 {
			return color.NRGBA{}, len(rest), false
		}
		return color.NRGBA{
			R: clampByte(rest[1]),
			G: clampByte(rest[2]),
			B: clampByte(rest[3]),
			A: 0xFF,
		}, 4, true
	}
	return color.NRGBA{}, 1, false
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

type gridStyleKey struct {
	fg    color.NRGBA
	fgSet bool
	bg    color.NRGBA
	bgSet bool
	bold  bool
}

// Styles repeat heavily across log lines, so cell styles are interned.
var gridStyleCache = map[gridStyleKey]widget.TextGridStyle{}

func gridStyleFor(s sgrState) widget.TextGridStyle {
	if !s.fgSet && !s.bgSet && !s.bold {
		return nil
	}
	key := gridStyleKey{fg: s.fg, fgSet: s.fgSet, bg: s.bg, bgSet: s.bgSet, bold: s.bold}
	if st, ok := gridStyleCache[key]; ok {
		return st
	}
	st := &widget.CustomTextGridStyle{TextStyle: fyne.TextStyle{Bold: s.bold}}
	if s.fgSet {
		st.FGColor = s.fg
	}
	if s.bgSet {
		st.BGColor = s.bg
	}
	gridStyleCache[key] = st
	return st
}

// ansiLineToRow converts one formatted log line into a TextGrid row.
func ansiLineToRow(line string) widget.TextGridRow {
	var (
		row   widget.TextGridRow
		state sgrState
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != 0x1b {
			if r == '\t' {
				r = ' '
			}
			row.Cells = append(row.Cells, widget.TextGridCell{Rune: r, Style: gridStyleFor(state)})
			continue
		}
		if i+1 >= len(runes) || runes[i+1] != '[' {
			continue
		}
		j := i + 2
		for j < len(runes) && !isSGRFinal(runes[j]) {
			j++
		}
		if j < len(runes) && runes[j] == 'm' {
			state.apply(parseSGRParams(string(runes[i+2 : j])))
		}
		i = j
	}
	return row
}

func isSGRFinal(r rune) bool { return r >= 0x40 && r <= 0x7e }

func parseSGRParams(raw string) []int {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	params := make([]int, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			params = append(params, 0)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		params = append(params, n)
	}
	return params
}

// wrapRow splits a parsed row into display rows no wider than cols.
func wrapRow(row widget.TextGridRow, cols int) []widget.TextGridRow {
	if cols <= 0 || len(row.Cells) <= cols {
		return []widget.TextGridRow{row}
	}
	var out []widget.TextGridRow
	for start := 0; start < len(row.Cells); start += cols {
		end := start + cols
		if end > len(row.Cells) {
			end = len(row.Cells)
		}
		out = append(out, widget.TextGridRow{Cells: row.Cells[start:end]})
	}
	return out
}

// plainTextOf strips the escape sequences, for the selectable view.
func plainTextOf(line string) string {
	var b strings.Builder
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != 0x1b {
			b.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) || runes[i+1] != '[' {
			continue
		}
		j := i + 2
		for j < len(runes) && !isSGRFinal(runes[j]) {
			j++
		}
		i = j
	}
	return b.String()
}
