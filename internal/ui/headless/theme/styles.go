// Package theme centralizes the lipgloss styles shared by the dashboard
// renderers so panels, buttons, and status text stay visually consistent.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette. The icons themselves are white on #166534, and the
// dashboard chrome picks up the same forest green family.
const (
	BrandGreen      = "#166534"
	BrandGreenLight = "#22c55e"
)

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78"))

	HeaderStyle  = lipgloss.NewStyle().Bold(true)
	VersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	SubtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	HelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	LabelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	LabelFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))

	ButtonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("237"))

	ButtonFocusedStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color(BrandGreen))

	SegmentStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("248")).
			Background(lipgloss.Color("236"))

	SegmentActiveStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color(BrandGreen))

	SegmentFocusedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true).
				Underline(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color(BrandGreenLight))

	TabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("246"))

	TabActiveStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color(BrandGreen))

	TabHoverStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("238"))

	CheckboxStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	CheckboxFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))

	StatusIdleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	StatusBusyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221"))
	StatusGoodStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))
	StatusWarnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	StatusErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2)

	DialogTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))

	DirtyHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// gradientStops runs dark forest green out to mint and back so the animated
// title shimmers without leaving the brand family.
var gradientStops = []string{
	"#166534", "#15803d", "#16a34a", "#22c55e",
	"#4ade80", "#86efac", "#4ade80", "#22c55e",
	"#16a34a", "#15803d",
}

// GradientColorAt samples the loop at pos, wrapping at 1.0.
func GradientColorAt(pos float64) lipgloss.Color {
	pos = pos - float64(int(pos))
	if pos < 0 {
		pos++
	}
	scaled := pos * float64(len(gradientStops))
	idx := int(scaled) % len(gradientStops)
	next := (idx + 1) % len(gradientStops)
	return lipgloss.Color(interpolateHex(gradientStops[idx], gradientStops[next], scaled-float64(int(scaled))))
}

func interpolateHex(from, to string, t float64) string {
	fr, fg, fb := parseHexRGB(from)
	tr, tg, tb := parseHexRGB(to)
	mix := func(a, b int) int { return a + int(float64(b-a)*t) }
	return fmt.Sprintf("#%02x%02x%02x", mix(fr, tr), mix(fg, tg), mix(fb, tb))
}

func parseHexRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
