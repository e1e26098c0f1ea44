package view

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"tripagent-icongen/internal/ui/headless/health"
	"tripagent-icongen/internal/ui/headless/theme"
)

var (
	scrollThumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	scrollTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	dotBrokenStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
)

// GradientTitle paints the title with the brand gradient, shifted by phase
// so the shimmer crawls across the text.
func GradientTitle(text string, phase float64) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range runes {
		pos := phase + float64(i)/float64(len(runes))
		b.WriteString(theme.HeaderStyle.Foreground(theme.GradientColorAt(pos)).Render(string(r)))
	}
	return b.String()
}

// RenderTabs draws the tab strip with zone marks for mouse switching.
func RenderTabs(activeTab int, hoverZone string) string {
	labels := []struct {
		zone  string
		tab   int
		label string
	}{
		{zone: ZoneTabOverview, tab: TabOverview, label: "Overview"},
		{zone: ZoneTabSettings, tab: TabSettings, label: "Settings"},
	}
	parts := make([]string, 0, len(labels))
	for _, entry := range labels {
		style := theme.TabStyle
		switch {
		case entry.tab == activeTab:
			style = theme.TabActiveStyle
		case hoverZone == entry.zone:
			style = theme.TabHoverStyle
		}
		parts = append(parts, zone.Mark(entry.zone, style.Render(entry.label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// RenderStatus styles a status label by tone.
func RenderStatus(tone StatusTone, text string) string {
	switch tone {
	case ToneBusy:
		return theme.StatusBusyStyle.Render(text)
	case ToneGood:
		return theme.StatusGoodStyle.Render(text)
	case ToneWarn:
		return theme.StatusWarnStyle.Render(text)
	case ToneError:
		return theme.StatusErrorStyle.Render(text)
	default:
		return theme.StatusIdleStyle.Render(text)
	}
}

// TargetDot returns the colored bullet for a health row.
func TargetDot(kind health.Kind) string {
	switch kind {
	case health.Fresh:
		return theme.StatusGoodStyle.Render("●")
	case health.Missing:
		return theme.StatusErrorStyle.Render("●")
	case health.Broken:
		return dotBrokenStyle.Render("●")
	default:
		return theme.StatusWarnStyle.Render("●")
	}
}

// RenderButton draws a focusable button, zone-marked for the mouse.
func RenderButton(zoneID, label string, focused bool) string {
	style := theme.ButtonStyle
	if focused {
		style = theme.ButtonFocusedStyle
	}
	return zone.Mark(zoneID, style.Render(label))
}

// RenderSegmented draws a two-segment toggle with the active side filled.
func RenderSegmented(zoneID, left, right string, rightActive, focused bool) string {
	leftStyle := theme.SegmentActiveStyle
	rightStyle := theme.SegmentStyle
	if rightActive {
		leftStyle, rightStyle = theme.SegmentStyle, theme.SegmentActiveStyle
	}
	if focused {
		if rightActive {
			rightStyle = theme.SegmentFocusedStyle
		} else {
			leftStyle = theme.SegmentFocusedStyle
		}
	}
	return zone.Mark(zoneID, leftStyle.Render(left)+rightStyle.Render(right))
}

// RenderCheckbox draws a focusable checkbox row.
func RenderCheckbox(zoneID, label string, checked, focused bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	style := theme.CheckboxStyle
	if focused {
		style = theme.CheckboxFocusedStyle
	}
	return zone.Mark(zoneID, style.Render(box+" "+label))
}

// RenderActionsRow lays buttons out horizontally, wrapping onto new rows
// when the pane is too narrow for all of them.
func RenderActionsRow(width int, buttons []string) string {
	if len(buttons) == 0 {
		return ""
	}
	var rows []string
	var current []string
	used := 0
	for _, button := range buttons {
		w := lipgloss.Width(button)
		if len(current) > 0 && used+1+w > width {
			rows = append(rows, strings.Join(current, " "))
			current = current[:0]
			used = 0
		}
		if len(current) > 0 {
			used++
		}
		current = append(current, button)
		used += w
	}
	if len(current) > 0 {
		rows = append(rows, strings.Join(current, " "))
	}
	return strings.Join(rows, "\n")
}

// WithScrollBar appends a one-column scrollbar to a viewport that has more
// content than rows.
func WithScrollBar(vp viewport.Model) string {
	view := vp.View()
	total := vp.TotalLineCount()
	if vp.Height <= 0 || total <= vp.Height {
		return view
	}

	thumb := vp.Height * vp.Height / total
	if thumb < 1 {
		thumb = 1
	}
	top := int(vp.ScrollPercent() * float64(vp.Height-thumb))

	var bar strings.Builder
	for i := 0; i < vp.Height; i++ {
		if i > 0 {
			bar.WriteByte('\n')
		}
		if i >= top && i < top+thumb {
			bar.WriteString(scrollThumbStyle.Render("┃"))
		} else {
			bar.WriteString(scrollTrackStyle.Render("│"))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, view, bar.String())
}
