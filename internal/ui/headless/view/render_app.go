package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"tripagent-icongen/internal/ui/headless/render"
	"tripagent-icongen/internal/ui/headless/theme"
)

// RenderApp produces the full frame. Modal surfaces replace the base view
// while they are open; the alt screen restores it afterwards.
func RenderApp(state *State, rt Runtime) string {
	if state.Width <= 0 || state.Height <= 0 {
		return "Loading..."
	}
	switch {
	case state.FilePickerOpen:
		return overlayDialog(state, renderFilePickerDialog(state))
	case state.ConfirmQuit:
		return overlayDialog(state, renderQuitDialog(state, rt))
	case state.ErrorText != "":
		return overlayDialog(state, renderErrorDialog(state))
	}
	return renderBase(state, rt)
}

func renderBase(state *State, rt Runtime) string {
	sections := []string{
		renderHeader(state, rt),
		RenderTabs(state.Tab, state.HoverZone),
	}
	if state.Tab == TabSettings {
		sections = append(sections, renderSettings(state))
	} else {
		sections = append(sections, renderOverview(state, rt))
	}
	if state.ShowLogs {
		sections = append(sections, renderLogPanel(state))
	}
	sections = append(sections, theme.HelpStyle.Render(state.HelpView.View(state.Keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderHeader(state *State, rt Runtime) string {
	title := GradientTitle("TripAgent Icongen", state.AnimPhase)
	version := ""
	if rt.BuildVersion != "" {
		version = "  " + theme.VersionStyle.Render("v"+rt.BuildVersion)
	}
	return title + version
}

func renderOverview(state *State, rt Runtime) string {
	state.LeftView.SetContent(renderGeneratorPane(state, rt))
	state.RightView.SetContent(renderTargetsPane(state, rt))

	frame := theme.PanelStyle.GetHorizontalFrameSize()
	left := render.Frame(state.LeftView.View(), state.LeftView.Width+frame, theme.PanelStyle)
	right := render.Frame(state.RightView.View(), state.RightView.Width+frame, theme.PanelStyle)

	if state.Stacked() {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderGeneratorPane(state *State, rt Runtime) string {
	status := RenderStatus(rt.Tone, rt.Status)
	if rt.Busy {
		status = state.Spinner.View() + " " + status
	}

	outDir := state.OutDirValue()
	outText := theme.SubtleStyle.Render(outDir)
	if outDir == "" {
		outText = theme.StatusWarnStyle.Render("not set")
	}

	icoText := "favicon.ico off"
	if state.IcoOn {
		icoText = "favicon.ico on"
	}

	rows := []string{
		theme.PanelTitleStyle.Render("Generator"),
		"",
		theme.LabelStyle.Render("Status  ") + status,
		theme.LabelStyle.Render("Output  ") + outText,
		theme.LabelStyle.Render("Extras  ") + theme.SubtleStyle.Render(icoText),
		"",
		renderActions(state, rt),
	}
	return clampLines(strings.Join(rows, "\n"), state.LeftView.Width)
}

func renderActions(state *State, rt Runtime) string {
	onOverview := state.Tab == TabOverview
	buttons := []string{
		RenderSegmented(ZoneWatchToggle, "Watch", "Stop", rt.Running, onOverview && state.Focus == state.WatchIndex()),
		RenderButton(ZoneGenerate, "Generate", onOverview && state.Focus == state.GenerateIndex()),
		RenderButton(ZoneCheck, "Check", onOverview && state.Focus == state.CheckIndex()),
		RenderButton(ZoneLogsToggle, "Logs", onOverview && state.Focus == state.LogsIndex()),
		RenderButton(ZoneQuit, "Quit", onOverview && state.Focus == state.QuitIndex()),
	}
	return RenderActionsRow(state.LeftView.Width, buttons)
}

func renderTargetsPane(state *State, rt Runtime) string {
	rows := []string{theme.PanelTitleStyle.Render("Targets"), ""}
	switch {
	case rt.HealthDetail != "":
		rows = append(rows, theme.StatusWarnStyle.Render(rt.HealthDetail))
	case len(rt.Targets) == 0:
		rows = append(rows, theme.SubtleStyle.Render("No verification yet."))
	default:
		nameStyle := lipgloss.NewStyle().Width(18)
		for _, row := range rt.Targets {
			rows = append(rows, TargetDot(row.Kind)+" "+nameStyle.Render(row.Name)+theme.SubtleStyle.Render(row.Reason))
		}
	}
	if state.ShowPreview() && state.Preview != "" {
		rows = append(rows, "", state.Preview)
	}
	return clampLines(strings.Join(rows, "\n"), state.RightView.Width)
}

func renderSettings(state *State) string {
	focusedLabel := func(focused bool) lipgloss.Style {
		if focused {
			return theme.LabelFocusedStyle
		}
		return theme.LabelStyle
	}

	inputRow := zone.Mark(ZoneSettingsOutDir, state.Inputs[outDirInputIndex].View()) +
		" " + RenderButton(ZoneSettingsBrowse, "Browse", state.Focus == state.BrowseIndex())

	rows := []string{
		theme.PanelTitleStyle.Render("Settings"),
		"",
		focusedLabel(state.Focus == outDirInputIndex).Render("Output directory"),
		inputRow,
		"",
		RenderCheckbox(ZoneSettingsIco, "Write favicon.ico bundle", state.IcoOn, state.Focus == state.IcoIndex()),
		RenderCheckbox(ZoneSettingsAutoWatch, "Start watching on launch", state.AutoWatch, state.Focus == state.AutoWatchIndex()),
		"",
		renderSettingsButtons(state),
	}

	state.SettingsView.SetContent(clampLines(strings.Join(rows, "\n"), state.SettingsView.Width))
	frame := theme.PanelStyle.GetHorizontalFrameSize()
	return render.Frame(state.SettingsView.View(), state.SettingsView.Width+frame, theme.PanelStyle)
}

func renderSettingsButtons(state *State) string {
	buttons := []string{
		RenderButton(ZoneSettingsSave, "Save", state.Focus == state.SaveIndex()),
		RenderButton(ZoneSettingsCancel, "Cancel", state.Focus == state.CancelIndex()),
	}
	row := RenderActionsRow(state.SettingsView.Width, buttons)
	if state.SettingsDirty {
		row += "  " + theme.DirtyHintStyle.Render("unsaved changes")
	}
	return row
}

func renderLogPanel(state *State) string {
	follow := theme.SubtleStyle.Render("scrolled, ctrl+f to follow")
	if state.FollowLogs {
		follow = theme.SubtleStyle.Render("following")
	}
	title := theme.PanelTitleStyle.Render("Logs") + "  " + follow + "  " +
		RenderCheckbox(ZoneLogsDebug, "debug", state.DebugOn, state.Tab == TabOverview && state.Focus == state.LogsDebugIndex())

	body := title + "\n" + WithScrollBar(state.LogView)
	return render.Frame(body, state.ContentWidth(), theme.PanelStyle)
}

func renderQuitDialog(state *State, rt Runtime) string {
	body := "Exit now?"
	if rt.Running {
		body = "The watch service is still running. Exit anyway?"
	}

	stayStyle, exitStyle := theme.ButtonFocusedStyle, theme.ButtonStyle
	if state.ConfirmQuitChoice == 1 {
		stayStyle, exitStyle = theme.ButtonStyle, theme.ButtonFocusedStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		zone.Mark(ZoneDialogQuitStay, stayStyle.Render("Stay")),
		"  ",
		zone.Mark(ZoneDialogQuitExit, exitStyle.Render("Quit")),
	)

	return theme.DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		theme.DialogTitleStyle.Render("Quit TripAgent Icongen?"),
		"",
		body,
		"",
		buttons,
	))
}

func renderErrorDialog(state *State) string {
	width := minContentWidth - 10
	text := lipgloss.NewStyle().Width(width).Render(state.ErrorText)
	return theme.DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		theme.DialogTitleStyle.Render("Problem"),
		"",
		text,
		"",
		zone.Mark(ZoneDialogDismiss, theme.ButtonFocusedStyle.Render("Dismiss")),
	))
}

func renderFilePickerDialog(state *State) string {
	return theme.DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.DialogTitleStyle.Render("Choose output directory"),
		theme.SubtleStyle.Render(state.FilePicker.CurrentDirectory),
		"",
		state.FilePicker.View(),
		"",
		theme.HelpStyle.Render("enter select · . use this directory · esc cancel"),
	))
}

func overlayDialog(state *State, dialog string) string {
	return lipgloss.Place(state.Width, state.Height, lipgloss.Center, lipgloss.Center, dialog)
}

func clampLines(body string, width int) string {
	if width <= 0 {
		return body
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = render.TruncateDisplayWidth(line, width)
	}
	return strings.Join(lines, "\n")
}
