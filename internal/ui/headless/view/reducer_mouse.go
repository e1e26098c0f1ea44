package view

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// MouseEffect tells the model which side effect a click asks for.
type MouseEffect int

const (
	MouseEffectNone MouseEffect = iota
	MouseEffectActivateFocused
	MouseEffectConfirmQuitAccept
)

// ReduceMouse routes motion to hover state, left clicks to the zone map,
// and everything else to the visible viewports.
func ReduceMouse(state State, msg tea.MouseMsg) (State, tea.Cmd, MouseEffect) {
	if msg.Action == tea.MouseActionMotion {
		state.HoverZone = ""
		for _, id := range hoverZones {
			if zone.Get(id).InBounds(msg) {
				state.HoverZone = id
				break
			}
		}
		return state, nil, MouseEffectNone
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		return reduceClick(state, msg)
	}

	state, cmd := forwardMouseToViewports(state, msg)
	return state, cmd, MouseEffectNone
}

func reduceClick(state State, msg tea.MouseMsg) (State, tea.Cmd, MouseEffect) {
	if state.ConfirmQuit {
		switch {
		case zone.Get(ZoneDialogQuitExit).InBounds(msg):
			return state, nil, MouseEffectConfirmQuitAccept
		case zone.Get(ZoneDialogQuitStay).InBounds(msg):
			state.ConfirmQuit = false
		}
		return state, nil, MouseEffectNone
	}
	if state.ErrorText != "" {
		if zone.Get(ZoneDialogDismiss).InBounds(msg) {
			state.ErrorText = ""
		}
		return state, nil, MouseEffectNone
	}
	if state.FilePickerOpen {
		return state, nil, MouseEffectNone
	}

	switch {
	case zone.Get(ZoneTabOverview).InBounds(msg):
		return state, state.SetTab(TabOverview), MouseEffectNone
	case zone.Get(ZoneTabSettings).InBounds(msg):
		return state, state.SetTab(TabSettings), MouseEffectNone
	}

	if control, ok := clickedControl(state, msg); ok {
		state.Focus = control
		cmd := state.ApplyFocus()
		return state, cmd, MouseEffectActivateFocused
	}
	if state.Tab == TabSettings && zone.Get(ZoneSettingsOutDir).InBounds(msg) {
		state.Focus = outDirInputIndex
		return state, state.ApplyFocus(), MouseEffectNone
	}
	return state, nil, MouseEffectNone
}

// clickedControl maps a click to the focus index of the control under it.
func clickedControl(state State, msg tea.MouseMsg) (int, bool) {
	type target struct {
		zone  string
		index int
	}
	var targets []target
	if state.Tab == TabSettings {
		targets = []target{
			{zone: ZoneSettingsBrowse, index: state.BrowseIndex()},
			{zone: ZoneSettingsIco, index: state.IcoIndex()},
			{zone: ZoneSettingsAutoWatch, index: state.AutoWatchIndex()},
			{zone: ZoneSettingsSave, index: state.SaveIndex()},
			{zone: ZoneSettingsCancel, index: state.CancelIndex()},
		}
	} else {
		targets = []target{
			{zone: ZoneWatchToggle, index: state.WatchIndex()},
			{zone: ZoneGenerate, index: state.GenerateIndex()},
			{zone: ZoneCheck, index: state.CheckIndex()},
			{zone: ZoneLogsToggle, index: state.LogsIndex()},
			{zone: ZoneQuit, index: state.QuitIndex()},
		}
		if state.ShowLogs {
			targets = append(targets, target{zone: ZoneLogsDebug, index: state.LogsDebugIndex()})
		}
	}
	for _, t := range targets {
		if zone.Get(t.zone).InBounds(msg) {
			return t.index, true
		}
	}
	return 0, false
}

func forwardMouseToViewports(state State, msg tea.MouseMsg) (State, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if state.ShowLogs {
		if msg.Button == tea.MouseButtonWheelUp {
			state.FollowLogs = false
		}
		state.LogView, cmd = state.LogView.Update(msg)
		cmds = append(cmds, cmd)
	}
	switch state.Tab {
	case TabSettings:
		state.SettingsView, cmd = state.SettingsView.Update(msg)
	default:
		state.RightView, cmd = state.RightView.Update(msg)
	}
	cmds = append(cmds, cmd)
	return state, tea.Batch(cmds...)
}
