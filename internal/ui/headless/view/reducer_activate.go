package view

// ActivateEffect tells the model which side effect the focused control asks
// for when activated.
type ActivateEffect int

const (
	ActivateEffectNone ActivateEffect = iota
	ActivateEffectStartWatch
	ActivateEffectStopWatch
	ActivateEffectGenerate
	ActivateEffectCheck
	ActivateEffectRequestQuit
	ActivateEffectOpenBrowse
	ActivateEffectSaveSettings
	ActivateEffectDebugChanged
)

// ReduceActivate applies the focused control. Pure toggles flip in place;
// anything that needs the runtime comes back as an effect.
func ReduceActivate(state State, watchRunning bool) (State, ActivateEffect) {
	if state.Tab == TabSettings {
		switch state.Focus {
		case state.BrowseIndex():
			return state, ActivateEffectOpenBrowse
		case state.IcoIndex():
			state.IcoOn = !state.IcoOn
			state.RefreshSettingsDirty()
		case state.AutoWatchIndex():
			state.AutoWatch = !state.AutoWatch
			state.RefreshSettingsDirty()
		case state.SaveIndex():
			return state, ActivateEffectSaveSettings
		case state.CancelIndex():
			state.RevertControls()
			return state, ActivateEffectDebugChanged
		}
		return state, ActivateEffectNone
	}

	switch state.Focus {
	case state.WatchIndex():
		if watchRunning {
			return state, ActivateEffectStopWatch
		}
		return state, ActivateEffectStartWatch
	case state.GenerateIndex():
		return state, ActivateEffectGenerate
	case state.CheckIndex():
		return state, ActivateEffectCheck
	case state.LogsIndex():
		state.ShowLogs = !state.ShowLogs
		if state.Focus >= state.FocusCount() {
			state.Focus = 0
		}
		state.FitLogPanel()
		return state, ActivateEffectNone
	case state.QuitIndex():
		return state, ActivateEffectRequestQuit
	case state.LogsDebugIndex():
		if state.ShowLogs {
			state.DebugOn = !state.DebugOn
			state.RefreshSettingsDirty()
			return state, ActivateEffectDebugChanged
		}
	}
	return state, ActivateEffectNone
}
