package view

import tea "github.com/charmbracelet/bubbletea"

// ReduceInput forwards a message to the focused text input. Cursor blink
// messages land here too via the model's default branch.
func ReduceInput(state State, msg tea.Msg) (State, tea.Cmd, KeyEffect) {
	if !state.FocusOnInput() {
		return state, nil, KeyEffectNone
	}
	var cmd tea.Cmd
	state.Inputs[state.Focus], cmd = state.Inputs[state.Focus].Update(msg)
	state.RefreshSettingsDirty()
	return state, cmd, KeyEffectNone
}
