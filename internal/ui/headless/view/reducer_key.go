package view

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyEffect tells the model which side effect a key press asks for.
type KeyEffect int

const (
	KeyEffectNone KeyEffect = iota
	KeyEffectRequestQuit
	KeyEffectConfirmQuitAccept
	KeyEffectActivateFocused
	KeyEffectSaveSettings
	KeyEffectGenerate
	KeyEffectToggleWatch
	KeyEffectCheck
)

// ReduceKey handles a key press. Modal dialogs swallow everything; the
// single-letter shortcuts only apply on the overview tab so they cannot
// shadow typing in the settings inputs.
func ReduceKey(state State, msg tea.KeyMsg) (State, tea.Cmd, KeyEffect) {
	keys := state.Keys

	if state.ConfirmQuit {
		switch {
		case key.Matches(msg, keys.ModalToggle):
			state.ConfirmQuit = false
		case key.Matches(msg, keys.Quit):
			return state, nil, KeyEffectConfirmQuitAccept
		case key.Matches(msg, keys.NextFocus), key.Matches(msg, keys.PrevFocus):
			state.ConfirmQuitChoice = 1 - state.ConfirmQuitChoice
		case key.Matches(msg, keys.Activate):
			if state.ConfirmQuitChoice == 1 {
				return state, nil, KeyEffectConfirmQuitAccept
			}
			state.ConfirmQuit = false
		}
		return state, nil, KeyEffectNone
	}

	if state.ErrorText != "" {
		switch {
		case key.Matches(msg, keys.ModalToggle), key.Matches(msg, keys.Activate):
			state.ErrorText = ""
		case key.Matches(msg, keys.Quit):
			state.ErrorText = ""
			return state, nil, KeyEffectRequestQuit
		}
		return state, nil, KeyEffectNone
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return state, nil, KeyEffectRequestQuit
	case key.Matches(msg, keys.FollowLogs):
		state.FollowLogs = !state.FollowLogs
		if state.FollowLogs {
			state.LogView.GotoBottom()
		}
		return state, nil, KeyEffectNone
	case key.Matches(msg, keys.Save):
		if state.Tab == TabSettings {
			return state, nil, KeyEffectSaveSettings
		}
		return state, nil, KeyEffectNone
	case key.Matches(msg, keys.PrevTab):
		cmd := state.SetTab(((state.Tab-1)%TabCount + TabCount) % TabCount)
		return state, cmd, KeyEffectNone
	case key.Matches(msg, keys.NextTab):
		cmd := state.SetTab((state.Tab + 1) % TabCount)
		return state, cmd, KeyEffectNone
	case key.Matches(msg, keys.NextFocus):
		cmd := state.MoveFocus(1)
		return state, cmd, KeyEffectNone
	case key.Matches(msg, keys.PrevFocus):
		cmd := state.MoveFocus(-1)
		return state, cmd, KeyEffectNone
	case key.Matches(msg, keys.Activate):
		if state.FocusOnInput() && msg.String() == " " {
			break
		}
		return state, nil, KeyEffectActivateFocused
	}

	if state.Tab == TabOverview {
		switch {
		case key.Matches(msg, keys.Generate):
			return state, nil, KeyEffectGenerate
		case key.Matches(msg, keys.ToggleWatch):
			return state, nil, KeyEffectToggleWatch
		case key.Matches(msg, keys.Check):
			return state, nil, KeyEffectCheck
		}
	}

	return ReduceInput(state, msg)
}
