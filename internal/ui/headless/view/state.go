// Package view renders the dashboard and reduces user input into state
// transitions. It never touches the runtime directly; reducers hand effects
// back to the model, which owns the side effects.
package view

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/ui/headless/health"
	"tripagent-icongen/internal/ui/headless/keyboard"
	"tripagent-icongen/internal/ui/headless/theme"
)

// StatusTone picks the color family for the runtime status line.
type StatusTone int

const (
	ToneIdle StatusTone = iota
	ToneBusy
	ToneGood
	ToneWarn
	ToneError
)

// Runtime is the snapshot of model state the renderers need. The view keeps
// no reference to the controller; the model rebuilds this on every frame.
type Runtime struct {
	BuildVersion string
	Running      bool
	Busy         bool
	Status       string
	Tone         StatusTone
	Targets      []health.Row
	HealthDetail string
}

// State carries everything the renderers and reducers share.
type State struct {
	Inputs []textinput.Model
	Focus  int
	Tab    int

	Keys     keyboard.Map
	HelpView help.Model

	ShowLogs   bool
	FollowLogs bool
	DebugOn    bool
	IcoOn      bool
	AutoWatch  bool

	LogText      string
	LogView      viewport.Model
	LeftView     viewport.Model
	RightView    viewport.Model
	SettingsView viewport.Model

	Spinner   spinner.Model
	AnimPhase float64
	Preview   string

	Width  int
	Height int

	ConfirmQuit       bool
	ConfirmQuitChoice int
	ErrorText         string
	FilePickerOpen    bool
	FilePicker        filepicker.Model
	HoverZone         string

	SavedSettings config.GeneratorSettings
	SettingsDirty bool
}

// NewState builds the initial UI state from merged options. opts must
// already include any persisted settings.
func NewState(opts config.Options) State {
	outDir := textinput.New()
	outDir.Placeholder = config.DefaultOutDir
	outDir.Prompt = ""
	outDir.SetValue(strings.TrimSpace(opts.OutDir))

	picker := filepicker.New()
	picker.DirAllowed = true
	picker.FileAllowed = false
	picker.ShowHidden = false
	if wd, err := os.Getwd(); err == nil {
		picker.CurrentDirectory = wd
	}

	busy := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.StatusBusyStyle),
	)

	state := State{
		Inputs:        []textinput.Model{outDir},
		Keys:          keyboard.NewMap(),
		HelpView:      help.New(),
		FollowLogs:    true,
		DebugOn:       opts.Debug,
		IcoOn:         opts.Ico,
		AutoWatch:     opts.Watch,
		LogView:       viewport.New(0, 0),
		LeftView:      viewport.New(0, 0),
		RightView:     viewport.New(0, 0),
		SettingsView:  viewport.New(0, 0),
		Spinner:       busy,
		FilePicker:    picker,
		SavedSettings: config.SettingsFromOptions(opts),
	}
	return state
}
