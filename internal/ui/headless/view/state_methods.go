package view

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/ui/headless/theme"
)

const (
	TabOverview = 0
	TabSettings = 1
	TabCount    = 2
)

const (
	outDirInputIndex = 0

	overviewBaseFocusSlots  = 5
	settingsExtraFocusSlots = 5

	minContentWidth    = 60
	stackCutoverWidth  = 92
	paneBodyHeight     = 8
	settingsBodyHeight = 10

	minLogPanelHeight   = 6
	nonLogLayoutReserve = 17

	previewRows          = 14
	previewHeightCutover = 38
)

// Overview focus order: watch toggle, generate, check, logs, quit, then the
// debug checkbox once the log panel is open.
func (s *State) WatchIndex() int     { return 0 }
func (s *State) GenerateIndex() int  { return 1 }
func (s *State) CheckIndex() int     { return 2 }
func (s *State) LogsIndex() int      { return 3 }
func (s *State) QuitIndex() int      { return 4 }
func (s *State) LogsDebugIndex() int { return 5 }

// Settings focus order: the out dir input first, then browse, the two
// checkboxes, save, cancel.
func (s *State) BrowseIndex() int    { return len(s.Inputs) }
func (s *State) IcoIndex() int       { return len(s.Inputs) + 1 }
func (s *State) AutoWatchIndex() int { return len(s.Inputs) + 2 }
func (s *State) SaveIndex() int      { return len(s.Inputs) + 3 }
func (s *State) CancelIndex() int    { return len(s.Inputs) + 4 }

func (s *State) FocusCount() int {
	if s.Tab == TabSettings {
		return len(s.Inputs) + settingsExtraFocusSlots
	}
	count := overviewBaseFocusSlots
	if s.ShowLogs {
		count++
	}
	return count
}

// ApplyFocus synchronizes text input focus with the focus index. The
// returned command drives cursor blinking.
func (s *State) ApplyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range s.Inputs {
		s.Inputs[i].Blur()
	}
	if s.Tab == TabSettings && s.Focus >= 0 && s.Focus < len(s.Inputs) {
		cmd = s.Inputs[s.Focus].Focus()
	}
	return cmd
}

func (s *State) MoveFocus(delta int) tea.Cmd {
	count := s.FocusCount()
	if count == 0 {
		return nil
	}
	s.Focus = ((s.Focus+delta)%count + count) % count
	return s.ApplyFocus()
}

func (s *State) SetTab(tab int) tea.Cmd {
	if tab < 0 || tab >= TabCount {
		return nil
	}
	s.Tab = tab
	s.Focus = 0
	return s.ApplyFocus()
}

func (s *State) FocusOnInput() bool {
	return s.Tab == TabSettings && s.Focus >= 0 && s.Focus < len(s.Inputs)
}

// ContentWidth leaves one spare column, which keeps the last cell free on
// terminals that wrap eagerly.
func (s *State) ContentWidth() int {
	width := s.Width - 1
	if width < minContentWidth {
		width = minContentWidth
	}
	return width
}

func (s *State) Stacked() bool {
	return s.ContentWidth() < stackCutoverWidth
}

func (s *State) ShowPreview() bool {
	return s.Height >= previewHeightCutover
}

// SetWindowSize records the terminal size and refits every embedded widget.
func (s *State) SetWindowSize(width, height int) {
	s.Width = width
	s.Height = height
	s.HelpView.Width = s.ContentWidth()
	s.resizeInputs()
	s.ResizePaneViewports()
	s.FitLogPanel()
	s.ResizeFilePicker()
}

func (s *State) resizeInputs() {
	width := s.ContentWidth() - 28
	if width < 20 {
		width = 20
	}
	for i := range s.Inputs {
		s.Inputs[i].Width = width
	}
}

// ResizePaneViewports sizes the overview and settings panes. The right pane
// grows when the preview strip is visible.
func (s *State) ResizePaneViewports() {
	total := s.ContentWidth()
	frame := theme.PanelStyle.GetHorizontalFrameSize()

	leftOuter := total
	rightOuter := total
	if !s.Stacked() {
		leftOuter = total / 2
		rightOuter = total - leftOuter
	}

	rightHeight := paneBodyHeight
	if s.ShowPreview() {
		rightHeight = paneBodyHeight + previewRows + 1
	}

	s.LeftView.Width = maxInt(10, leftOuter-frame)
	s.LeftView.Height = paneBodyHeight
	s.RightView.Width = maxInt(10, rightOuter-frame)
	s.RightView.Height = rightHeight
	s.SettingsView.Width = maxInt(10, total-frame)
	s.SettingsView.Height = settingsBodyHeight
}

// FitLogPanel gives the log viewport whatever vertical room the rest of the
// layout leaves over.
func (s *State) FitLogPanel() {
	inner := s.ContentWidth() - theme.PanelStyle.GetHorizontalFrameSize() - 1
	if inner < 20 {
		inner = 20
	}
	height := s.Height - nonLogLayoutReserve
	if s.ShowPreview() {
		height -= previewRows + 1
	}
	if height < minLogPanelHeight {
		height = minLogPanelHeight
	}
	if s.LogView.Width == inner && s.LogView.Height == height {
		return
	}
	s.LogView.Width = inner
	s.LogView.Height = height
	s.RefreshLogContent()
}

func (s *State) ResizeFilePicker() {
	height := s.Height - 12
	if height < 5 {
		height = 5
	}
	s.FilePicker.Height = height
}

// SetLogText replaces the log buffer and re-wraps it into the viewport.
func (s *State) SetLogText(text string) {
	s.LogText = text
	s.RefreshLogContent()
}

func (s *State) RefreshLogContent() {
	if s.LogView.Width <= 0 {
		return
	}
	s.LogView.SetContent(wrapLogText(s.LogText, s.LogView.Width))
	if s.FollowLogs {
		s.LogView.GotoBottom()
	}
}

// wrapLogText hard-wraps styled log lines to the pane width so ANSI colors
// survive the fold.
func wrapLogText(text string, width int) string {
	if width <= 0 || text == "" {
		return text
	}
	return ansi.Wrap(text, width, "")
}

func (s *State) AdvanceAnimation() {
	s.AnimPhase += 0.015
	if s.AnimPhase >= 1 {
		s.AnimPhase -= 1
	}
}

// ControlSettings snapshots the current control values in persistable form.
func (s *State) ControlSettings() config.GeneratorSettings {
	return config.GeneratorSettings{
		OutDir:       strings.TrimSpace(s.Inputs[outDirInputIndex].Value()),
		Ico:          s.IcoOn,
		WatchOnStart: s.AutoWatch,
		Debug:        s.DebugOn,
	}
}

func (s *State) RefreshSettingsDirty() {
	s.SettingsDirty = s.ControlSettings() != s.SavedSettings
}

// CommitSave marks the current control values as the persisted baseline.
func (s *State) CommitSave() {
	s.SavedSettings = s.ControlSettings()
	s.SettingsDirty = false
}

// RevertControls restores every control from the persisted baseline.
func (s *State) RevertControls() {
	s.Inputs[outDirInputIndex].SetValue(s.SavedSettings.OutDir)
	s.IcoOn = s.SavedSettings.Ico
	s.AutoWatch = s.SavedSettings.WatchOnStart
	s.DebugOn = s.SavedSettings.Debug
	s.SettingsDirty = false
}

func (s *State) SetSelectedOutDir(path string) {
	s.Inputs[outDirInputIndex].SetValue(path)
	s.RefreshSettingsDirty()
}

func (s *State) OutDirValue() string {
	return strings.TrimSpace(s.Inputs[outDirInputIndex].Value())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
