package headless

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tripagent-icongen/internal/app"
	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/logging"
	"tripagent-icongen/internal/runstatus"
	"tripagent-icongen/internal/ui/headless/health"
	headlessview "tripagent-icongen/internal/ui/headless/view"
)

func (m *headlessModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		if _, ok := msg.(quitNowMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetWindowSize(msg.Width, msg.Height)
		return m, nil

	case logMsg:
		m.appendLogLine(string(msg))
		return m, m.waitForLog()

	case targetsUpdatedMsg:
		now := time.Now()
		m.targetRows = health.FromStatuses([]app.TargetStatus(msg), now)
		m.healthDetail = ""
		m.lastHealthRefresh = now
		return m, m.waitForTargets()

	case statusMsg:
		m.applyRuntimeStatus(string(msg))
		return m, m.waitForStatus()

	case startResultMsg:
		if msg.err != nil {
			m.running = false
			m.busy = false
			m.applyRuntimeStatus(runstatus.Idle)
			m.ui.ErrorText = friendlyRunError(msg.err)
			return m, nil
		}
		m.running = true
		return m, nil

	case runDoneMsg:
		m.running = false
		m.busy = false
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.applyRuntimeStatus(runstatus.Failed)
			m.ui.ErrorText = friendlyRunError(msg.err)
		} else {
			m.applyRuntimeStatus(runstatus.Idle)
		}
		m.refreshTargetHealth(time.Now())
		return m, nil

	case generateDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.ui.ErrorText = friendlyRunError(msg.err)
		}
		m.refreshTargetHealth(time.Now())
		return m, nil

	case checkDoneMsg:
		m.busy = false
		if msg.err != nil && !errors.Is(msg.err, app.ErrIconsNotFresh) {
			m.ui.ErrorText = friendlyRunError(msg.err)
		}
		m.refreshTargetHealth(time.Now())
		return m, nil

	case tickMsg:
		m.ui.AdvanceAnimation()
		if !m.busy && time.Since(m.lastHealthRefresh) >= health.RefreshRate {
			m.refreshTargetHealth(time.Now())
		}
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.ui.Spinner, cmd = m.ui.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.ui.FilePickerOpen {
			return m.updateFilePicker(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.ui.FilePickerOpen {
			return m, nil
		}
		ui, cmd, effect := headlessview.ReduceMouse(m.ui, msg)
		m.ui = ui
		switch effect {
		case headlessview.MouseEffectActivateFocused:
			return m.activateFocusedControl(cmd)
		case headlessview.MouseEffectConfirmQuitAccept:
			return m.beginQuit()
		}
		return m, cmd

	default:
		if m.ui.FilePickerOpen {
			return m.updateFilePicker(msg)
		}
		ui, cmd, _ := headlessview.ReduceInput(m.ui, msg)
		m.ui = ui
		return m, cmd
	}
}

func (m *headlessModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ui, cmd, effect := headlessview.ReduceKey(m.ui, msg)
	m.ui = ui
	switch effect {
	case headlessview.KeyEffectRequestQuit:
		return m.requestQuit()
	case headlessview.KeyEffectConfirmQuitAccept:
		return m.beginQuit()
	case headlessview.KeyEffectActivateFocused:
		return m.activateFocusedControl(cmd)
	case headlessview.KeyEffectSaveSettings:
		return m, tea.Batch(cmd, m.saveSettings())
	case headlessview.KeyEffectGenerate:
		return m, tea.Batch(cmd, m.generateCmd())
	case headlessview.KeyEffectToggleWatch:
		return m.toggleWatch(cmd)
	case headlessview.KeyEffectCheck:
		return m, tea.Batch(cmd, m.checkCmd())
	}
	return m, cmd
}

func (m *headlessModel) activateFocusedControl(prior tea.Cmd) (tea.Model, tea.Cmd) {
	ui, effect := headlessview.ReduceActivate(m.ui, m.running)
	m.ui = ui
	switch effect {
	case headlessview.ActivateEffectStartWatch:
		return m, tea.Batch(prior, m.startWatchCmd())
	case headlessview.ActivateEffectStopWatch:
		m.stopWatch()
		return m, prior
	case headlessview.ActivateEffectGenerate:
		return m, tea.Batch(prior, m.generateCmd())
	case headlessview.ActivateEffectCheck:
		return m, tea.Batch(prior, m.checkCmd())
	case headlessview.ActivateEffectRequestQuit:
		return m.requestQuit()
	case headlessview.ActivateEffectOpenBrowse:
		return m, tea.Batch(prior, m.openBrowseCmd())
	case headlessview.ActivateEffectSaveSettings:
		return m, tea.Batch(prior, m.saveSettings())
	case headlessview.ActivateEffectDebugChanged:
		m.logger.SetDebugEnabled(m.ui.DebugOn)
		return m, prior
	}
	return m, prior
}

func (m *headlessModel) toggleWatch(prior tea.Cmd) (tea.Model, tea.Cmd) {
	if m.running {
		m.stopWatch()
		return m, prior
	}
	return m, tea.Batch(prior, m.startWatchCmd())
}

func (m *headlessModel) requestQuit() (tea.Model, tea.Cmd) {
	if m.running || m.busy {
		m.ui.ConfirmQuit = true
		m.ui.ConfirmQuitChoice = 0
		return m, nil
	}
	return m.beginQuit()
}

// beginQuit tears the runtime down, then gives the terminal a moment to
// flush pending mouse reports before the final Quit.
func (m *headlessModel) beginQuit() (tea.Model, tea.Cmd) {
	m.ui.ConfirmQuit = false
	m.quitting = true
	m.cleanup()
	return m, tea.Sequence(tea.DisableMouse, quitAfterDrain())
}

func quitAfterDrain() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return quitNowMsg{} })
}

func (m *headlessModel) saveSettings() tea.Cmd {
	settings := m.ui.ControlSettings()
	if err := config.SaveSettings(settings); err != nil {
		m.ui.ErrorText = "Could not save settings: " + err.Error()
		return nil
	}
	m.ui.CommitSave()
	m.logger.SetDebugEnabled(settings.Debug)
	m.logger.Info("settings saved", logging.Field("out_dir", settings.OutDir))
	m.refreshTargetHealth(time.Now())
	return nil
}

func (m *headlessModel) openBrowseCmd() tea.Cmd {
	start := m.ui.OutDirValue()
	if info, err := os.Stat(start); start == "" || err != nil || !info.IsDir() {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			start = wd
		}
	}
	m.ui.FilePicker.CurrentDirectory = start
	m.ui.FilePickerOpen = true
	m.ui.ResizeFilePicker()
	return m.ui.FilePicker.Init()
}

func (m *headlessModel) updateFilePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.ui.FilePickerOpen = false
			return m, nil
		case ".":
			m.applySelectedOutDir(m.ui.FilePicker.CurrentDirectory)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ui.FilePicker, cmd = m.ui.FilePicker.Update(msg)
	if selected, path := m.ui.FilePicker.DidSelectFile(msg); selected {
		m.applySelectedOutDir(path)
	}
	return m, cmd
}

func (m *headlessModel) applySelectedOutDir(path string) {
	m.ui.FilePickerOpen = false
	m.ui.SetSelectedOutDir(path)
	m.refreshTargetHealth(time.Now())
}

func (m *headlessModel) appendLogLine(line string) {
	text := m.ui.LogText
	if text != "" {
		text += "\n"
	}
	text += line
	if lines := strings.Split(text, "\n"); len(lines) > headlessLogLineLimit {
		text = strings.Join(lines[len(lines)-headlessLogLineLimit:], "\n")
	}
	m.ui.SetLogText(text)
}
