package headless

import (
	"errors"
	"io/fs"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tripagent-icongen/internal/app"
	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/runstatus"
	"tripagent-icongen/internal/runtime"
	"tripagent-icongen/internal/ui/headless/health"
	headlessview "tripagent-icongen/internal/ui/headless/view"
)

func (m *headlessModel) currentOptions() config.Options {
	return config.Options{
		OutDir:   m.ui.OutDirValue(),
		Ico:      m.ui.IcoOn,
		Watch:    true,
		Debug:    m.ui.DebugOn,
		Headless: true,
	}
}

const missingOutDirText = "Set an output directory on the Settings tab first."

// startWatchCmd launches the watch service through the controller. The
// result lands as startResultMsg; later exits arrive as runDoneMsg.
func (m *headlessModel) startWatchCmd() tea.Cmd {
	if m.ui.OutDirValue() == "" {
		m.ui.ErrorText = missingOutDirText
		return nil
	}
	opts := m.currentOptions()
	m.status = "Starting"
	m.tone = headlessview.ToneBusy
	return func() tea.Msg {
		err := m.runner.Start(opts, m.logger, runtime.StartHooks{
			OnTargetsUpdate: m.onRuntimeTargets,
			OnStatus:        m.onRuntimeStatus,
			OnExit:          m.onRuntimeExit,
		})
		return startResultMsg{err: err}
	}
}

func (m *headlessModel) stopWatch() {
	if !m.running {
		return
	}
	m.applyRuntimeStatus(runstatus.Stopping)
	m.runner.Stop()
}

// generateCmd runs a one-shot generation. While the watch service is up it
// only nudges the service, which already owns the output directory.
func (m *headlessModel) generateCmd() tea.Cmd {
	if m.busy {
		return nil
	}
	if m.running {
		m.runner.RequestSweep("manual refresh")
		return nil
	}
	if m.ui.OutDirValue() == "" {
		m.ui.ErrorText = missingOutDirText
		return nil
	}
	gen := m.newGenerator()
	ctx := m.rootCtx
	m.busy = true
	m.applyRuntimeStatus(runstatus.Generating)
	return func() tea.Msg {
		return generateDoneMsg{err: gen.GenerateOnce(ctx)}
	}
}

func (m *headlessModel) checkCmd() tea.Cmd {
	if m.busy || m.ui.OutDirValue() == "" {
		if m.ui.OutDirValue() == "" {
			m.ui.ErrorText = missingOutDirText
		}
		return nil
	}
	gen := m.newGenerator()
	m.busy = true
	m.status = "Checking"
	m.tone = headlessview.ToneBusy
	return func() tea.Msg {
		// Statuses arrive through the OnTargetsUpdate hook.
		_, err := gen.Check()
		return checkDoneMsg{err: err}
	}
}

func (m *headlessModel) newGenerator() *app.Generator {
	return app.New(m.currentOptions(), m.logger, app.Callbacks{
		OnTargetsUpdate: m.onRuntimeTargets,
		OnStatusChange:  m.onRuntimeStatus,
	})
}

// The runtime hooks run on the service goroutine. They drop the oldest
// pending entry instead of blocking when the UI falls behind.
func (m *headlessModel) onRuntimeTargets(statuses []app.TargetStatus) {
	select {
	case m.targetsCh <- statuses:
	default:
		select {
		case <-m.targetsCh:
		default:
		}
		select {
		case m.targetsCh <- statuses:
		default:
		}
	}
}

func (m *headlessModel) onRuntimeStatus(status string) {
	select {
	case m.statusCh <- status:
	default:
		select {
		case <-m.statusCh:
		default:
		}
		select {
		case m.statusCh <- status:
		default:
		}
	}
}

func (m *headlessModel) onRuntimeExit(err error) {
	if program := m.program; program != nil {
		program.Send(runDoneMsg{err: err})
	}
}

func (m *headlessModel) applyRuntimeStatus(status string) {
	m.status = status
	switch runstatus.Key(status) {
	case runstatus.KeyGenerating:
		m.tone = headlessview.ToneBusy
		m.busy = true
	case runstatus.KeyWatching:
		m.tone = headlessview.ToneGood
		m.running = true
		m.busy = false
	case runstatus.KeyRecovering, runstatus.KeyStopping:
		m.tone = headlessview.ToneWarn
	case runstatus.KeyFailed:
		m.tone = headlessview.ToneError
		m.busy = false
	default:
		m.tone = headlessview.ToneIdle
		m.busy = false
	}
}

func (m *headlessModel) refreshTargetHealth(now time.Time) {
	rows, detail := health.Compute(m.ui.OutDirValue(), now)
	m.targetRows = rows
	m.healthDetail = detail
	m.lastHealthRefresh = now
}

func friendlyRunError(err error) string {
	switch {
	case errors.Is(err, app.ErrOutputNotDirectory):
		return "The output path exists but is not a directory. Pick a folder instead."
	case errors.Is(err, fs.ErrNotExist):
		return "The output directory does not exist. Create it first; it will not be created for you."
	default:
		return "Icon generation failed: " + err.Error()
	}
}

func (m *headlessModel) cleanup() {
	m.cleanupOnce.Do(func() {
		m.logger.Debug("dashboard cleanup started")
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		m.runner.StopAndWait(2 * time.Second)
		m.logger.Debug("dashboard cleanup finished")
	})
}
