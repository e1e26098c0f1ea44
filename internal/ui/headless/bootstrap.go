package headless

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"tripagent-icongen/internal/app"
	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/logging"
	"tripagent-icongen/internal/runstatus"
	"tripagent-icongen/internal/runtime"
	headlessview "tripagent-icongen/internal/ui/headless/view"
)

// Run starts the dashboard and blocks until the user quits or the program
// fails. Persisted settings fill in anything the CLI flags left unset.
func Run(rootCtx context.Context, buildVersion string, opts config.Options) {
	if saved, err := config.LoadSettings(); err == nil {
		opts = config.MergeOptionsWithSettings(opts, saved)
	}

	logger := logging.New(opts.Debug)
	logger.SetTerminalOutputEnabled(false)
	if !opts.NoFileLog {
		if err := logger.EnableFilePersistence(opts.LogDir, 0); err != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging unavailable: %v\n", err)
		}
	}
	defer logger.Close()

	logger.Info("starting icon dashboard", logging.Field("version", buildVersion))

	model := newHeadlessModel(rootCtx, buildVersion, opts, logger)
	defer model.cleanup()

	zone.NewGlobal()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	model.program = program

	_, runErr := program.Run()
	forceDisableMouseTracking()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "dashboard terminated abnormally: %v\n", runErr)
	}
}

func newHeadlessModel(rootCtx context.Context, buildVersion string, opts config.Options, logger *logging.Logger) *headlessModel {
	m := &headlessModel{
		buildVersion: buildVersion,
		modelDeps: modelDeps{
			runner:  runtime.NewController(rootCtx),
			logger:  logger,
			rootCtx: rootCtx,
		},
		modelChannels: modelChannels{
			logCh:     make(chan string, logBufferSize),
			targetsCh: make(chan []app.TargetStatus, targetsBufferSize),
			statusCh:  make(chan string, statusBufferSize),
		},
		ui: headlessview.NewState(opts),
	}
	m.status = runstatus.Idle
	m.tone = headlessview.ToneIdle
	m.unsubscribe = logger.Subscribe(func(event logging.Event) {
		m.enqueueLogLine(strings.TrimRight(logging.FormatEventANSI(event), "\n"))
	})
	m.refreshTargetHealth(time.Now())
	m.ui.Preview = renderPreview(previewColumns)
	return m
}

func (m *headlessModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.waitForLog(),
		m.waitForTargets(),
		m.waitForStatus(),
		tickCmd(),
		m.ui.Spinner.Tick,
	}
	if m.ui.AutoWatch && m.ui.OutDirValue() != "" {
		cmds = append(cmds, m.startWatchCmd())
	}
	return tea.Batch(cmds...)
}

// enqueueLogLine never blocks the logging goroutine. When the buffer is
// full the oldest line is dropped to make room.
func (m *headlessModel) enqueueLogLine(line string) {
	select {
	case m.logCh <- line:
	default:
		select {
		case <-m.logCh:
		default:
		}
		select {
		case m.logCh <- line:
		default:
		}
	}
}

func (m *headlessModel) waitForLog() tea.Cmd {
	return func() tea.Msg { return logMsg(<-m.logCh) }
}

func (m *headlessModel) waitForTargets() tea.Cmd {
	return func() tea.Msg { return targetsUpdatedMsg(<-m.targetsCh) }
}

func (m *headlessModel) waitForStatus() tea.Cmd {
	return func() tea.Msg { return statusMsg(<-m.statusCh) }
}

func tickCmd() tea.Cmd {
	return tea.Tick(updateTickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

// Some terminals keep reporting mouse motion after an abnormal exit and
// garble the shell, so the disable sequences go out unconditionally.
func forceDisableMouseTracking() {
	fmt.Print("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l")
}
