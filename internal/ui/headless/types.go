// Package headless implements the terminal dashboard. The model wires the
// watch controller, the logger, and the view package together; rendering and
// input reduction live in the view subpackage.
package headless

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tripagent-icongen/internal/app"
	"tripagent-icongen/internal/logging"
	"tripagent-icongen/internal/runtime"
	"tripagent-icongen/internal/ui/headless/health"
	headlessview "tripagent-icongen/internal/ui/headless/view"
)

const (
	headlessLogLineLimit = 2000
	updateTickInterval   = 120 * time.Millisecond

	logBufferSize     = 512
	targetsBufferSize = 16
	statusBufferSize  = 16
)

type logMsg string

type statusMsg string

type targetsUpdatedMsg []app.TargetStatus

type tickMsg struct{}

type quitNowMsg struct{}

type startResultMsg struct{ err error }

type runDoneMsg struct{ err error }

type generateDoneMsg struct{ err error }

type checkDoneMsg struct{ err error }

type modelDeps struct {
	runner      *runtime.Controller
	logger      *logging.Logger
	unsubscribe func()
	rootCtx     context.Context
	program     *tea.Program
}

// Runtime callbacks never touch the model directly; they push through these
// buffered channels and the waitFor commands pump them into Update.
type modelChannels struct {
	logCh     chan string
	targetsCh chan []app.TargetStatus
	statusCh  chan string
}

type modelRuntime struct {
	running  bool
	busy     bool
	quitting bool

	status string
	tone   headlessview.StatusTone

	targetRows        []health.Row
	healthDetail      string
	lastHealthRefresh time.Time
}

type headlessModel struct {
	buildVersion string
	modelDeps
	modelChannels
	modelRuntime
	cleanupOnce sync.Once
	ui          headlessview.State
}
