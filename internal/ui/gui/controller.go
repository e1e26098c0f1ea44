//go:build !headless

// Package gui is the desktop dashboard: a live view of the generated
// icon set with generate, verify, and watch controls, a persisted
// settings sheet, and a detachable log window.
package gui

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tripagent-icongen/internal/app"
	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/icon"
	"tripagent-icongen/internal/logging"
	"tripagent-icongen/internal/runstatus"
	"tripagent-icongen/internal/runtime"
)

const (
	appWindowTitle   = "TripAgent Icongen"
	previewEdge      = 192
	tooltipCursorGap = 10
)

type controller struct {
	fyneApp fyne.App
	win     fyne.Window

	logger *logging.Logger
	runner *runtime.Controller

	appCtx    context.Context
	appCancel context.CancelFunc

	buildVersion string

	// settings is what actions run with, draft is what the sheet edits.
	settings config.GeneratorSettings
	draft    config.GeneratorSettings

	busy bool

	statusBadge *statusBadge
	statusLabel *widget.Label
	outDirValue *widget.Label

	watchButton    *widget.Button
	stopButton     *widget.Button
	generateButton *widget.Button
	checkButton    *widget.Button
	logsButton     *widget.Button

	targetBadges  map[string]*statusBadge
	targetReasons map[string]*widget.Label

	outDirEntry        *widget.Entry
	icoToggle          *switchToggle
	watchOnStartToggle *switchToggle
	saveButton         *widget.Button
	revertButton       *widget.Button
	dirtyHint          *widget.Label

	tooltipLayer *fyne.Container
	tooltipBG    *canvas.Rectangle
	tooltipText  *widget.Label

	trayMenu      *fyne.Menu
	trayWatchItem *fyne.MenuItem
	trayStopItem  *fyne.MenuItem

	logWin      fyne.Window
	logGrid     *widget.TextGrid
	logScroll   *container.Scroll
	logEntry    *widget.Entry
	logRows     []widget.TextGridRow
	logPlain    []string
	logFollow   bool
	logSelect   bool
	logWrapCols int
	logTickOnce sync.Once
	debugCheck  *widget.Check

	bgWG          sync.WaitGroup
	unsubscribe   func()
	healthBusy    atomic.Bool
	shuttingDown  atomic.Bool
	settingsDirty bool
	cleanupOnce   sync.Once
	quitOnce      sync.Once
}

// Run opens the dashboard and blocks until the window closes.
func Run(rootCtx context.Context, buildVersion string, opts config.Options) error {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Printf("warning: could not load saved settings: %v\n", err)
	}
	opts = config.MergeOptionsWithSettings(opts, settings)

	logger := logging.New(opts.Debug)
	logger.SetTerminalOutputEnabled(false)
	if !opts.NoFileLog {
		if err := logger.EnableFilePersistence(opts.LogDir, 0); err != nil {
			fmt.Printf("warning: session log file disabled: %v\n", err)
		}
	}
	defer logger.Close()

	logger.Info("starting icon dashboard",
		logging.Field("version", buildVersion),
		logging.Field("ui", "gui"),
	)

	fyneApp := fyneapp.NewWithID("dev.tripagent.icongen")
	fyneApp.Settings().SetTheme(newIcongenTheme())
	fyneApp.SetIcon(AppIconResource())

	appCtx, appCancel := context.WithCancel(rootCtx)
	c := &controller{
		fyneApp:       fyneApp,
		logger:        logger,
		runner:        runtime.NewController(rootCtx),
		appCtx:        appCtx,
		appCancel:     appCancel,
		buildVersion:  buildVersion,
		settings:      config.SettingsFromOptions(opts),
		logFollow:     true,
		targetBadges:  map[string]*statusBadge{},
		targetReasons: map[string]*widget.Label{},
	}
	c.draft = c.settings

	c.win = fyneApp.NewWindow(appWindowTitle)
	c.win.SetIcon(AppIconResource())
	c.win.SetMaster()
	c.win.Resize(fyne.NewSize(600, 540))
	c.win.SetCloseIntercept(c.requestQuit)

	c.buildUI()
	c.bindLogs()
	c.setupTray()
	c.refreshTargetHealth()

	if strings.TrimSpace(c.settings.OutDir) != "" && c.settings.WatchOnStart {
		fyne.Do(c.startWatch)
	}

	c.win.ShowAndRun()
	c.cleanup()
	return nil
}

func (c *controller) buildUI() {
	header := container.NewHBox(
		widget.NewLabelWithStyle(appWindowTitle, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("v"+c.buildVersion),
		layout.NewSpacer(),
	)

	c.statusBadge = newStatusBadge(c)
	c.statusBadge.SetTooltip("Generator status")
	c.statusLabel = widget.NewLabel(runstatus.Idle)
	statusRow := container.NewHBox(c.statusBadge, c.statusLabel, layout.NewSpacer())

	c.watchButton = widget.NewButtonWithIcon("Watch", theme.MediaPlayIcon(), c.startWatch)
	c.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), c.stopWatch)
	c.stopButton.Disable()
	c.generateButton = widget.NewButtonWithIcon("Generate", theme.ViewRefreshIcon(), c.generateNow)
	c.generateButton.Importance = widget.HighImportance
	c.checkButton = widget.NewButton("Check", c.checkNow)
	c.logsButton = widget.NewButton("Logs", c.showLogWindow)
	actions := container.NewHBox(
		c.watchButton, c.stopButton, layout.NewSpacer(),
		c.generateButton, c.checkButton, c.logsButton,
	)

	preview := canvas.NewImageFromImage(icon.Render(previewEdge))
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(132, 132))

	c.outDirValue = widget.NewLabel("")
	c.outDirValue.TextStyle = fyne.TextStyle{Monospace: true}
	c.outDirValue.Truncation = fyne.TextTruncateEllipsis
	outDirRow := container.NewHBox(widget.NewLabel("Output"), c.outDirValue)

	targetList := container.NewVBox()
	for _, target := range icon.Targets {
		badge := newStatusBadge(c)
		badge.SetTooltip(target.Name + " has not been verified yet")
		reason := widget.NewLabel("")
		name := widget.NewLabel(target.Name)
		name.TextStyle = fyne.TextStyle{Monospace: true}
		c.targetBadges[target.Name] = badge
		c.targetReasons[target.Name] = reason
		targetList.Add(container.NewHBox(badge, name, reason))
	}
	overview := container.NewBorder(nil, nil, container.NewVBox(preview), nil,
		container.NewVBox(outDirRow, targetList),
	)

	content := container.NewVBox(
		header,
		widget.NewSeparator(),
		statusRow,
		actions,
		widget.NewSeparator(),
		overview,
		widget.NewSeparator(),
		c.buildSettingsSection(),
	)

	c.tooltipBG = canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	c.tooltipBG.CornerRadius = 6
	c.tooltipBG.StrokeColor = theme.Color(theme.ColorNameSeparator)
	c.tooltipBG.StrokeWidth = 1
	c.tooltipText = widget.NewLabel("")
	c.tooltipLayer = container.NewWithoutLayout(c.tooltipBG, c.tooltipText)
	c.tooltipLayer.Hide()

	c.win.SetContent(container.NewStack(container.NewPadded(content), c.tooltipLayer))
	c.refreshOverview()
	c.loadSettingsIntoForm()
}

func (c *controller) buildSettingsSection() fyne.CanvasObject {
	c.outDirEntry = widget.NewEntry()
	c.outDirEntry.SetPlaceHolder(config.DefaultOutDir)
	c.outDirEntry.OnChanged = func(text string) {
		c.draft.OutDir = text
		c.refreshSettingsDirty()
	}
	browse := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), c.showDirPicker)
	outDirRow := container.NewBorder(nil, nil, nil, browse, c.outDirEntry)

	c.icoToggle = newSwitchToggle(func(checked bool) {
		c.draft.Ico = checked
		c.refreshSettingsDirty()
	})
	c.watchOnStartToggle = newSwitchToggle(func(checked bool) {
		c.draft.WatchOnStart = checked
		c.refreshSettingsDirty()
	})

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Output directory"), outDirRow,
		widget.NewLabel("favicon.ico bundle"), container.NewHBox(c.icoToggle),
		widget.NewLabel("Watch on launch"), container.NewHBox(c.watchOnStartToggle),
	)

	c.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), c.saveSettings)
	c.revertButton = widget.NewButton("Revert", c.revertSettings)
	c.dirtyHint = widget.NewLabel("unsaved changes")
	c.dirtyHint.Hide()
	saveRow := container.NewHBox(c.saveButton, c.revertButton, c.dirtyHint, layout.NewSpacer())

	return container.NewVBox(
		widget.NewLabelWithStyle("Settings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		saveRow,
	)
}

// UI-thread only below this point.

func (c *controller) refreshOverview() {
	dir := strings.TrimSpace(c.settings.OutDir)
	if dir == "" {
		c.outDirValue.SetText("not set")
		return
	}
	c.outDirValue.SetText(dir)
}

func (c *controller) loadSettingsIntoForm() {
	c.outDirEntry.SetText(c.draft.OutDir)
	c.icoToggle.SetChecked(c.draft.Ico)
	c.watchOnStartToggle.SetChecked(c.draft.WatchOnStart)
	if c.debugCheck != nil {
		c.debugCheck.SetChecked(c.draft.Debug)
	}
	c.refreshSettingsDirty()
}

func (c *controller) refreshSettingsDirty() {
	dirty := c.draft != c.settings
	if dirty == c.settingsDirty {
		return
	}
	c.settingsDirty = dirty
	if dirty {
		c.saveButton.Enable()
		c.revertButton.Enable()
		c.dirtyHint.Show()
		return
	}
	c.saveButton.Disable()
	c.revertButton.Disable()
	c.dirtyHint.Hide()
}

func (c *controller) saveSettings() {
	next := c.draft
	next.OutDir = strings.TrimSpace(next.OutDir)
	if err := config.SaveSettings(next); err != nil {
		dialog.ShowError(fmt.Errorf("saving settings: %w", err), c.win)
		return
	}
	c.draft = next
	c.settings = next
	c.logger.SetDebugEnabled(next.Debug)
	c.logger.Info("settings saved", logging.Field("out_dir", next.OutDir))
	c.loadSettingsIntoForm()
	c.refreshOverview()
	c.refreshTargetHealth()
}

func (c *controller) revertSettings() {
	c.draft = c.settings
	c.logger.SetDebugEnabled(c.settings.Debug)
	c.loadSettingsIntoForm()
}

func (c *controller) applyRuntimeStatus(status string) {
	var dot color.Color
	switch runstatus.Key(status) {
	case runstatus.KeyGenerating:
		dot = dotBusyColor
		c.busy = true
	case runstatus.KeyWatching:
		dot = dotFreshColor
		c.busy = false
	case runstatus.KeyRecovering, runstatus.KeyStopping:
		dot = dotStaleColor
	case runstatus.KeyFailed:
		dot = dotMissingColor
		c.busy = false
	default:
		dot = dotIdleColor
		c.busy = false
	}
	c.statusBadge.SetDotColor(dot)
	c.statusLabel.SetText(status)
	c.updateActionStates()
}

func (c *controller) updateActionStates() {
	running := c.runner.IsRunning()
	if running {
		c.watchButton.Disable()
		c.stopButton.Enable()
	} else {
		c.watchButton.Enable()
		c.stopButton.Disable()
	}
	if c.busy {
		c.generateButton.Disable()
		c.checkButton.Disable()
	} else {
		c.generateButton.Enable()
		c.checkButton.Enable()
	}
	c.refreshTrayItems()
}

func (c *controller) applyTargetStatuses(statuses []app.TargetStatus) {
	for _, status := range statuses {
		badge, ok := c.targetBadges[status.Target.Name]
		if !ok {
			continue
		}
		badge.SetDotColor(targetDotColor(status.State))
		badge.SetTooltip(targetTooltip(status))
		c.targetReasons[status.Target.Name].SetText(targetSummary(status))
	}
}

// refreshTargetHealth verifies the on-disk set off the UI thread. A
// verify renders each target for byte comparison, which is too slow to
// run inline.
func (c *controller) refreshTargetHealth() {
	dir := strings.TrimSpace(c.settings.OutDir)
	if dir == "" {
		for _, target := range icon.Targets {
			c.targetBadges[target.Name].SetDotColor(dotIdleColor)
			c.targetBadges[target.Name].SetTooltip("Set an output directory in Settings first")
			c.targetReasons[target.Name].SetText("")
		}
		return
	}
	if !c.healthBusy.CompareAndSwap(false, true) {
		return
	}
	c.bgWG.Go(func() {
		statuses := app.VerifyAll(dir)
		c.healthBusy.Store(false)
		if c.shuttingDown.Load() {
			return
		}
		fyne.Do(func() {
			c.applyTargetStatuses(statuses)
		})
	})
}

func targetDotColor(state app.TargetState) color.Color {
	switch state {
	case app.StateFresh:
		return dotFreshColor
	case app.StateMissing:
		return dotMissingColor
	case app.StateInvalid:
		return dotBrokenColor
	default:
		return dotStaleColor
	}
}

func targetSummary(status app.TargetStatus) string {
	switch status.State {
	case app.StateFresh:
		return fmt.Sprintf("%s, %d bytes", status.Target.Dimensions(), status.Bytes)
	case app.StateMissing:
		return "not generated yet"
	case app.StateInvalid:
		return "not a readable PNG"
	case app.StateWrongSize:
		if status.Detail != "" {
			return status.Detail
		}
		return "wrong dimensions"
	default:
		return "differs from a fresh render"
	}
}

func targetTooltip(status app.TargetStatus) string {
	if status.State == app.StateFresh {
		return fmt.Sprintf("%s is fresh, written %s", status.Target.Name, status.ModTime.Format("Jan 2 15:04:05"))
	}
	return fmt.Sprintf("%s needs regeneration: %s", status.Target.Name, targetSummary(status))
}

// Tooltip layer. The badges call these through the tooltipHost interface.

func (c *controller) showTooltip(text string, pos fyne.Position) {
	c.tooltipText.SetText(text)
	c.tooltipLayer.Show()
	c.positionTooltip(pos)
}

func (c *controller) moveTooltip(pos fyne.Position) {
	if !c.tooltipLayer.Visible() {
		return
	}
	c.positionTooltip(pos)
}

func (c *controller) hideTooltip() {
	c.tooltipLayer.Hide()
}

func (c *controller) positionTooltip(pos fyne.Position) {
	pad := theme.Padding()
	min := c.tooltipText.MinSize()
	w := min.Width + 2*pad
	h := min.Height + 2*pad

	bounds := c.win.Canvas().Size()
	x := pos.X + tooltipCursorGap
	y := pos.Y + tooltipCursorGap
	if x+w > bounds.Width {
		x = bounds.Width - w
	}
	if y+h > bounds.Height {
		y = pos.Y - h - tooltipCursorGap
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	c.tooltipBG.Resize(fyne.NewSize(w, h))
	c.tooltipBG.Move(fyne.NewPos(x, y))
	c.tooltipText.Resize(min)
	c.tooltipText.Move(fyne.NewPos(x+pad, y+pad))
	c.tooltipLayer.Refresh()
}
