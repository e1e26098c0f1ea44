//go:build !headless

package gui

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tripagent-icongen/internal/logging"
)

const (
	logRowLimit      = 1000
	logRewrapPeriod  = 250 * time.Millisecond
	logWindowMinCols = 20
)

// appendLog runs on the UI thread via bindLogs. Rows are retained even
// while the window is closed so reopening shows recent history.
func (c *controller) appendLog(event logging.Event) {
	line := strings.TrimRight(logging.FormatEventANSI(event), "\n")
	c.logRows = append(c.logRows, ansiLineToRow(line))
	c.logPlain = append(c.logPlain, plainTextOf(line))
	if len(c.logRows) > logRowLimit {
		c.logRows = c.logRows[len(c.logRows)-logRowLimit:]
		c.logPlain = c.logPlain[len(c.logPlain)-logRowLimit:]
	}
	if c.logWin == nil {
		return
	}
	if c.logSelect {
		c.refreshLogEntry()
		return
	}
	c.renderLogGrid()
}

func (c *controller) showLogWindow() {
	if c.logWin != nil {
		c.logWin.Show()
		c.logWin.RequestFocus()
		return
	}

	win := c.fyneApp.NewWindow(appWindowTitle + " Logs")
	win.SetIcon(AppIconResource())
	win.Resize(fyne.NewSize(700, 420))

	c.logGrid = widget.NewTextGrid()
	c.logScroll = container.NewScroll(c.logGrid)
	c.logScroll.OnScrolled = func(offset fyne.Position) {
		bottom := c.logGrid.MinSize().Height - c.logScroll.Size().Height
		c.logFollow = offset.Y >= bottom-4
	}

	c.logEntry = widget.NewMultiLineEntry()
	c.logEntry.Wrapping = fyne.TextWrapWord
	c.logEntry.TextStyle = fyne.TextStyle{Monospace: true}
	c.logEntry.Hide()

	followButton := widget.NewButtonWithIcon("Follow", theme.MoveDownIcon(), func() {
		c.logFollow = true
		if c.logScroll != nil {
			c.logScroll.ScrollToBottom()
		}
	})
	selectCheck := widget.NewCheck("Selectable", c.setLogSelectable)
	c.debugCheck = widget.NewCheck("Debug", func(on bool) {
		c.draft.Debug = on
		c.logger.SetDebugEnabled(on)
		c.refreshSettingsDirty()
	})
	c.debugCheck.SetChecked(c.draft.Debug)
	clearButton := widget.NewButton("Clear", c.clearLog)
	toolbar := container.NewHBox(followButton, selectCheck, c.debugCheck, layout.NewSpacer(), clearButton)

	win.SetContent(container.NewBorder(toolbar, nil, nil, nil,
		container.NewStack(c.logScroll, c.logEntry),
	))
	win.SetOnClosed(func() {
		c.logWin = nil
		c.logGrid = nil
		c.logScroll = nil
		c.logEntry = nil
		c.debugCheck = nil
		c.logSelect = false
		c.logWrapCols = 0
	})

	c.logWin = win
	c.logFollow = true
	c.ensureLogRewrapLoop()
	c.renderLogGrid()
	win.Show()
}

func (c *controller) renderLogGrid() {
	if c.logGrid == nil {
		return
	}
	rows := make([]widget.TextGridRow, 0, len(c.logRows))
	for _, row := range c.logRows {
		rows = append(rows, wrapRow(row, c.logWrapCols)...)
	}
	c.logGrid.Rows = rows
	c.logGrid.Refresh()
	if c.logFollow {
		c.logScroll.ScrollToBottom()
	}
}

func (c *controller) refreshLogEntry() {
	if c.logEntry == nil {
		return
	}
	c.logEntry.SetText(strings.Join(c.logPlain, "\n"))
}

func (c *controller) setLogSelectable(on bool) {
	c.logSelect = on
	if c.logEntry == nil || c.logScroll == nil {
		return
	}
	if on {
		c.refreshLogEntry()
		c.logScroll.Hide()
		c.logEntry.Show()
		return
	}
	c.logEntry.Hide()
	c.logScroll.Show()
	c.renderLogGrid()
}

func (c *controller) clearLog() {
	c.logRows = nil
	c.logPlain = nil
	if c.logSelect {
		c.refreshLogEntry()
		return
	}
	c.renderLogGrid()
}

// The grid has no reflow of its own. A slow poll watches for width
// changes and rewraps the retained rows when the column count moves.
func (c *controller) ensureLogRewrapLoop() {
	c.logTickOnce.Do(func() {
		c.bgWG.Go(func() {
			ticker := time.NewTicker(logRewrapPeriod)
			defer ticker.Stop()
			for {
				select {
				case <-c.appCtx.Done():
					return
				case <-ticker.C:
				}
				if c.shuttingDown.Load() {
					return
				}
				fyne.Do(c.rewrapIfResized)
			}
		})
	})
}

func (c *controller) rewrapIfResized() {
	if c.logScroll == nil || c.logSelect {
		return
	}
	cols := logWrapColumns(c.logScroll.Size().Width)
	if cols == c.logWrapCols {
		return
	}
	c.logWrapCols = cols
	c.renderLogGrid()
}

func logWrapColumns(width float32) int {
	cell := fyne.MeasureText("M", theme.TextSize(), fyne.TextStyle{Monospace: true})
	if cell.Width <= 0 {
		return logWindowMinCols
	}
	cols := int(width/cell.Width) - 1
	if cols < logWindowMinCols {
		cols = logWindowMinCols
	}
	return cols
}
