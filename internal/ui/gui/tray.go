//go:build !headless

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// setupTray installs a tray icon where the desktop supports one. The
// menu mirrors the window actions so a generate or watch can be kicked
// off without raising the window.
func (c *controller) setupTray() {
	desk, ok := c.fyneApp.(desktop.App)
	if !ok {
		return
	}

	open := fyne.NewMenuItem("Open "+appWindowTitle, func() {
		c.win.Show()
		c.win.RequestFocus()
	})
	generate := fyne.NewMenuItem("Generate now", c.generateNow)
	c.trayWatchItem = fyne.NewMenuItem("Start watching", c.startWatch)
	c.trayStopItem = fyne.NewMenuItem("Stop watching", c.stopWatch)
	c.trayStopItem.Disabled = true
	logs := fyne.NewMenuItem("Show logs", c.showLogWindow)
	exit := fyne.NewMenuItem("Exit", c.quitApp)

	c.trayMenu = fyne.NewMenu(appWindowTitle,
		open,
		fyne.NewMenuItemSeparator(),
		generate,
		c.trayWatchItem,
		c.trayStopItem,
		logs,
		fyne.NewMenuItemSeparator(),
		exit,
	)
	desk.SetSystemTrayMenu(c.trayMenu)
	desk.SetSystemTrayIcon(AppIconResource())
}

func (c *controller) refreshTrayItems() {
	if c.trayMenu == nil {
		return
	}
	running := c.runner.IsRunning()
	c.trayWatchItem.Disabled = running
	c.trayStopItem.Disabled = !running
	c.trayMenu.Refresh()
}
