//go:build !headless

package gui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"tripagent-icongen/internal/app"
	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/logging"
	"tripagent-icongen/internal/runctx"
	"tripagent-icongen/internal/runstatus"
	"tripagent-icongen/internal/runtime"
)

const (
	logEventBuffer   = 256
	runnerStopWait   = 3 * time.Second
	backgroundWait   = 2 * time.Second
	missingDirNotice = "Set an output directory in Settings first."
)

// Actions run with the saved settings, never the unsaved draft.
func (c *controller) currentOptions() config.Options {
	return config.Options{
		OutDir: strings.TrimSpace(c.settings.OutDir),
		Ico:    c.settings.Ico,
		Watch:  true,
		GUI:    true,
		Debug:  c.settings.Debug,
	}
}

// bindLogs fans logger events into the log window. The subscription
// callback must never block, so events cross a buffered channel that
// sheds the oldest entry under pressure.
func (c *controller) bindLogs() {
	events := make(chan logging.Event, logEventBuffer)
	c.unsubscribe = c.logger.Subscribe(func(event logging.Event) {
		for {
			select {
			case events <- event:
				return
			default:
			}
			select {
			case <-events:
			default:
			}
		}
	})
	c.bgWG.Go(func() {
		for {
			event, ok := runctx.RecvOrDone(c.appCtx, "gui log feed", c.logger, events)
			if !ok {
				return
			}
			if c.shuttingDown.Load() {
				return
			}
			fyne.Do(func() {
				c.appendLog(event)
			})
		}
	})
}

func (c *controller) newGenerator(opts config.Options) *app.Generator {
	return app.New(opts, c.logger, app.Callbacks{
		OnTargetsUpdate: func(statuses []app.TargetStatus) {
			fyne.Do(func() { c.applyTargetStatuses(statuses) })
		},
		OnStatusChange: func(status string) {
			fyne.Do(func() { c.applyRuntimeStatus(status) })
		},
	})
}

func (c *controller) startWatch() {
	if c.shuttingDown.Load() || c.runner.IsRunning() {
		return
	}
	opts := c.currentOptions()
	if opts.OutDir == "" {
		dialog.ShowInformation("Output directory", missingDirNotice, c.win)
		return
	}
	err := c.runner.Start(opts, c.logger, runtime.StartHooks{
		OnTargetsUpdate: func(statuses []app.TargetStatus) {
			fyne.Do(func() { c.applyTargetStatuses(statuses) })
		},
		OnStatus: func(status string) {
			fyne.Do(func() { c.applyRuntimeStatus(status) })
		},
		OnExit: func(err error) {
			fyne.Do(func() { c.onWatchExit(err) })
		},
	})
	if err != nil {
		dialog.ShowError(err, c.win)
		return
	}
	c.applyRuntimeStatus(runstatus.Generating)
}

func (c *controller) stopWatch() {
	if !c.runner.IsRunning() {
		return
	}
	c.applyRuntimeStatus(runstatus.Stopping)
	c.runner.Stop()
}

func (c *controller) onWatchExit(err error) {
	if c.shuttingDown.Load() {
		return
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		c.applyRuntimeStatus(runstatus.Failed)
		dialog.ShowError(errors.New(friendlyRunError(err)), c.win)
	} else {
		c.applyRuntimeStatus(runstatus.Idle)
	}
	c.refreshTargetHealth()
}

func (c *controller) generateNow() {
	if c.busy || c.shuttingDown.Load() {
		return
	}
	if c.runner.IsRunning() {
		c.runner.RequestSweep("manual refresh")
		return
	}
	opts := c.currentOptions()
	if opts.OutDir == "" {
		dialog.ShowInformation("Output directory", missingDirNotice, c.win)
		return
	}
	gen := c.newGenerator(opts)
	c.busy = true
	c.applyRuntimeStatus(runstatus.Generating)
	c.bgWG.Go(func() {
		err := gen.GenerateOnce(c.appCtx)
		if c.shuttingDown.Load() {
			return
		}
		fyne.Do(func() {
			c.busy = false
			if err != nil {
				c.applyRuntimeStatus(runstatus.Failed)
				dialog.ShowError(errors.New(friendlyRunError(err)), c.win)
			}
			c.updateActionStates()
			c.refreshTargetHealth()
		})
	})
}

func (c *controller) checkNow() {
	if c.busy || c.shuttingDown.Load() {
		return
	}
	opts := c.currentOptions()
	if opts.OutDir == "" {
		dialog.ShowInformation("Output directory", missingDirNotice, c.win)
		return
	}
	gen := c.newGenerator(opts)
	c.busy = true
	c.statusBadge.SetDotColor(dotBusyColor)
	c.statusLabel.SetText("Checking")
	c.updateActionStates()
	c.bgWG.Go(func() {
		statuses, err := gen.Check()
		if c.shuttingDown.Load() {
			return
		}
		fyne.Do(func() {
			c.busy = false
			if !c.runner.IsRunning() {
				c.applyRuntimeStatus(runstatus.Idle)
			} else {
				c.applyRuntimeStatus(runstatus.Watching)
			}
			c.showCheckResult(statuses, err)
		})
	})
}

func (c *controller) showCheckResult(statuses []app.TargetStatus, err error) {
	switch {
	case err == nil:
		dialog.ShowInformation("Check", fmt.Sprintf("All %d icons are fresh.", len(statuses)), c.win)
	case errors.Is(err, app.ErrIconsNotFresh):
		stale := 0
		for _, status := range statuses {
			if !status.Fresh() {
				stale++
			}
		}
		dialog.ShowInformation("Check",
			fmt.Sprintf("%d of %d icons need regeneration.", stale, len(statuses)), c.win)
	default:
		dialog.ShowError(errors.New(friendlyRunError(err)), c.win)
	}
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

func (c *controller) cleanup() {
	c.cleanupOnce.Do(func() {
		c.shuttingDown.Store(true)
		c.logger.Debug("gui cleanup started")
		c.appCancel()
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		if !c.runner.StopAndWait(runnerStopWait) {
			c.logger.Warn("watch service did not stop before the deadline")
		}
		if !waitGroupWithTimeout(&c.bgWG, backgroundWait) {
			c.logger.Warn("background tasks still running at exit")
		}
		c.logger.Debug("gui cleanup finished")
	})
}

func waitGroupWithTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (c *controller) quitApp() {
	c.quitOnce.Do(func() {
		c.shuttingDown.Store(true)
		c.cleanup()
		c.fyneApp.Quit()
	})
}

func (c *controller) requestQuit() {
	if c.shuttingDown.Load() {
		return
	}
	if c.runner.IsRunning() {
		dialog.ShowConfirm("Quit "+appWindowTitle+"?",
			"The watch service is still running. Exit anyway?",
			func(confirmed bool) {
				if confirmed {
					c.quitApp()
				}
			}, c.win)
		return
	}
	c.quitApp()
}
