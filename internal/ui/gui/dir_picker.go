//go:build !headless

package gui

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// showDirPicker opens a directory chooser seeded from the draft output
// directory. Choosing a folder fills the settings entry but does not
// save, and never creates anything on disk.
func (c *controller) showDirPicker() {
	start := strings.TrimSpace(c.draft.OutDir)
	if info, err := os.Stat(start); start == "" || err != nil || !info.IsDir() {
		if wd, err := os.Getwd(); err == nil {
			start = wd
		} else {
			start = string(filepath.Separator)
		}
	}
	if abs, err := filepath.Abs(start); err == nil {
		start = abs
	}

	win := c.fyneApp.NewWindow("Choose output directory")
	win.SetIcon(AppIconResource())
	win.Resize(fyne.NewSize(460, 380))

	picker := &dirPicker{controller: c, win: win, current: start}
	picker.build()
	win.Show()
}

type dirPicker struct {
	controller *controller
	win        fyne.Window

	current string
	entries []string

	pathEntry *widget.Entry
	list      *widget.List
}

func (p *dirPicker) build() {
	p.pathEntry = widget.NewEntry()
	p.pathEntry.SetText(p.current)
	p.pathEntry.OnSubmitted = func(text string) {
		p.navigate(strings.TrimSpace(text))
	}
	up := widget.NewButton("Up", func() {
		p.navigate(filepath.Dir(p.current))
	})

	p.list = widget.NewList(
		func() int { return len(p.entries) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.FolderIcon()), widget.NewLabel("folder"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			row := obj.(*fyne.Container)
			row.Objects[1].(*widget.Label).SetText(p.entries[id])
		},
	)
	p.list.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(p.entries) {
			return
		}
		p.navigate(filepath.Join(p.current, p.entries[id]))
		p.list.UnselectAll()
	}

	use := widget.NewButtonWithIcon("Use This Folder", theme.ConfirmIcon(), func() {
		p.controller.outDirEntry.SetText(p.current)
		p.win.Close()
	})
	use.Importance = widget.HighImportance
	cancel := widget.NewButton("Cancel", p.win.Close)

	top := container.NewBorder(nil, nil, nil, up, p.pathEntry)
	bottom := container.NewHBox(layout.NewSpacer(), cancel, use)
	p.win.SetContent(container.NewBorder(top, bottom, nil, nil, p.list))
	p.reload()
}

func (p *dirPicker) navigate(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		p.pathEntry.SetText(p.current)
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p.current = path
	p.pathEntry.SetText(path)
	p.reload()
}

func (p *dirPicker) reload() {
	p.entries = p.entries[:0]
	if entries, err := os.ReadDir(p.current); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			p.entries = append(p.entries, entry.Name())
		}
		slices.Sort(p.entries)
	}
	p.list.Refresh()
}
