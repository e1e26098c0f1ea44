//go:build !headless

package gui

import (
	"sync"

	"fyne.io/fyne/v2"

	"tripagent-icongen/internal/icon"
)

const appIconEdge = 256

var (
	appIconOnce sync.Once
	appIconRes  fyne.Resource
)

// AppIconResource returns the window and tray icon. The artwork is the
// same pine mark the generator writes, rendered once at startup instead
// of shipping a baked-in copy that could drift from the real output.
func AppIconResource() fyne.Resource {
	appIconOnce.Do(func() {
		data, err := icon.EncodePNG(icon.Render(appIconEdge))
		if err != nil {
			appIconRes = fyne.NewStaticResource("tripagent-icongen.png", nil)
			return
		}
		appIconRes = fyne.NewStaticResource("tripagent-icongen.png", data)
	})
	return appIconRes
}
