//go:build !headless

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	toggleTrackWidth  float32 = 40
	toggleTrackHeight float32 = 20
	toggleThumbInset  float32 = 3
)

// switchToggle is a compact on/off slider used on the settings sheet.
// Tapping flips the state and reports it through OnChanged.
type switchToggle struct {
	widget.BaseWidget

	checked  bool
	disabled bool

	OnChanged func(checked bool)
}

func newSwitchToggle(changed func(bool)) *switchToggle {
	t := &switchToggle{OnChanged: changed}
	t.ExtendBaseWidget(t)
	return t
}

func (t *switchToggle) Checked() bool { return t.checked }

// SetChecked updates the visual state without firing OnChanged, for
// loading stored settings into the sheet.
func (t *switchToggle) SetChecked(checked bool) {
	if t.checked == checked {
		return
	}
	t.checked = checked
	t.Refresh()
}

func (t *switchToggle) Disable() {
	if t.disabled {
		return
	}
	t.disabled = true
	t.Refresh()
}

func (t *switchToggle) Enable() {
	if !t.disabled {
		return
	}
	t.disabled = false
	t.Refresh()
}

func (t *switchToggle) Disabled() bool { return t.disabled }

func (t *switchToggle) Tapped(_ *fyne.PointEvent) {
	if t.disabled {
		return
	}
	t.checked = !t.checked
	t.Refresh()
	if t.OnChanged != nil {
		t.OnChanged(t.checked)
	}
}

func (t *switchToggle) Cursor() desktop.Cursor { return desktop.PointerCursor }

func (t *switchToggle) MinSize() fyne.Size {
	t.ExtendBaseWidget(t)
	return fyne.NewSize(toggleTrackWidth, toggleTrackHeight)
}

func (t *switchToggle) CreateRenderer() fyne.WidgetRenderer {
	track := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	track.CornerRadius = toggleTrackHeight / 2
	thumb := canvas.NewCircle(theme.Color(theme.ColorNameForeground))
	r := &switchToggleRenderer{toggle: t, track: track, thumb: thumb}
	r.Refresh()
	return r
}

type switchToggleRenderer struct {
	toggle *switchToggle
	track  *canvas.Rectangle
	thumb  *canvas.Circle
}

func (r *switchToggleRenderer) Destroy() {}

func (r *switchToggleRenderer) Layout(size fyne.Size) {
	r.track.Resize(size)
	r.track.Move(fyne.NewPos(0, 0))
	r.placeThumb(size)
}

func (r *switchToggleRenderer) MinSize() fyne.Size {
	return fyne.NewSize(toggleTrackWidth, toggleTrackHeight)
}

func (r *switchToggleRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.track, r.thumb}
}

func (r *switchToggleRenderer) Refresh() {
	switch {
	case r.toggle.disabled:
		r.track.FillColor = theme.Color(theme.ColorNameDisabledButton)
		r.thumb.FillColor = theme.Color(theme.ColorNameDisabled)
	case r.toggle.checked:
		r.track.FillColor = theme.Color(theme.ColorNamePrimary)
		r.thumb.FillColor = theme.Color(theme.ColorNameForegroundOnPrimary)
	default:
		r.track.FillColor = theme.Color(theme.ColorNameInputBackground)
		r.thumb.FillColor = theme.Color(theme.ColorNameForeground)
	}
	r.placeThumb(r.toggle.Size())
	r.track.Refresh()
	r.thumb.Refresh()
}

func (r *switchToggleRenderer) placeThumb(size fyne.Size) {
	d := size.Height - 2*toggleThumbInset
	if d <= 0 {
		d = toggleTrackHeight - 2*toggleThumbInset
	}
	r.thumb.Resize(fyne.NewSize(d, d))
	x := toggleThumbInset
	if r.toggle.checked {
		x = size.Width - d - toggleThumbInset
	}
	r.thumb.Move(fyne.NewPos(x, (size.Height-d)/2))
}
