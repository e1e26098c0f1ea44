//go:build !headless

package gui

import (
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	badgeDotDiameter float32 = 10
	badgeHitWidth    float32 = 16
	badgeHitHeight   float32 = 16

	tooltipShowDelay = 180 * time.Millisecond
	tooltipHideDelay = 120 * time.Millisecond
)

// Dot palette shared by the runtime badge and the per-file rows.
var (
	dotIdleColor    = color.NRGBA{R: 0x9C, G: 0xA3, B: 0xAF, A: 0xFF}
	dotBusyColor    = color.NRGBA{R: 0xFB, G: 0xBF, B: 0x24, A: 0xFF}
	dotFreshColor   = color.NRGBA{R: 0x22, G: 0xC5, B: 0x5E, A: 0xFF}
	dotStaleColor   = color.NRGBA{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF}
	dotBrokenColor  = color.NRGBA{R: 0xF9, G: 0x73, B: 0x16, A: 0xFF}
	dotMissingColor = color.NRGBA{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF}
)

// tooltipHost is implemented by the controller, which owns the floating
// tooltip layer above the window content.
type tooltipHost interface {
	showTooltip(text string, pos fyne.Position)
	moveTooltip(pos fyne.Position)
	hideTooltip()
}

// statusBadge is a small colored dot with a hover tooltip. Show and hide
// are debounced so skimming the pointer across a row does not flicker.
type statusBadge struct {
	widget.BaseWidget

	mu      sync.Mutex
	dot     color.Color
	tooltip string

	host     tooltipHost
	hoverSeq atomic.Uint64
}

var _ desktop.Hoverable = (*statusBadge)(nil)

func newStatusBadge(host tooltipHost) *statusBadge {
	b := &statusBadge{host: host, dot: dotIdleColor}
	b.ExtendBaseWidget(b)
	return b
}

func (b *statusBadge) SetDotColor(c color.Color) {
	b.mu.Lock()
	b.dot = c
	b.mu.Unlock()
	b.Refresh()
}

func (b *statusBadge) SetTooltip(text string) {
	b.mu.Lock()
	b.tooltip = text
	b.mu.Unlock()
}

func (b *statusBadge) dotColor() color.Color {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dot
}

func (b *statusBadge) tooltipText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tooltip
}

func (b *statusBadge) MouseIn(ev *desktop.MouseEvent) {
	if b.host == nil {
		return
	}
	seq := b.hoverSeq.Add(1)
	pos := ev.AbsolutePosition
	time.AfterFunc(tooltipShowDelay, func() {
		if b.hoverSeq.Load() != seq {
			return
		}
		text := b.tooltipText()
		if text == "" {
			return
		}
		fyne.Do(func() {
			if b.hoverSeq.Load() != seq {
				return
			}
			b.host.showTooltip(text, pos)
		})
	})
}

func (b *statusBadge) MouseMoved(ev *desktop.MouseEvent) {
	if b.host == nil {
		return
	}
	pos := ev.AbsolutePosition
	fyne.Do(func() {
		b.host.moveTooltip(pos)
	})
}

func (b *statusBadge) MouseOut() {
	if b.host == nil {
		return
	}
	seq := b.hoverSeq.Add(1)
	time.AfterFunc(tooltipHideDelay, func() {
		if b.hoverSeq.Load() != seq {
			return
		}
		fyne.Do(func() {
			if b.hoverSeq.Load() != seq {
				return
			}
			b.host.hideTooltip()
		})
	})
}

func (b *statusBadge) MinSize() fyne.Size {
	b.ExtendBaseWidget(b)
	return fyne.NewSize(badgeHitWidth, badgeHitHeight)
}

func (b *statusBadge) CreateRenderer() fyne.WidgetRenderer {
	dot := canvas.NewCircle(b.dotColor())
	r := &statusBadgeRenderer{badge: b, circle: dot}
	r.Refresh()
	return r
}

type statusBadgeRenderer struct {
	badge  *statusBadge
	circle *canvas.Circle
}

func (r *statusBadgeRenderer) Destroy() {}

func (r *statusBadgeRenderer) Layout(size fyne.Size) {
	d := badgeDotDiameter
	r.circle.Resize(fyne.NewSize(d, d))
	r.circle.Move(fyne.NewPos((size.Width-d)/2, (size.Height-d)/2))
}

func (r *statusBadgeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(badgeHitWidth, badgeHitHeight)
}

func (r *statusBadgeRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.circle}
}

func (r *statusBadgeRenderer) Refresh() {
	r.circle.FillColor = r.badge.dotColor()
	r.circle.Refresh()
}
