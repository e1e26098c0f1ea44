//go:build !headless

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Pine greens matching the generated artwork. The dark variant uses the
// lighter leaf tone for contrast against dark widget backgrounds.
var (
	brandPrimaryDark  = color.NRGBA{R: 0x16, G: 0x65, B: 0x34, A: 0xFF}
	brandPrimaryLight = color.NRGBA{R: 0x22, G: 0xC5, B: 0x5E, A: 0xFF}
)

type icongenTheme struct {
	base fyne.Theme
}

func newIcongenTheme() fyne.Theme {
	return &icongenTheme{base: theme.DefaultTheme()}
}

func (t *icongenTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameHyperlink:
		if variant == theme.VariantDark {
			return brandPrimaryLight
		}
		return brandPrimaryDark
	}
	return t.base.Color(name, variant)
}

func (t *icongenTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *icongenTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *icongenTheme) Size(name fyne.ThemeSizeName) float32 {
	return t.base.Size(name)
}
