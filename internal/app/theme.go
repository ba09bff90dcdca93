package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PerforatorTheme wraps the default theme with a fixed light or dark
// variant and a brass accent suited to fabrication previews.
type PerforatorTheme struct {
	Variant fyne.ThemeVariant
}

var _ fyne.Theme = (*PerforatorTheme)(nil)

func (t *PerforatorTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0xB8, G: 0x86, B: 0x0B, A: 0xFF} // Brass
	default:
		return theme.DefaultTheme().Color(name, t.Variant)
	}
}

func (t *PerforatorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *PerforatorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *PerforatorTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
