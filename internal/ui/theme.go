package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// LoadPlanTheme wraps the default Fyne theme with compact sizing and a
// fixed light/dark variant taken from the app config.
type LoadPlanTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	follow  bool // use the variant the system asks for
}

// NewLoadPlanTheme returns a theme for the config's theme name:
// "light", "dark" or anything else for the system default.
func NewLoadPlanTheme(name string) *LoadPlanTheme {
	t := &LoadPlanTheme{base: theme.DefaultTheme()}
	t.SetThemeName(name)
	return t
}

// SetThemeName switches between light, dark and system variants.
func (t *LoadPlanTheme) SetThemeName(name string) {
	switch name {
	case "light":
		t.variant, t.follow = theme.VariantLight, false
	case "dark":
		t.variant, t.follow = theme.VariantDark, false
	default:
		t.follow = true
	}
}

func (t *LoadPlanTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.follow {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

func (t *LoadPlanTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *LoadPlanTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *LoadPlanTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
