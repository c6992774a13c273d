package domain

import "strings"

// Theme is the active color scheme. It is global UI state with no relation to
// the identity.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeGray    Theme = "gray"
	ThemeOrange  Theme = "orange"
	ThemeTeal    Theme = "teal"
)

var themeGradients = map[Theme]string{
	ThemeDefault: "linear(to-b, #2c3e50, #4ca1af)",
	ThemeGray:    "linear(to-b, gray.700, gray.500)",
	ThemeOrange:  "linear(to-b, orange.400, yellow.300)",
	ThemeTeal:    "linear(to-b, teal.500, blue.300)",
}

// Themes lists the selectable themes in display order.
func Themes() []Theme {
	return []Theme{ThemeDefault, ThemeGray, ThemeOrange, ThemeTeal}
}

// ParseTheme accepts a theme key case-insensitively.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := themeGradients[t]; !ok {
		return "", ErrInvalidTheme
	}
	return t, nil
}

// Gradient returns the background gradient for the theme, falling back to the
// default theme for unknown values.
func (t Theme) Gradient() string {
	if g, ok := themeGradients[t]; ok {
		return g
	}
	return themeGradients[ThemeDefault]
}
