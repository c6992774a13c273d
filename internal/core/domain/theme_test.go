package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(" Teal ")
	require.NoError(t, err)
	assert.Equal(t, ThemeTeal, th)

	_, err = ParseTheme("purple")
	assert.ErrorIs(t, err, ErrInvalidTheme)
}

func TestThemeGradient_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, "linear(to-b, orange.400, yellow.300)", ThemeOrange.Gradient())
	assert.Equal(t, ThemeDefault.Gradient(), Theme("neon").Gradient())
}
