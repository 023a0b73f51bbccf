package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestContrastText(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#FFFFFF", "#000000"},
		{"#FFD93D", "#000000"},
		{"#000000", "#FFFFFF"},
		{"#1A202C", "#FFFFFF"},
		{"tomato", "#FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			assert.Equal(t, tt.want, ContrastText(tt.hex))
		})
	}
}

func TestApplyAndToggle(t *testing.T) {
	was := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(was) })

	Apply(ModeDark)
	assert.True(t, lipgloss.HasDarkBackground())

	assert.Equal(t, ModeLight, Toggle())
	assert.False(t, lipgloss.HasDarkBackground())

	assert.Equal(t, ModeDark, Toggle())
	assert.True(t, lipgloss.HasDarkBackground())

	Apply(ModeLight)
	assert.False(t, lipgloss.HasDarkBackground())
}
