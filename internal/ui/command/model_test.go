package command

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestPaletteShowsVisibleMonth(t *testing.T) {
	m := New(80, 10)
	m.SetMonth(time.Date(2024, time.December, 17, 0, 0, 0, 0, time.UTC))

	view := m.View()
	assert.Contains(t, view, "Calendar command · December 2024")
	assert.Contains(t, view, "goto 2025-01")
}

func TestPaletteHintFollowsInput(t *testing.T) {
	m := New(80, 10)
	assert.Empty(t, m.Hint())

	m = typeText(m, "exp")
	assert.Contains(t, m.Hint(), "write the visible month")
	assert.Contains(t, m.View(), "export json|csv|ics")

	m = New(80, 10)
	m = typeText(m, "bogus")
	assert.Equal(t, `no command named "bogus"`, m.Hint())
}

func TestPaletteSubmitAndCancel(t *testing.T) {
	m := typeText(New(80, 10), "goto 2024-07")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg("goto 2024-07"), cmd())
	assert.Empty(t, m.Hint(), "input clears after submit")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "empty input submits nothing")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}
