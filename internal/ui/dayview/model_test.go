package dayview

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/eventcal/internal/model"
)

func TestSetDaySortsAndKeepsSelection(t *testing.T) {
	d := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	late := model.Event{ID: "late", Name: "Retro", StartTime: "16:00", EndTime: "17:00", Date: "2024-06-03"}
	early := model.Event{ID: "early", Name: "Standup", StartTime: "09:00", EndTime: "09:15", Date: "2024-06-03"}

	m := New(40, 20)
	m.SetDay(d, []model.Event{late, early})

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "early", sel.ID)

	m.SelectNext()
	sel, _ = m.Selected()
	assert.Equal(t, "late", sel.ID)

	m.SetDay(d, []model.Event{early, late})
	sel, _ = m.Selected()
	assert.Equal(t, "late", sel.ID, "selection survives a refresh of the same day")

	m.SelectNext()
	sel, _ = m.Selected()
	assert.Equal(t, "early", sel.ID)

	m.SelectPrev()
	sel, _ = m.Selected()
	assert.Equal(t, "late", sel.ID)

	m.SetDay(d.AddDate(0, 0, 1), nil)
	_, ok = m.Selected()
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestViewListsEvents(t *testing.T) {
	m := New(60, 20)
	m.SetDay(time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), []model.Event{
		{ID: "1", Name: "Standup", StartTime: "09:00", EndTime: "09:15", Description: "Room 4", Date: "2024-06-03"},
	})

	view := m.View()
	assert.Contains(t, view, "Monday, June 3 2024")
	assert.Contains(t, view, "09:00 - 09:15")
	assert.Contains(t, view, "Standup")
	assert.Contains(t, view, "Room 4")
}

func TestPageKeysScrollPanel(t *testing.T) {
	d := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	var events []model.Event
	for i := range 12 {
		events = append(events, model.Event{
			ID:        fmt.Sprintf("e%02d", i),
			Name:      fmt.Sprintf("Slot %d", i),
			StartTime: fmt.Sprintf("%02d:00", 8+i),
			EndTime:   fmt.Sprintf("%02d:30", 8+i),
			Date:      "2024-06-03",
		})
	}

	m := New(40, 8)
	m.SetDay(d, events)
	require.Zero(t, m.ScrollOffset())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Positive(t, m.ScrollOffset())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Zero(t, m.ScrollOffset())
}
