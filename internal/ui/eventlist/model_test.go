package eventlist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/eventcal/internal/keys"
	"github.com/nhle/eventcal/internal/model"
)

func TestSetEventsOrdersByDateThenStart(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetEvents([]model.Event{
		{ID: "c", Name: "C", StartTime: "08:00", Date: "2024-06-04"},
		{ID: "b", Name: "B", StartTime: "13:00", Date: "2024-06-03"},
		{ID: "a", Name: "A", StartTime: "09:00", Date: "2024-06-03"},
	})

	got := m.Items()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestEnterJumpsToDate(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetEvents([]model.Event{{ID: "a", Name: "A", StartTime: "09:00", EndTime: "10:00", Date: "2024-06-03"}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(JumpToDateMsg)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), msg.Date)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok = cmd().(BackMsg)
	assert.True(t, ok)
}

func TestItemDescription(t *testing.T) {
	it := EventItem{Event: model.Event{StartTime: "09:00", EndTime: "10:00", Date: "2024-06-03"}}
	assert.Equal(t, "Mon Jun 3, 2024 | 09:00 - 10:00", it.Description())
}
