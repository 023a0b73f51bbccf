package eventform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/eventcal/internal/model"
)

func TestStartCreatePrefillsDefaults(t *testing.T) {
	m := New(Defaults{Color: "#00AA00"}, 80, 24)
	m.StartCreate(time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC))

	assert.False(t, m.Editing())
	assert.Equal(t, "2024-06-03", m.date)
	assert.Equal(t, model.DefaultStartTime, m.fb.startTime)
	assert.Equal(t, model.DefaultEndTime, m.fb.endTime)
	assert.Equal(t, "#00AA00", m.fb.color)
}

func TestSubmitBuildsEvent(t *testing.T) {
	m := New(Defaults{}, 80, 24)
	m.StartEdit(model.Event{ID: "evt-1", Name: "Standup", StartTime: "09:00", EndTime: "09:15", Date: "2024-06-03"})
	require.True(t, m.Editing())

	m.fb.endTime = "09:30"
	msg, ok := m.handleSubmit()().(EventSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, model.Event{
		ID: "evt-1", Name: "Standup", StartTime: "09:00", EndTime: "09:30",
		Date: "2024-06-03", Color: model.DefaultColor,
	}, msg.Event)
}

func TestDeleteConfirmation(t *testing.T) {
	m := New(Defaults{}, 80, 24)
	m.StartDelete(model.Event{ID: "evt-1", Name: "Standup", Date: "2024-06-03"})

	_, ok := m.handleSubmit()().(CancelMsg)
	assert.True(t, ok, "declined by default")

	m.fb.confirm = true
	msg, ok := m.handleSubmit()().(DeleteConfirmedMsg)
	require.True(t, ok)
	assert.Equal(t, "evt-1", msg.ID)
}

func TestReopenShowsError(t *testing.T) {
	m := New(Defaults{}, 80, 24)
	m.StartCreate(time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))
	m.fb.name = "Standup"

	m.Reopen("End time must be after start time.")

	assert.Contains(t, m.View(), "End time must be after start time.")
	assert.Equal(t, "Standup", m.fb.name)
}

func TestValidators(t *testing.T) {
	assert.Error(t, validateRequired("Name")("  "))
	assert.NoError(t, validateRequired("Name")("x"))
	assert.NoError(t, validateClock("Start time")("9:05"))
	assert.Error(t, validateClock("Start time")("25:00"))
}
