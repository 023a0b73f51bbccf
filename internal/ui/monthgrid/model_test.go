package monthgrid

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/eventcal/internal/keys"
	"github.com/nhle/eventcal/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func press(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return m.Update(msg)
}

func TestTrimTitle(t *testing.T) {
	assert.Equal(t, "Standup", TrimTitle("Standup"))
	assert.Equal(t, "0123456789", TrimTitle("0123456789"))
	assert.Equal(t, "0123456789...", TrimTitle("0123456789A"))
	assert.Equal(t, "Überprüfun...", TrimTitle("Überprüfung der Akten"))
}

func TestCursorCrossesMonthEdge(t *testing.T) {
	m := New(keys.DefaultKeyMap(), time.Sunday, 3, day(2024, time.June, 30))

	m, _ = press(m, "l")
	assert.Equal(t, day(2024, time.July, 1), m.Cursor())
	assert.Equal(t, time.July, m.Grid().Month)

	m, _ = press(m, "left")
	assert.Equal(t, time.June, m.Grid().Month)

	m, _ = press(m, "k")
	assert.Equal(t, day(2024, time.June, 23), m.Cursor())
}

func TestShiftMonthsClampsDay(t *testing.T) {
	m := New(keys.DefaultKeyMap(), time.Sunday, 3, day(2024, time.January, 31))

	m, _ = press(m, "]")
	assert.Equal(t, day(2024, time.February, 29), m.Cursor())

	m, _ = press(m, "[")
	m, _ = press(m, "[")
	assert.Equal(t, day(2023, time.December, 29), m.Cursor())

	m, _ = press(m, "T")
	assert.Equal(t, day(2024, time.January, 31), m.Cursor())
}

func TestGrabAndDrop(t *testing.T) {
	m := New(keys.DefaultKeyMap(), time.Sunday, 3, day(2024, time.June, 3))
	e := model.Event{ID: "evt-1", Name: "Standup", Date: "2024-06-03"}
	m.SetEvents([]model.Event{e})

	m.StartGrab(e)
	require.True(t, m.Grabbing())
	assert.Equal(t, "Standup", m.GrabbedName())

	m, _ = press(m, "l")
	m, _ = press(m, "]")
	assert.Equal(t, day(2024, time.June, 4), m.Cursor(), "month navigation is blocked while grabbing")

	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.False(t, m.Grabbing())

	msg, ok := cmd().(MoveRequestedMsg)
	require.True(t, ok)
	assert.Equal(t, "evt-1", msg.Request.EventID)
	assert.Equal(t, msg.Grid.IndexOf(day(2024, time.June, 3)), msg.Request.SourceDayIndex)
	assert.Equal(t, msg.Grid.IndexOf(day(2024, time.June, 4)), msg.Request.DestinationDayIndex)
}

func TestGrabStaysInsideGrid(t *testing.T) {
	m := New(keys.DefaultKeyMap(), time.Sunday, 3, day(2024, time.June, 3))
	m.StartGrab(model.Event{ID: "x", Name: "x", Date: "2024-06-03"})

	m, _ = press(m, "k")
	assert.Equal(t, day(2024, time.May, 27), m.Cursor())
	m, _ = press(m, "k")
	assert.Equal(t, day(2024, time.May, 27), m.Cursor())
	assert.Equal(t, time.June, m.Grid().Month)

	m, cmd := press(m, "esc")
	assert.False(t, m.Grabbing())
	_, ok := cmd().(GrabCancelledMsg)
	assert.True(t, ok)
}

func TestViewShowsChips(t *testing.T) {
	m := New(keys.DefaultKeyMap(), time.Sunday, 1, day(2024, time.June, 3))
	m.SetSize(140, 40)
	m.SetEvents([]model.Event{
		{ID: "1", Name: "Quarterly planning", Date: "2024-06-03", Color: "#FF5733"},
		{ID: "2", Name: "Lunch", Date: "2024-06-03"},
	})

	view := m.View()
	assert.Contains(t, view, "June 2024")
	assert.Contains(t, view, "Quarterly ...")
	assert.Contains(t, view, "+1 more")
	assert.NotContains(t, view, "Lunch")
}

func TestSetWeekStartRebuildsGrid(t *testing.T) {
	m := New(keys.DefaultKeyMap(), time.Sunday, 3, day(2024, time.June, 3))
	assert.Equal(t, day(2024, time.May, 26), m.Grid().First())

	m.SetWeekStart(time.Monday)
	assert.Equal(t, time.Monday, m.WeekStart())
	assert.Equal(t, day(2024, time.May, 27), m.Grid().First())
	assert.Equal(t, day(2024, time.June, 3), m.Cursor())
}
