package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/eventcal/internal/calendar"
	"github.com/nhle/eventcal/internal/model"
)

// eventsLoadedMsg is sent after the collection is read from storage.
type eventsLoadedMsg struct{ err error }

// eventSavedMsg is sent after an add or edit.
type eventSavedMsg struct {
	event   model.Event
	created bool
	err     error
	saveErr error
}

// eventDeletedMsg is sent after a delete.
type eventDeletedMsg struct {
	id      string
	err     error
	saveErr error
}

// eventMovedMsg is sent after a grab-and-drop.
type eventMovedMsg struct {
	id      string
	date    string
	err     error
	saveErr error
}

// exportedMsg is sent after an export file is written.
type exportedMsg struct {
	path string
	err  error
}

// loadEvents reads the stored collection into the calendar.
func (m *Model) loadEvents() tea.Cmd {
	c := m.cal
	return func() tea.Msg {
		return eventsLoadedMsg{err: c.Load(context.Background())}
	}
}

// saveEvent creates e when it has no id and updates it otherwise.
func (m *Model) saveEvent(e model.Event) tea.Cmd {
	c := m.cal
	return func() tea.Msg {
		ctx := context.Background()
		if e.ID == "" {
			created, err := c.Create(ctx, e)
			return eventSavedMsg{event: created, created: true, err: err, saveErr: c.SaveErr()}
		}
		updated, err := c.Update(ctx, e)
		return eventSavedMsg{event: updated, err: err, saveErr: c.SaveErr()}
	}
}

// deleteEvent removes an event.
func (m *Model) deleteEvent(id string) tea.Cmd {
	c := m.cal
	return func() tea.Msg {
		err := c.Delete(context.Background(), id)
		return eventDeletedMsg{id: id, err: err, saveErr: c.SaveErr()}
	}
}

// moveEvent applies a drop from the month grid.
func (m *Model) moveEvent(g calendar.Grid, req calendar.RescheduleRequest) tea.Cmd {
	c := m.cal
	return func() tea.Msg {
		err := c.Move(context.Background(), g, req)
		msg := eventMovedMsg{id: req.EventID, err: err, saveErr: c.SaveErr()}
		if dst, ok := g.DayAt(req.DestinationDayIndex); ok {
			msg.date = dst.Key()
		}
		return msg
	}
}

// exportMonth writes the events of ref's month in format f.
func (m *Model) exportMonth(ref time.Time, f calendar.Format) tea.Cmd {
	c := m.cal
	dir := m.exportDir
	return func() tea.Msg {
		path, err := c.Export(ref, f, dir)
		return exportedMsg{path: path, err: err}
	}
}

// eventsSyncedMsg is sent after a manual reload from storage.
type eventsSyncedMsg struct {
	changed bool
	err     error
}

// syncEvents re-reads the store, keeping the current events on failure.
func (m *Model) syncEvents() tea.Cmd {
	c := m.cal
	return func() tea.Msg {
		changed, err := c.Sync(context.Background())
		return eventsSyncedMsg{changed: changed, err: err}
	}
}
