// Package eventlist is the all-events view: every stored event ordered by
// date and start time.
package eventlist

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/eventcal/internal/keys"
	"github.com/nhle/eventcal/internal/model"
	"github.com/nhle/eventcal/internal/theme"
)

// JumpToDateMsg asks the parent to move the month grid to Date.
type JumpToDateMsg struct {
	Date time.Time
}

// BackMsg signals the parent to close the list.
type BackMsg struct{}

// Model is the all-events list view component.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new event list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "All Events"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetEvents replaces the listed events.
func (m *Model) SetEvents(events []model.Event) tea.Cmd {
	sorted := make([]model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})

	items := make([]list.Item, len(sorted))
	for i, e := range sorted {
		items[i] = EventItem{Event: e}
	}
	return m.list.SetItems(items)
}

// Items returns the listed events in display order.
func (m Model) Items() []model.Event {
	items := m.list.Items()
	out := make([]model.Event, 0, len(items))
	for _, it := range items {
		if e, ok := it.(EventItem); ok {
			out = append(out, e.Event)
		}
	}
	return out
}

// Filtering reports whether the filter prompt has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(keyMsg, m.keys.Select):
			it, ok := m.list.SelectedItem().(EventItem)
			if !ok {
				return m, nil
			}
			d, ok := it.Event.Day()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return JumpToDateMsg{Date: d} }

		case key.Matches(keyMsg, m.keys.Back):
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list.
func (m Model) View() string {
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
