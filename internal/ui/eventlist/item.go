package eventlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/eventcal/internal/model"
	"github.com/nhle/eventcal/internal/theme"
)

// EventItem wraps a model.Event so it can be used in a bubbles/list.
type EventItem struct {
	Event model.Event
}

// FilterValue returns the string used for fuzzy filtering.
func (i EventItem) FilterValue() string {
	return i.Event.Name + " " + i.Event.Description
}

// Title returns the event name.
func (i EventItem) Title() string { return i.Event.Name }

// Description renders "Mon Jun 3, 2024 | 09:00 - 10:00".
func (i EventItem) Description() string {
	when := i.Event.Date
	if d, ok := i.Event.Day(); ok {
		when = d.Format("Mon Jan 2, 2006")
	}
	return strings.Join([]string{when, i.Event.TimeRange()}, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering event rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single event line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(EventItem)
	if !ok {
		return
	}

	swatch := lipgloss.NewStyle().
		Foreground(lipgloss.Color(it.Event.DisplayColor())).
		Render("■")
	when := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(it.Description())

	line := fmt.Sprintf("%s %s  %s", swatch, it.Title(), when)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
