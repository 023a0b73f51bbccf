package dayview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/eventcal/internal/calendar"
	"github.com/nhle/eventcal/internal/model"
	"github.com/nhle/eventcal/internal/theme"
)

// Model is the day panel listing the selected day's events.
type Model struct {
	day      time.Time
	events   []model.Event
	selected int
	viewport viewport.Model
	width    int
	height   int
}

// New creates a new day panel model.
func New(width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetDay shows events for day, ordered by start time. The selected event
// is kept when it is still present.
func (m *Model) SetDay(day time.Time, events []model.Event) {
	keepID := ""
	if e, ok := m.Selected(); ok && model.CivilDate(day).Equal(m.day) {
		keepID = e.ID
	}

	m.day = model.CivilDate(day)
	m.events = calendar.SortByStart(events)
	m.selected = 0
	for i, e := range m.events {
		if e.ID == keepID {
			m.selected = i
			break
		}
	}
	m.refresh()
}

// Selected returns the highlighted event.
func (m Model) Selected() (model.Event, bool) {
	if m.selected < 0 || m.selected >= len(m.events) {
		return model.Event{}, false
	}
	return m.events[m.selected], true
}

// ScrollOffset returns the first visible line of the panel.
func (m Model) ScrollOffset() int {
	return m.viewport.YOffset
}

// Len returns the number of events shown.
func (m Model) Len() int {
	return len(m.events)
}

// SelectNext highlights the next event, wrapping around.
func (m *Model) SelectNext() {
	if len(m.events) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.events)
	m.refresh()
}

// SelectPrev highlights the previous event, wrapping around.
func (m *Model) SelectPrev() {
	if len(m.events) == 0 {
		return
	}
	m.selected = (m.selected - 1 + len(m.events)) % len(m.events)
	m.refresh()
}

// Update forwards scrolling keys such as pgup and pgdown to the viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m Model) View() string {
	return theme.DetailPanelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.viewport.View())
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 10)
	m.viewport.Height = max(height-4, 3)
	m.refresh()
}

func (m *Model) refresh() {
	content, selectedLine := m.renderContent()
	m.viewport.SetContent(content)

	if selectedLine < m.viewport.YOffset {
		m.viewport.SetYOffset(selectedLine)
	} else if selectedLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(selectedLine - m.viewport.Height + 1)
	}
}

// renderContent builds the panel text and returns the line the selected
// event starts on.
func (m Model) renderContent() (string, int) {
	var b strings.Builder

	if m.day.IsZero() {
		return "", 0
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	b.WriteString(titleStyle.Render(m.day.Format("Monday, January 2 2006")))
	b.WriteString("\n\n")
	line := 2

	if len(m.events) == 0 {
		b.WriteString(theme.HelpStyle.Render("No events. Press n to add one."))
		return b.String(), 0
	}

	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width-4, 10))
	selectedLine := 0
	for i, e := range m.events {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(e.DisplayColor())).Render("■")
		head := fmt.Sprintf("%s %s  %s", swatch, e.TimeRange(), e.Name)

		if i == m.selected {
			selectedLine = line
			head = theme.SelectedItemStyle.Render(head)
		} else {
			head = theme.ListItemStyle.Render(head)
		}
		b.WriteString(head)
		b.WriteString("\n")
		line++

		if e.Description != "" {
			desc := theme.DimmedStyle.Render(wrap.Render(e.Description))
			desc = lipgloss.NewStyle().PaddingLeft(4).Render(desc)
			b.WriteString(desc)
			b.WriteString("\n")
			line += lipgloss.Height(desc)
		}
		b.WriteString("\n")
		line++
	}

	return b.String(), selectedLine
}
