// Package monthgrid renders the month view and owns the day cursor and the
// grab-and-drop state used to reschedule events.
package monthgrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/eventcal/internal/calendar"
	"github.com/nhle/eventcal/internal/keys"
	"github.com/nhle/eventcal/internal/model"
	"github.com/nhle/eventcal/internal/theme"
)

// chipTitleLimit is the number of runes of an event name shown on a chip.
const chipTitleLimit = 10

// MoveRequestedMsg is emitted when a grabbed event is dropped on a cell.
type MoveRequestedMsg struct {
	Grid    calendar.Grid
	Request calendar.RescheduleRequest
}

// GrabCancelledMsg is emitted when a grab is abandoned with esc.
type GrabCancelledMsg struct{}

// grab tracks the event picked up with the grab key.
type grab struct {
	eventID     string
	name        string
	sourceIndex int
}

// Model is the month grid view component.
type Model struct {
	keys      *keys.KeyMap
	weekStart time.Weekday
	maxChips  int
	today     time.Time
	cursor    time.Time
	grid      calendar.Grid
	index     calendar.Index
	grab      *grab
	width     int
	height    int
}

// New creates a month grid with the cursor on today.
func New(k *keys.KeyMap, weekStart time.Weekday, maxChips int, today time.Time) Model {
	if maxChips <= 0 {
		maxChips = 3
	}
	today = model.CivilDate(today)
	return Model{
		keys:      k,
		weekStart: weekStart,
		maxChips:  maxChips,
		today:     today,
		cursor:    today,
		grid:      calendar.BuildGrid(today, weekStart),
		index:     calendar.Index{},
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetEvents replaces the events drawn on the grid.
func (m *Model) SetEvents(events []model.Event) {
	m.index = calendar.NewIndex(events)
}

// SetToday updates the highlighted date.
func (m *Model) SetToday(today time.Time) {
	m.today = model.CivilDate(today)
}

// SetCursor moves the cursor to date, switching month when needed. It is
// ignored while an event is grabbed.
func (m *Model) SetCursor(date time.Time) {
	if m.grab != nil {
		return
	}
	m.cursor = model.CivilDate(date)
	if m.cursor.Year() != m.grid.Year || m.cursor.Month() != m.grid.Month {
		m.grid = calendar.BuildGrid(m.cursor, m.weekStart)
	}
}

// Cursor returns the selected date.
func (m Model) Cursor() time.Time {
	return m.cursor
}

// Grid returns the displayed grid.
func (m Model) Grid() calendar.Grid {
	return m.grid
}

// Grabbing reports whether an event is picked up.
func (m Model) Grabbing() bool {
	return m.grab != nil
}

// GrabbedName returns the name of the grabbed event.
func (m Model) GrabbedName() string {
	if m.grab == nil {
		return ""
	}
	return m.grab.name
}

// StartGrab picks up e from the cursor cell. Month navigation is disabled
// until the event is dropped or the grab is cancelled.
func (m *Model) StartGrab(e model.Event) {
	src := m.grid.IndexOf(m.cursor)
	if src < 0 {
		return
	}
	m.grab = &grab{eventID: e.ID, name: e.Name, sourceIndex: src}
}

// CancelGrab drops the grab without moving anything.
func (m *Model) CancelGrab() {
	m.grab = nil
}

// ShiftDays moves the cursor by n days.
func (m *Model) ShiftDays(n int) {
	m.moveTo(m.cursor.AddDate(0, 0, n))
}

// ShiftMonths moves the cursor by n months, clamping the day to the target
// month's length.
func (m *Model) ShiftMonths(n int) {
	if m.grab != nil {
		return
	}
	m.SetCursor(addMonthsClamped(m.cursor, n))
}

func (m *Model) moveTo(date time.Time) {
	if m.grab != nil && !m.grid.Contains(date) {
		return
	}
	if m.grab != nil {
		m.cursor = model.CivilDate(date)
		return
	}
	m.SetCursor(date)
}

// Update handles messages for the month grid.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.grab != nil {
		switch {
		case key.Matches(keyMsg, m.keys.Drop):
			req := calendar.RescheduleRequest{
				SourceDayIndex:      m.grab.sourceIndex,
				DestinationDayIndex: m.grid.IndexOf(m.cursor),
				EventID:             m.grab.eventID,
			}
			g := m.grid
			m.grab = nil
			return m, func() tea.Msg {
				return MoveRequestedMsg{Grid: g, Request: req}
			}

		case key.Matches(keyMsg, m.keys.Back):
			m.grab = nil
			return m, func() tea.Msg { return GrabCancelledMsg{} }
		}
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.ShiftDays(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.ShiftDays(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.ShiftDays(-7)
	case key.Matches(keyMsg, m.keys.Down):
		m.ShiftDays(7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.ShiftMonths(-1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.ShiftMonths(1)
	case key.Matches(keyMsg, m.keys.Today):
		m.SetCursor(m.today)
	}

	return m, nil
}

// View renders the title, weekday header and the grid of cells.
func (m Model) View() string {
	cellWidth := m.cellWidth()

	title := theme.HeaderStyle.Render(m.grid.Title())
	if m.grab != nil {
		title += " " + lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Render(fmt.Sprintf("moving %q: arrows pick a day, enter drops, esc cancels", m.grab.name))
	}

	headers := make([]string, 0, 7)
	for _, h := range calendar.WeekdayHeaders(m.weekStart) {
		headers = append(headers, theme.WeekdayHeaderStyle.Width(cellWidth+2).Render(h))
	}

	rows := []string{title, lipgloss.JoinHorizontal(lipgloss.Top, headers...)}
	for _, week := range m.grid.Weeks() {
		cells := make([]string, 0, 7)
		for _, d := range week {
			cells = append(cells, m.renderCell(d, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(d calendar.Day, width int) string {
	number := fmt.Sprintf("%2d", d.Date.Day())
	switch {
	case d.Date.Equal(m.today):
		number = theme.TodayNumberStyle.Render(number)
	case !d.InMonth:
		number = theme.PaddingDayNumberStyle.Render(number)
	default:
		number = theme.DayNumberStyle.Render(number)
	}

	lines := []string{number}
	events := m.index.On(d.Date)
	for i, e := range events {
		if i == m.maxChips {
			lines = append(lines, theme.MoreChipsStyle.Render(fmt.Sprintf("+%d more", len(events)-m.maxChips)))
			break
		}
		chip := theme.ChipStyle(e.DisplayColor()).MaxWidth(width).Render(TrimTitle(e.Name))
		if !d.InMonth {
			chip = theme.DimmedStyle.MaxWidth(width).Render(TrimTitle(e.Name))
		}
		lines = append(lines, chip)
	}
	for len(lines) < m.maxChips+2 {
		lines = append(lines, "")
	}

	style := theme.CellStyle
	if d.Date.Equal(m.cursor) {
		style = theme.CursorCellStyle
		if m.grab != nil {
			style = theme.GrabCellStyle
		}
	}

	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// cellWidth is the inner width of one cell, excluding its border.
func (m Model) cellWidth() int {
	w := m.width/7 - 2
	if w < 6 {
		w = 6
	}
	return w
}

// SetWeekStart rebuilds the grid around the cursor for a new first
// weekday. It is ignored while an event is grabbed.
func (m *Model) SetWeekStart(weekStart time.Weekday) {
	if m.grab != nil || weekStart == m.weekStart {
		return
	}
	m.weekStart = weekStart
	m.grid = calendar.BuildGrid(m.cursor, weekStart)
}

// WeekStart returns the first weekday of each grid row.
func (m Model) WeekStart() time.Weekday {
	return m.weekStart
}

// SetMaxChips changes how many chips a cell draws before "+N more".
func (m *Model) SetMaxChips(n int) {
	if n > 0 {
		m.maxChips = n
	}
}

// SetSize updates the grid dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// TrimTitle shortens an event name for a chip: names longer than ten
// runes keep their first ten followed by "...".
func TrimTitle(name string) string {
	r := []rune(name)
	if len(r) <= chipTitleLimit {
		return name
	}
	return string(r[:chipTitleLimit]) + "..."
}

func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
