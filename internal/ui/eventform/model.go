// Package eventform hosts the huh forms for adding and editing an event
// and for confirming a delete.
package eventform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/eventcal/internal/model"
	"github.com/nhle/eventcal/internal/theme"
)

// EventSubmittedMsg is dispatched when the add/edit form is completed.
// Event.ID is empty for a new event.
type EventSubmittedMsg struct {
	Event model.Event
}

// DeleteConfirmedMsg is dispatched when a delete is confirmed.
type DeleteConfirmedMsg struct {
	ID string
}

// CancelMsg is dispatched when the user aborts a form or declines a delete.
type CancelMsg struct{}

type mode int

const (
	modeCreate mode = iota
	modeEdit
	modeDelete
)

// Defaults prefill a new event.
type Defaults struct {
	Color string
	Start string
	End   string
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name        string
	startTime   string
	endTime     string
	description string
	color       string
	confirm     bool
}

// Model is the Bubble Tea model for the event forms.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	mode     mode
	editID   string
	date     string
	errMsg   string
	defaults Defaults
	width    int
	height   int
}

// New creates a new event form model.
func New(defaults Defaults, width, height int) Model {
	if defaults.Color == "" {
		defaults.Color = model.DefaultColor
	}
	if defaults.Start == "" {
		defaults.Start = model.DefaultStartTime
	}
	if defaults.End == "" {
		defaults.End = model.DefaultEndTime
	}
	return Model{
		fb:       &formBindings{},
		defaults: defaults,
		width:    width,
		height:   height,
	}
}

// SetDefaults replaces the values used to prefill new events. Empty
// fields keep their current value.
func (m *Model) SetDefaults(d Defaults) {
	if d.Color != "" {
		m.defaults.Color = d.Color
	}
	if d.Start != "" {
		m.defaults.Start = d.Start
	}
	if d.End != "" {
		m.defaults.End = d.End
	}
}

// StartCreate initializes the form for a new event on date.
func (m *Model) StartCreate(date time.Time) tea.Cmd {
	m.mode = modeCreate
	m.editID = ""
	m.errMsg = ""
	m.date = model.FormatDate(date)
	m.fb.name = ""
	m.fb.startTime = m.defaults.Start
	m.fb.endTime = m.defaults.End
	m.fb.description = ""
	m.fb.color = m.defaults.Color
	m.form = m.buildEventForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing event.
func (m *Model) StartEdit(e model.Event) tea.Cmd {
	m.mode = modeEdit
	m.editID = e.ID
	m.errMsg = ""
	m.date = e.Date
	m.fb.name = e.Name
	m.fb.startTime = e.StartTime
	m.fb.endTime = e.EndTime
	m.fb.description = e.Description
	m.fb.color = e.DisplayColor()
	m.form = m.buildEventForm()
	return m.form.Init()
}

// StartDelete asks for confirmation before deleting e.
func (m *Model) StartDelete(e model.Event) tea.Cmd {
	m.mode = modeDelete
	m.editID = e.ID
	m.errMsg = ""
	m.fb.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q on %s?", e.Name, e.Date)).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth())
	return m.form.Init()
}

// Reopen rebuilds the add/edit form with the last submitted values and
// shows errMsg above it. Used when the calendar rejects a submission.
func (m *Model) Reopen(errMsg string) tea.Cmd {
	m.errMsg = errMsg
	m.form = m.buildEventForm()
	return m.form.Init()
}

// Editing reports whether the form edits an existing event.
func (m Model) Editing() bool {
	return m.mode == modeEdit
}

// Update handles messages for the active form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the active form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	var titleText string
	switch m.mode {
	case modeEdit:
		titleText = "Edit Event · " + m.date
	case modeDelete:
		titleText = "Delete Event"
	default:
		titleText = "New Event · " + m.date
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n"
	if m.errMsg != "" {
		content += lipgloss.NewStyle().Foreground(theme.ColorRed).Render(m.errMsg) + "\n\n"
	}
	content += m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildEventForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("What is happening?").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Start time").
				Placeholder("HH:MM").
				Value(&m.fb.startTime).
				Validate(validateClock("Start time")),
			huh.NewInput().
				Title("End time").
				Placeholder("HH:MM").
				Value(&m.fb.endTime).
				Validate(validateClock("End time")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Color").
				Placeholder("#RRGGBB").
				Value(&m.fb.color),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	if m.mode == modeDelete {
		if !m.fb.confirm {
			return func() tea.Msg { return CancelMsg{} }
		}
		id := m.editID
		return func() tea.Msg { return DeleteConfirmedMsg{ID: id} }
	}

	e := model.Event{
		ID:          m.editID,
		Name:        m.fb.name,
		StartTime:   m.fb.startTime,
		EndTime:     m.fb.endTime,
		Description: m.fb.description,
		Date:        m.date,
		Color:       m.fb.color,
	}
	return func() tea.Msg { return EventSubmittedMsg{Event: e} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateClock(fieldName string) func(string) error {
	return func(s string) error {
		if _, err := time.Parse(model.TimeLayout, strings.TrimSpace(s)); err != nil {
			return fmt.Errorf("%s must be HH:MM", fieldName)
		}
		return nil
	}
}
