package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/eventcal/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// CancelMsg is emitted when the palette is closed with esc.
type CancelMsg struct{}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	month  time.Time
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "goto YYYY-MM, export csv, today..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Suggestions())
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// SetMonth records the month on screen. The title and placeholder follow it
// so goto examples point at the neighbouring month.
func (m *Model) SetMonth(month time.Time) {
	y, mo, _ := month.Date()
	m.month = time.Date(y, mo, 1, 0, 0, 0, 0, month.Location())
	next := m.month.AddDate(0, 1, 0)
	m.input.Placeholder = fmt.Sprintf("goto %s, export csv, today...", next.Format("2006-01"))
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd != "" {
				return m, func() tea.Msg {
					return CommandMsg(cmd)
				}
			}
			return m, nil

		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Hint describes the command being typed, or is empty when nothing matches.
func (m Model) Hint() string {
	fields := strings.Fields(m.input.Value())
	if len(fields) == 0 {
		return ""
	}
	u, ok := Lookup(fields[0])
	if !ok {
		return fmt.Sprintf("no command named %q", fields[0])
	}
	return u.Syntax + "  " + u.Desc
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := "Calendar command"
	if !m.month.IsZero() {
		title += " · " + m.month.Format("January 2006")
	}

	rows := []string{titleStyle.Render(title), m.input.View()}
	if hint := m.Hint(); hint != "" {
		rows = append(rows, theme.HelpStyle.Render(hint))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
