package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/eventcal/internal/keys"
	"github.com/nhle/eventcal/internal/theme"
	"github.com/nhle/eventcal/internal/ui/command"
)

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// ShortView renders the one-line key summary used in the status bar.
func (m Model) ShortView() string {
	m.help.ShowAll = false
	return m.help.View(m.keys)
}

// sectionTitles names the groups returned by KeyMap.FullHelp, in order.
var sectionTitles = []string{"Days and months", "Events", "Views and export", "App"}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	headingStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue)

	m.help.ShowAll = true
	var columns []string
	for i, group := range m.keys.FullHelp() {
		heading := "More"
		if i < len(sectionTitles) {
			heading = sectionTitles[i]
		}
		col := lipgloss.JoinVertical(lipgloss.Left,
			headingStyle.Render(heading),
			m.help.FullHelpView([][]key.Binding{group}),
		)
		columns = append(columns, lipgloss.NewStyle().PaddingRight(4).MarginBottom(1).Render(col))
	}

	var shortcuts string
	if m.width >= 100 {
		shortcuts = lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	} else {
		shortcuts = lipgloss.JoinVertical(lipgloss.Left, columns...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Calendar shortcuts"),
		shortcuts,
		headingStyle.Render("Commands (press :)"),
		commandTable(),
	)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// commandTable lists the palette commands with their descriptions.
func commandTable() string {
	usages := command.Usages()
	syntaxWidth := 0
	for _, u := range usages {
		syntaxWidth = max(syntaxWidth, lipgloss.Width(u.Syntax))
	}

	syntax := lipgloss.NewStyle().Width(syntaxWidth + 2)
	rows := make([]string, len(usages))
	for i, u := range usages {
		rows[i] = syntax.Render(u.Syntax) + theme.HelpStyle.Render(u.Desc)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
