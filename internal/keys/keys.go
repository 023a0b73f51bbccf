package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Day cursor
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	// Month navigation
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding

	// Event selection inside the day panel
	NextEvent key.Binding
	PrevEvent key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding

	// Mutations
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Grab   key.Binding
	Drop   key.Binding

	// Views
	AllEvents key.Binding
	Select    key.Binding

	// Export
	ExportJSON key.Binding
	ExportCSV  key.Binding
	ExportICS  key.Binding

	// Theme toggle
	Theme key.Binding

	// Settings and storage
	Settings key.Binding
	Reload   key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous week"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "today"),
		),
		NextEvent: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next event"),
		),
		PrevEvent: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous event"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll day up"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll day down"),
		),
		Add: key.NewBinding(
			key.WithKeys("n", "enter"),
			key.WithHelp("n/enter", "add event"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit event"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete event"),
		),
		Grab: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move event"),
		),
		Drop: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "drop event"),
		),
		AllEvents: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all events"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go to date"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export JSON"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "export CSV"),
		),
		ExportICS: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "export iCalendar"),
		),
		Theme: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "dark/light"),
		),
		Settings: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "settings"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload from storage"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Left, k.Right, k.Add, k.Edit, k.Delete,
		k.Grab, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.PrevMonth, k.NextMonth, k.Today},
		{k.NextEvent, k.PrevEvent, k.ScrollUp, k.ScrollDn, k.Add, k.Edit, k.Delete, k.Grab, k.Drop},
		{k.AllEvents, k.ExportJSON, k.ExportCSV, k.ExportICS, k.Theme},
		{k.Settings, k.Reload, k.Command, k.Help, k.Back, k.Quit},
	}
}
