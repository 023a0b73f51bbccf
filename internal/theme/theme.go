package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
	ColorDimmed  = lipgloss.AdaptiveColor{Dark: "#5C636A", Light: "#A0AEC0"}
)

// Theme modes accepted by Apply.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Apply forces adaptive colors to their dark or light variant. ModeAuto
// keeps the terminal's detected background.
func Apply(mode string) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeDark:
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// Toggle flips between dark and light and returns the new mode.
func Toggle() string {
	if lipgloss.HasDarkBackground() {
		lipgloss.SetHasDarkBackground(false)
		return ModeLight
	}
	lipgloss.SetHasDarkBackground(true)
	return ModeDark
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorBarStyle replaces StatusBarStyle while an error is shown.
var ErrorBarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(ColorRed).
	Padding(0, 1)

// DetailPanelStyle wraps the day panel and overlay views.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle greys out secondary text.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorDimmed)

// Month grid cells.
var (
	WeekdayHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorGray).
				Align(lipgloss.Center)

	CellStyle = lipgloss.NewStyle().
			Border(lipgloss.HiddenBorder())

	CursorCellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBlue)

	GrabCellStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorYellow)

	DayNumberStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	PaddingDayNumberStyle = lipgloss.NewStyle().
				Foreground(ColorDimmed)

	TodayNumberStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(ColorRed)

	MoreChipsStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)
)

// ChipStyle returns the style of an event chip painted in hex. The text
// color is black or white, whichever reads better on that background.
func ChipStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(ContrastText(hex)))
}

// ContrastText returns "#000000" for light backgrounds and "#FFFFFF" for
// dark or unparseable ones.
func ContrastText(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#FFFFFF"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}
