package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/eventcal/internal/calendar"
	"github.com/nhle/eventcal/internal/logger"
	"github.com/nhle/eventcal/internal/model"
	evsync "github.com/nhle/eventcal/internal/sync"
	"github.com/nhle/eventcal/internal/theme"
	"github.com/nhle/eventcal/internal/ui"
	"github.com/nhle/eventcal/internal/ui/command"
	configview "github.com/nhle/eventcal/internal/ui/config"
	"github.com/nhle/eventcal/internal/ui/dayview"
	"github.com/nhle/eventcal/internal/ui/eventform"
	"github.com/nhle/eventcal/internal/ui/eventlist"
	helpview "github.com/nhle/eventcal/internal/ui/help"
	"github.com/nhle/eventcal/internal/ui/monthgrid"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewMonth ViewState = iota
	ViewForm
	ViewList
	ViewHelp
	ViewCommand
	ViewSettings
)

// Options configures New.
type Options struct {
	Config     *model.AppConfig
	ConfigPath string
	Logger     *slog.Logger
	Start      time.Time
	Now        func() time.Time
	Backend    string

	// Poller, when set, reloads the store in the background.
	Poller *evsync.Poller
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the calendar.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	cal          *calendar.Calendar
	log          *slog.Logger
	keys         *KeyMap
	grid         monthgrid.Model
	day          dayview.Model
	list         eventlist.Model
	form         eventform.Model
	helpView     helpview.Model
	commandView  command.Model
	settings     configview.Model
	poller       *evsync.Poller
	now          func() time.Time
	exportDir    string
	backend      string
	status       string
	statusErr    bool
	ready        bool
}

// New creates the root application model for c.
func New(c *calendar.Calendar, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = &model.AppConfig{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	start := opts.Start
	if start.IsZero() {
		start = now()
	}

	keys := DefaultKeyMap()
	grid := monthgrid.New(keys, cfg.Calendar.WeekStartDay(), cfg.Display.MaxChips, now())
	grid.SetCursor(start)

	exportDir := cfg.Export.Dir
	if exportDir == "" {
		exportDir = "."
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}

	return Model{
		currentView: ViewMonth,
		cal:         c,
		log:         log,
		keys:        keys,
		grid:        grid,
		day:         dayview.New(40, 24),
		list:        eventlist.New(keys, 80, 24),
		form: eventform.New(eventform.Defaults{
			Color: cfg.Calendar.DefaultColor,
			Start: cfg.Calendar.DefaultStart,
			End:   cfg.Calendar.DefaultEnd,
		}, 80, 24),
		helpView:    helpview.New(keys, 80, 24),
		commandView: command.New(80, 24),
		settings:    configview.New(configPath, *cfg, keys, 80, 24),
		poller:      opts.Poller,
		now:         now,
		exportDir:   exportDir,
		backend:     opts.Backend,
	}
}

// Init loads the stored events and starts the background reloads.
func (m Model) Init() tea.Cmd {
	if m.poller == nil {
		return m.loadEvents()
	}
	return tea.Batch(m.loadEvents(), m.poller.Start())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		gridWidth, panelWidth := m.layout.SplitWidths()
		m.grid.SetSize(gridWidth, contentHeight)
		m.day.SetSize(panelWidth, contentHeight)
		m.list.SetSize(contentWidth, contentHeight)
		m.form.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.settings.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case eventsLoadedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("%v; starting with an empty calendar", msg.err))
		} else {
			m.setStatus(fmt.Sprintf("%d events loaded", m.cal.Len()))
		}
		m.refresh()
		return m, nil

	case evsync.ReloadedMsg:
		m.applySync(msg.Changed, msg.Err)
		return m, m.waitForSync()

	case evsync.DayChangedMsg:
		m.log.Info("day changed", slog.String("today", model.FormatDate(msg.Today)))
		m.refresh()
		return m, m.waitForSync()

	case eventsSyncedMsg:
		m.applySync(msg.changed, msg.err)
		if msg.err == nil && !msg.changed {
			m.setStatus("Already up to date")
		}
		return m, nil

	case configview.ConfigDoneMsg:
		m.currentView = ViewMonth
		return m, nil

	case configview.SettingsSavedMsg:
		m.applySettings(msg.Config)
		if msg.StorageChanged {
			m.setStatus("Settings saved; restart to switch storage")
		} else {
			m.setStatus("Settings saved")
		}
		return m, nil

	case eventform.EventSubmittedMsg:
		m.currentView = ViewMonth
		return m, m.saveEvent(msg.Event)

	case eventform.DeleteConfirmedMsg:
		m.currentView = ViewMonth
		return m, m.deleteEvent(msg.ID)

	case eventform.CancelMsg:
		m.currentView = ViewMonth
		return m, nil

	case eventSavedMsg:
		var verr *calendar.ValidationError
		if errors.As(msg.err, &verr) {
			m.currentView = ViewForm
			return m, m.form.Reopen(verr.Message)
		}
		switch {
		case msg.err != nil:
			m.setError(msg.err.Error())
		case msg.saveErr != nil:
			m.setError(msg.saveErr.Error())
		case msg.created:
			m.setStatus(fmt.Sprintf("Added %q", msg.event.Name))
		default:
			m.setStatus(fmt.Sprintf("Updated %q", msg.event.Name))
		}
		m.refresh()
		return m, nil

	case eventDeletedMsg:
		switch {
		case msg.err != nil:
			m.setError(msg.err.Error())
		case msg.saveErr != nil:
			m.setError(msg.saveErr.Error())
		default:
			m.setStatus("Event deleted")
		}
		m.refresh()
		return m, nil

	case monthgrid.MoveRequestedMsg:
		return m, m.moveEvent(msg.Grid, msg.Request)

	case monthgrid.GrabCancelledMsg:
		m.setStatus("Move cancelled")
		return m, nil

	case eventMovedMsg:
		switch {
		case msg.err != nil:
			m.setError(msg.err.Error())
		case msg.saveErr != nil:
			m.setError(msg.saveErr.Error())
		default:
			m.setStatus("Moved to " + msg.date)
		}
		m.refresh()
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("export failed: %v", msg.err))
		} else {
			m.setStatus("Exported " + msg.path)
		}
		return m, nil

	case eventlist.JumpToDateMsg:
		m.currentView = ViewMonth
		m.grid.SetCursor(msg.Date)
		m.refreshDay()
		return m, nil

	case eventlist.BackMsg:
		m.currentView = ViewMonth
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.currentView {
		case ViewMonth:
			m.status, m.statusErr = "", false
			return m.handleMonthKeys(msg)

		case ViewHelp:
			if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
				m.currentView = m.previousView
				return m, nil
			}

		case ViewList:
			if !m.list.Filtering() && key.Matches(msg, m.keys.Quit) {
				m.currentView = ViewMonth
				return m, nil
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleMonthKeys processes keys while the month view has focus.
func (m Model) handleMonthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.grid.Grabbing() {
		return m.updateGrid(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		m.commandView.SetMonth(m.grid.Cursor())
		return m, m.commandView.Focus()

	case key.Matches(msg, m.keys.Add):
		m.currentView = ViewForm
		return m, m.form.StartCreate(m.grid.Cursor())

	case key.Matches(msg, m.keys.NextEvent):
		m.day.SelectNext()
		return m, nil

	case key.Matches(msg, m.keys.PrevEvent):
		m.day.SelectPrev()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDn):
		var cmd tea.Cmd
		m.day, cmd = m.day.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		if e, ok := m.day.Selected(); ok {
			m.currentView = ViewForm
			return m, m.form.StartEdit(e)
		}
		m.setStatus("No event selected")
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if e, ok := m.day.Selected(); ok {
			m.currentView = ViewForm
			return m, m.form.StartDelete(e)
		}
		m.setStatus("No event selected")
		return m, nil

	case key.Matches(msg, m.keys.Grab):
		if e, ok := m.day.Selected(); ok {
			m.grid.StartGrab(e)
			m.setStatus(fmt.Sprintf("Moving %q", e.Name))
			return m, nil
		}
		m.setStatus("No event selected")
		return m, nil

	case key.Matches(msg, m.keys.AllEvents):
		return m, m.openList()

	case key.Matches(msg, m.keys.ExportJSON):
		return m, m.exportMonth(m.grid.Cursor(), calendar.FormatJSONFile)

	case key.Matches(msg, m.keys.ExportCSV):
		return m, m.exportMonth(m.grid.Cursor(), calendar.FormatCSVFile)

	case key.Matches(msg, m.keys.ExportICS):
		return m, m.exportMonth(m.grid.Cursor(), calendar.FormatICSFile)

	case key.Matches(msg, m.keys.Theme):
		m.setStatus("Theme: " + theme.Toggle())
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		m.openSettings()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.syncEvents()
	}

	return m.updateGrid(msg)
}

// updateGrid forwards msg to the month grid and follows the cursor with the
// day panel.
func (m Model) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.grid.Cursor()
	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	if !m.grid.Cursor().Equal(before) {
		m.refreshDay()
	}
	return m, cmd
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewMonth:
		m.day, cmd = m.day.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewList:
		m.list, cmd = m.list.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("eventcal", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusText(), m.statusErr)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewMonth:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.grid.View(), m.day.View())
	case ViewForm:
		return m.form.View()
	case ViewList:
		return m.list.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewSettings:
		return m.settings.View()
	default:
		return ""
	}
}

func (m Model) headerStatus() string {
	status := fmt.Sprintf("%d events · %s", m.cal.Len(), m.backend)
	if m.grid.Grabbing() {
		status = "moving · " + status
	}
	return status
}

// statusText returns the last status message, or key hints when there is
// none.
func (m Model) statusText() string {
	if m.status != "" {
		return m.status
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewForm:
		return "enter next/submit | esc cancel"
	case ViewList:
		return "enter go to date | / filter | esc back"
	case ViewSettings:
		return "esc back"
	default:
		return m.helpView.ShortView()
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
	m.log.Warn("status error", slog.String("message", s))
}

// refresh pushes the calendar's events to every view.
func (m *Model) refresh() {
	events := m.cal.Events()
	m.grid.SetToday(m.now())
	m.grid.SetEvents(events)
	m.list.SetEvents(events)
	m.refreshDay()
}

func (m *Model) refreshDay() {
	d := m.grid.Cursor()
	m.day.SetDay(d, m.cal.EventsOn(d))
}

func (m Model) waitForSync() tea.Cmd {
	if m.poller == nil {
		return nil
	}
	return m.poller.WaitForNextResult()
}

func (m *Model) openSettings() {
	m.settings.Reset()
	m.currentView = ViewSettings
}

// applySync refreshes the views after a reload from storage.
func (m *Model) applySync(changed bool, err error) {
	if err != nil {
		m.setError(fmt.Sprintf("reload failed: %v", err))
		return
	}
	if changed {
		m.refresh()
		m.setStatus(fmt.Sprintf("Reloaded %d events from storage", m.cal.Len()))
	}
}

// applySettings makes saved display and calendar settings take effect.
// Storage settings are read at startup only.
func (m *Model) applySettings(cfg model.AppConfig) {
	theme.Apply(cfg.Display.Theme)
	m.grid.SetWeekStart(cfg.Calendar.WeekStartDay())
	m.grid.SetMaxChips(cfg.Display.MaxChips)
	m.form.SetDefaults(eventform.Defaults{
		Color: cfg.Calendar.DefaultColor,
		Start: cfg.Calendar.DefaultStart,
		End:   cfg.Calendar.DefaultEnd,
	})
	m.cal.SetDefaultColor(cfg.Calendar.DefaultColor)
	if cfg.Export.Dir != "" {
		m.exportDir = cfg.Export.Dir
	}
	m.refresh()
}

func (m *Model) openList() tea.Cmd {
	m.currentView = ViewList
	return m.list.SetEvents(m.cal.Events())
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(line string) tea.Cmd {
	c, err := command.Parse(line)
	if err != nil {
		m.setError(err.Error())
		return nil
	}

	switch c.Action {
	case command.ActionToday:
		m.grid.SetCursor(m.now())
	case command.ActionNext:
		m.grid.ShiftMonths(1)
	case command.ActionPrev:
		m.grid.ShiftMonths(-1)
	case command.ActionGoto:
		m.grid.SetCursor(c.Date)
	case command.ActionExport:
		return m.exportMonth(m.grid.Cursor(), c.Format)
	case command.ActionTheme:
		m.setStatus("Theme: " + theme.Toggle())
		return nil
	case command.ActionList:
		return m.openList()
	case command.ActionReload:
		return m.syncEvents()
	case command.ActionSettings:
		m.openSettings()
		return nil
	case command.ActionQuit:
		return tea.Quit
	}

	m.refreshDay()
	return nil
}
