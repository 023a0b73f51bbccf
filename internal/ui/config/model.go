// Package config is the settings screen: it edits the display and storage
// sections of the configuration file and can test a storage backend
// before the settings are written.
package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/eventcal/internal/credential"
	"github.com/nhle/eventcal/internal/keys"
	"github.com/nhle/eventcal/internal/model"
	"github.com/nhle/eventcal/internal/store"
	"github.com/nhle/eventcal/internal/theme"
)

// ConfigMode represents the current state of the settings view.
type ConfigMode int

const (
	ModeSummary        ConfigMode = iota // Show effective settings
	ModeFormCalendar                     // Calendar and display form
	ModeFormStorage                      // Storage backend form
	ModeValidating                       // Testing the storage backend
	ModeValidateResult                   // Show test result
)

// ConfigDoneMsg signals the settings view should close.
type ConfigDoneMsg struct{}

// SettingsSavedMsg is sent after the configuration file was written.
// StorageChanged is set when the new storage section only takes effect
// after a restart.
type SettingsSavedMsg struct {
	Config         model.AppConfig
	StorageChanged bool
}

// ValidateResultMsg carries the result of a storage test.
type ValidateResultMsg struct {
	Events int
	Err    error
}

// settingsSavedInternalMsg is sent after the file write.
type settingsSavedInternalMsg struct {
	cfg            model.AppConfig
	storageChanged bool
	err            error
}

// OpenFunc opens a store; store.Open in production.
type OpenFunc func(ctx context.Context, cfg model.StorageConfig, password string) (store.Store, error)

// validateTimeout bounds a storage test.
const validateTimeout = 5 * time.Second

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	weekStart    string
	themeMode    string
	maxChips     string
	defaultColor string
	defaultStart string
	defaultEnd   string
	exportDir    string

	backend       string
	path          string
	redisAddr     string
	redisKey      string
	redisPassword string
	pollInterval  string
}

// Model is the Bubble Tea model for the settings screen.
type Model struct {
	mode    ConfigMode
	path    string
	cfg     model.AppConfig
	open    OpenFunc
	save    func(path string, cfg *model.AppConfig) error
	setCred func(key, value string) error
	form    *huh.Form
	fb      *formBindings
	spinner spinner.Model

	validEvents int
	validError  error

	// Status message for transient feedback
	statusMsg string

	keys          *keys.KeyMap
	width, height int
}

// New creates a settings view editing cfg, which is written to path.
func New(path string, cfg model.AppConfig, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		mode:    ModeSummary,
		path:    path,
		cfg:     cfg,
		open:    store.Open,
		save:    model.SaveConfig,
		setCred: credential.Set,
		fb:      &formBindings{},
		spinner: sp,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// WithOpener replaces store.Open for storage tests.
func (m Model) WithOpener(open OpenFunc) Model {
	m.open = open
	return m
}

// WithSaver replaces model.SaveConfig and credential.Set.
func (m Model) WithSaver(save func(string, *model.AppConfig) error, setCred func(key, value string) error) Model {
	m.save = save
	m.setCred = setCred
	return m
}

// Config returns the settings as last saved.
func (m Model) Config() model.AppConfig {
	return m.cfg
}

// Mode returns the current mode.
func (m Model) Mode() ConfigMode {
	return m.mode
}

// Reset returns to the summary screen.
func (m *Model) Reset() {
	m.mode = ModeSummary
	m.form = nil
	m.statusMsg = ""
}

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case settingsSavedInternalMsg:
		m.mode = ModeSummary
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving settings: %v", msg.err)
			return m, nil
		}
		m.cfg = msg.cfg
		m.statusMsg = "Settings saved to " + m.path
		if msg.storageChanged {
			m.statusMsg += "; restart to switch storage"
		}
		saved := SettingsSavedMsg{Config: msg.cfg, StorageChanged: msg.storageChanged}
		return m, func() tea.Msg { return saved }

	case ValidateResultMsg:
		if m.mode != ModeValidating {
			return m, nil
		}
		m.validEvents = msg.Events
		m.validError = msg.Err
		m.mode = ModeValidateResult
		return m, nil

	case spinner.TickMsg:
		if m.mode == ModeValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Delegate to active form
	return m.updateForm(msg)
}

// handleKeyMsg processes key messages based on the current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeSummary:
		return m.handleSummaryKeys(msg)
	case ModeFormCalendar, ModeFormStorage:
		return m.updateForm(msg)
	case ModeValidateResult:
		if key.Matches(msg, m.keys.Back, m.keys.Select) {
			m.mode = ModeSummary
			m.validError = nil
		}
		return m, nil
	case ModeValidating:
		// Only allow escape during validation
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeSummary
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSummaryKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return ConfigDoneMsg{} }

	case msg.String() == "c":
		m.loadBindings()
		m.mode = ModeFormCalendar
		m.form = m.buildCalendarForm()
		return m, m.form.Init()

	case msg.String() == "s":
		m.loadBindings()
		m.mode = ModeFormStorage
		m.form = m.buildStorageForm()
		return m, m.form.Init()

	case msg.String() == "t":
		m.mode = ModeValidating
		return m, tea.Batch(m.spinner.Tick, m.validateStorage(m.cfg.Storage, ""))
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || (m.mode != ModeFormCalendar && m.mode != ModeFormStorage) {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submit()
	case huh.StateAborted:
		m.mode = ModeSummary
		m.form = nil
		return m, nil
	}

	return m, cmd
}

// submit builds the new configuration from the form and writes it. A
// storage form is tested first; the file is only written when the backend
// answers.
func (m Model) submit() (Model, tea.Cmd) {
	next := m.cfg
	storageForm := m.mode == ModeFormStorage

	if storageForm {
		next.Storage = m.storageFromBindings()
	} else {
		next.Calendar.WeekStart = m.fb.weekStart
		next.Calendar.DefaultColor = strings.TrimSpace(m.fb.defaultColor)
		next.Calendar.DefaultStart = strings.TrimSpace(m.fb.defaultStart)
		next.Calendar.DefaultEnd = strings.TrimSpace(m.fb.defaultEnd)
		next.Display.Theme = m.fb.themeMode
		next.Display.MaxChips, _ = strconv.Atoi(strings.TrimSpace(m.fb.maxChips))
		next.Export.Dir = strings.TrimSpace(m.fb.exportDir)
	}

	m.form = nil
	if !storageForm {
		m.mode = ModeSummary
		return m, m.saveSettings(next, "")
	}

	m.mode = ModeValidating
	return m, tea.Batch(m.spinner.Tick, m.validateAndSave(next, m.fb.redisPassword))
}

func (m Model) storageFromBindings() model.StorageConfig {
	s := m.cfg.Storage
	s.Backend = m.fb.backend
	if s.Backend == model.BackendRedis {
		s.RedisAddr = strings.TrimSpace(m.fb.redisAddr)
		s.RedisKey = strings.TrimSpace(m.fb.redisKey)
	} else {
		s.Path = strings.TrimSpace(m.fb.path)
	}
	s.PollIntervalSec, _ = strconv.Atoi(strings.TrimSpace(m.fb.pollInterval))
	return s
}

// --- Forms ---

func (m *Model) loadBindings() {
	c := m.cfg
	m.fb.weekStart = strings.ToLower(c.Calendar.WeekStart)
	if m.fb.weekStart != "monday" {
		m.fb.weekStart = "sunday"
	}
	m.fb.themeMode = c.Display.Theme
	if m.fb.themeMode == "" {
		m.fb.themeMode = theme.ModeAuto
	}
	m.fb.maxChips = strconv.Itoa(c.Display.MaxChips)
	m.fb.defaultColor = c.Calendar.DefaultColor
	m.fb.defaultStart = c.Calendar.DefaultStart
	m.fb.defaultEnd = c.Calendar.DefaultEnd
	m.fb.exportDir = c.Export.Dir

	m.fb.backend = c.Storage.Backend
	if m.fb.backend == "" {
		m.fb.backend = model.BackendFile
	}
	m.fb.path = c.Storage.Path
	m.fb.redisAddr = c.Storage.RedisAddr
	m.fb.redisKey = c.Storage.RedisKey
	m.fb.redisPassword = "" // Never pre-fill credentials
	m.fb.pollInterval = strconv.Itoa(c.Storage.PollIntervalSec)
}

func (m *Model) buildCalendarForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Week starts on").
				Options(
					huh.NewOption("Sunday", "sunday"),
					huh.NewOption("Monday", "monday"),
				).
				Value(&m.fb.weekStart),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Follow terminal", theme.ModeAuto),
					huh.NewOption("Dark", theme.ModeDark),
					huh.NewOption("Light", theme.ModeLight),
				).
				Value(&m.fb.themeMode),
			huh.NewInput().
				Title("Events per day cell").
				Description("Further events collapse into \"+N more\"").
				Value(&m.fb.maxChips).
				Validate(validatePositive("Events per day cell")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default color").
				Placeholder("#RRGGBB").
				Value(&m.fb.defaultColor).
				Validate(validateHexColor),
			huh.NewInput().
				Title("Default start time").
				Placeholder("HH:MM").
				Value(&m.fb.defaultStart).
				Validate(validateClock("Default start time")),
			huh.NewInput().
				Title("Default end time").
				Placeholder("HH:MM").
				Value(&m.fb.defaultEnd).
				Validate(validateClock("Default end time")),
			huh.NewInput().
				Title("Export directory").
				Value(&m.fb.exportDir).
				Validate(validateRequired("Export directory")),
		),
	).WithWidth(m.formWidth())
}

func (m *Model) buildStorageForm() *huh.Form {
	fb := m.fb
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("JSON file", model.BackendFile),
					huh.NewOption("SQLite database", model.BackendSQLite),
					huh.NewOption("Redis", model.BackendRedis),
				).
				Value(&fb.backend),
			huh.NewInput().
				Title("Reload interval (seconds)").
				Description("How often to pick up changes from other sessions; 0 disables").
				Value(&fb.pollInterval).
				Validate(validateNonNegative("Reload interval")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Path").
				Description("Events file or database").
				Value(&fb.path).
				Validate(validateRequired("Path")),
		).WithHideFunc(func() bool { return fb.backend == model.BackendRedis }),
		huh.NewGroup(
			huh.NewInput().
				Title("Redis address").
				Placeholder("127.0.0.1:6379").
				Value(&fb.redisAddr).
				Validate(validateRequired("Redis address")),
			huh.NewInput().
				Title("Key").
				Placeholder("events").
				Value(&fb.redisKey).
				Validate(validateRequired("Key")),
			huh.NewInput().
				Title("Password").
				Description("Stored in the system keyring; leave blank to keep the current one").
				EchoMode(huh.EchoModePassword).
				Value(&fb.redisPassword),
		).WithHideFunc(func() bool { return fb.backend != model.BackendRedis }),
	).WithWidth(m.formWidth())
}

// --- Commands ---

// validateStorage opens the backend and reads the collection. An empty
// password falls back to the stored credential.
func (m Model) validateStorage(cfg model.StorageConfig, password string) tea.Cmd {
	open := m.open
	return func() tea.Msg {
		n, err := countEvents(open, cfg, password)
		return ValidateResultMsg{Events: n, Err: err}
	}
}

// validateAndSave tests the storage section and writes next if it works.
func (m Model) validateAndSave(next model.AppConfig, password string) tea.Cmd {
	open := m.open
	save := m.saveSettings(next, password)
	return func() tea.Msg {
		n, err := countEvents(open, next.Storage, password)
		if err != nil {
			return ValidateResultMsg{Events: n, Err: err}
		}
		return save()
	}
}

func countEvents(open OpenFunc, cfg model.StorageConfig, password string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	if password == "" && cfg.Backend == model.BackendRedis {
		password, _ = credential.RedisPassword()
	}

	s, err := open(ctx, cfg, password)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	events, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// saveSettings writes next to the config file and stores a new redis
// password when one was entered.
func (m Model) saveSettings(next model.AppConfig, password string) tea.Cmd {
	path := m.path
	save := m.save
	setCred := m.setCred
	storageChanged := next.Storage.Backend != m.cfg.Storage.Backend ||
		next.Storage.Path != m.cfg.Storage.Path ||
		next.Storage.RedisAddr != m.cfg.Storage.RedisAddr ||
		next.Storage.RedisKey != m.cfg.Storage.RedisKey ||
		password != ""

	return func() tea.Msg {
		if password != "" {
			if err := setCred(credential.RedisPasswordKey, password); err != nil {
				return settingsSavedInternalMsg{err: err}
			}
		}
		if err := save(path, &next); err != nil {
			return settingsSavedInternalMsg{err: err}
		}
		return settingsSavedInternalMsg{cfg: next, storageChanged: storageChanged}
	}
}

// --- View ---

// View renders the settings UI based on the current mode.
func (m Model) View() string {
	switch m.mode {
	case ModeSummary:
		return m.viewSummary()
	case ModeFormCalendar, ModeFormStorage:
		return m.viewForm()
	case ModeValidating:
		return m.viewValidating()
	case ModeValidateResult:
		return m.viewValidateResult()
	default:
		return ""
	}
}

func (m Model) viewSummary() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(22)

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	c := m.cfg
	rows := [][2]string{
		{"Config file", m.path},
		{"Week starts on", c.Calendar.WeekStartDay().String()},
		{"Theme", c.Display.Theme},
		{"Events per day cell", strconv.Itoa(c.Display.MaxChips)},
		{"Default color", c.Calendar.DefaultColor},
		{"Default time", c.Calendar.DefaultStart + " - " + c.Calendar.DefaultEnd},
		{"Export directory", c.Export.Dir},
		{"Storage backend", c.Storage.Backend},
	}
	if c.Storage.Backend == model.BackendRedis {
		rows = append(rows, [2]string{"Redis", c.Storage.RedisAddr + " " + c.Storage.RedisKey})
	} else {
		rows = append(rows, [2]string{"Storage path", c.Storage.Path})
	}
	rows = append(rows, [2]string{"Reload interval", c.Storage.PollInterval().String()})

	for _, r := range rows {
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(r[1])
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		statusStyle := lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Italic(true)
		b.WriteString(statusStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	hintStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	b.WriteString(hintStyle.Render(
		"c calendar & display | s storage | t test storage | esc back",
	))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(b.String())
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(m.form.View())
}

func (m Model) viewValidating() string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height)

	content := fmt.Sprintf(
		"%s Testing storage...\n\nPress esc to cancel.",
		m.spinner.View(),
	)

	return style.Render(content)
}

func (m Model) viewValidateResult() string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height)

	var content string
	if m.validError != nil {
		errStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorRed)
		content = errStyle.Render("Storage test failed") + "\n\n" +
			m.validError.Error() + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.ColorGray).
				Render("enter/esc back")
	} else {
		okStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorGreen)
		content = okStyle.Render("Storage reachable") + "\n\n" +
			fmt.Sprintf("%d events stored", m.validEvents) + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.ColorGray).
				Render("enter/esc back")
	}

	return style.Render(content)
}

// --- Helpers ---

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
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

// --- Validators ---

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validatePositive(fieldName string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number", fieldName)
		}
		return nil
	}
}

func validateNonNegative(fieldName string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be zero or more", fieldName)
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

func validateHexColor(s string) error {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return fmt.Errorf("color must look like #RRGGBB")
	}
	if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
		return fmt.Errorf("color must look like #RRGGBB")
	}
	return nil
}
