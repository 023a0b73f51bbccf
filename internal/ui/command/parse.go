package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/nhle/eventcal/internal/calendar"
	"github.com/nhle/eventcal/internal/model"
)

// Action is a parsed palette command.
type Action int

const (
	ActionToday Action = iota
	ActionNext
	ActionPrev
	ActionGoto
	ActionExport
	ActionTheme
	ActionList
	ActionReload
	ActionSettings
	ActionQuit
)

// Command is the result of Parse.
type Command struct {
	Action Action
	Date   time.Time
	Format calendar.Format
}

// Usage documents one palette command.
type Usage struct {
	Syntax string
	Desc   string
}

// Usages lists the palette commands in the order the help screen shows them.
func Usages() []Usage {
	return []Usage{
		{Syntax: "today", Desc: "jump to today's date"},
		{Syntax: "next", Desc: "show the following month"},
		{Syntax: "prev", Desc: "show the preceding month"},
		{Syntax: "goto YYYY-MM[-DD]", Desc: "jump to a month or a single day"},
		{Syntax: "export json|csv|ics", Desc: "write the visible month to a file"},
		{Syntax: "list", Desc: "browse every event in date order"},
		{Syntax: "theme", Desc: "switch between dark and light colors"},
		{Syntax: "reload", Desc: "re-read events from storage"},
		{Syntax: "settings", Desc: "edit calendar and storage settings"},
		{Syntax: "quit", Desc: "leave the calendar"},
	}
}

var aliases = map[string]string{
	"previous": "prev",
	"all":      "list",
	"config":   "settings",
}

// Lookup returns the usage whose command name starts with word. Aliases
// accepted by Parse resolve to their command.
func Lookup(word string) (Usage, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return Usage{}, false
	}
	if name, ok := aliases[word]; ok {
		word = name
	}
	for _, u := range Usages() {
		name, _, _ := strings.Cut(u.Syntax, " ")
		if strings.HasPrefix(name, word) {
			return u, true
		}
	}
	return Usage{}, false
}

// Suggestions lists the completions offered by the palette input.
func Suggestions() []string {
	return []string{
		"today", "next", "prev", "goto ",
		"export json", "export csv", "export ics",
		"theme", "list", "reload", "settings", "quit",
	}
}

// Parse reads one palette line. goto accepts YYYY-MM or YYYY-MM-DD; a
// month alone selects its first day.
func Parse(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	switch fields[0] {
	case "today":
		return Command{Action: ActionToday}, nil
	case "next":
		return Command{Action: ActionNext}, nil
	case "prev", "previous":
		return Command{Action: ActionPrev}, nil
	case "theme":
		return Command{Action: ActionTheme}, nil
	case "list", "all":
		return Command{Action: ActionList}, nil
	case "reload":
		return Command{Action: ActionReload}, nil
	case "settings", "config":
		return Command{Action: ActionSettings}, nil
	case "quit", "q":
		return Command{Action: ActionQuit}, nil

	case "goto":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: goto YYYY-MM[-DD]")
		}
		d, err := parseTarget(fields[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Action: ActionGoto, Date: d}, nil

	case "export":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: export json|csv|ics")
		}
		f, err := calendar.ParseFormat(fields[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Action: ActionExport, Format: f}, nil

	default:
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

func parseTarget(s string) (time.Time, error) {
	if d, err := model.ParseDate(s); err == nil {
		return d, nil
	}
	d, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("goto: %q is not YYYY-MM or YYYY-MM-DD", s)
	}
	return d, nil
}
