package command

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/eventcal/internal/calendar"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"today", Command{Action: ActionToday}},
		{"  NEXT ", Command{Action: ActionNext}},
		{"prev", Command{Action: ActionPrev}},
		{"theme", Command{Action: ActionTheme}},
		{"list", Command{Action: ActionList}},
		{"reload", Command{Action: ActionReload}},
		{"config", Command{Action: ActionSettings}},
		{"q", Command{Action: ActionQuit}},
		{"goto 2024-06", Command{Action: ActionGoto, Date: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)}},
		{"goto 2024-06-17", Command{Action: ActionGoto, Date: time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)}},
		{"export ics", Command{Action: ActionExport, Format: calendar.FormatICSFile}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, line := range []string{"", "goto", "goto june", "export", "export pdf", "frobnicate"} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"exp", "export json|csv|ics"},
		{"GOTO", "goto YYYY-MM[-DD]"},
		{"previous", "prev"},
		{"all", "list"},
		{"config", "settings"},
		{"q", "quit"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			u, ok := Lookup(tt.word)
			require.True(t, ok)
			assert.Equal(t, tt.want, u.Syntax)
			assert.NotEmpty(t, u.Desc)
		})
	}

	_, ok := Lookup("frobnicate")
	assert.False(t, ok)
	_, ok = Lookup("  ")
	assert.False(t, ok)
}

func TestEverySuggestionIsDocumented(t *testing.T) {
	for _, s := range Suggestions() {
		_, ok := Lookup(strings.Fields(s)[0])
		assert.True(t, ok, s)
	}
}
