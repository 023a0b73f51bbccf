package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/eventcal/internal/logger"
	"github.com/nhle/eventcal/internal/model"
	"github.com/nhle/eventcal/tests/testutil"
)

func exportFixture() []model.Event {
	return []model.Event{
		{ID: "a", Name: "Standup", StartTime: "09:00", EndTime: "09:15", Date: "2024-06-03", Color: "#FF5733"},
		{ID: "b", Name: `Say "hi", then lunch`, StartTime: "12:00", EndTime: "13:00", Description: "line one\nline two", Date: "2024-06-20", Color: "#00AA00"},
	}
}

func TestFormatJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, exportFixture()))

	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {"))

	var got []model.Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, exportFixture(), got)
}

func TestFormatJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatCSV(&buf, exportFixture()))

	want := strings.Join([]string{
		"Name,Start Time,End Time,Description,Date,Color",
		`"Standup","09:00","09:15","","2024-06-03","#FF5733"`,
		"\"Say \"\"hi\"\", then lunch\",\"12:00\",\"13:00\",\"line one\nline two\",\"2024-06-20\",\"#00AA00\"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestFormatCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatCSV(&buf, nil))
	assert.Equal(t, csvHeader+"\n", buf.String())
}

func TestFormatICS(t *testing.T) {
	events := append(exportFixture(), model.Event{ID: "c", Name: "broken", StartTime: "x", EndTime: "y", Date: "2024-06-21"})
	stamp := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, FormatICS(&buf, events, stamp))

	cal, err := ics.ParseCalendar(strings.NewReader(buf.String()))
	require.NoError(t, err)

	vevents := cal.Events()
	require.Len(t, vevents, 2)

	first := vevents[0]
	assert.Equal(t, "a", first.Id())
	assert.Equal(t, "Standup", first.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "20240603T090000", first.GetProperty(ics.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20240603T091500", first.GetProperty(ics.ComponentPropertyDtEnd).Value)
	assert.Equal(t, "#FF5733", first.GetProperty(ics.ComponentProperty("COLOR")).Value)
	assert.Nil(t, first.GetProperty(ics.ComponentPropertyDescription))

	assert.Equal(t, "b", vevents[1].Id())
	assert.NotNil(t, vevents[1].GetProperty(ics.ComponentPropertyDescription))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSVFile, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestExportFileName(t *testing.T) {
	ref := date(2024, time.June, 17)
	assert.Equal(t, "events_June_2024.json", ExportFileName(ref, FormatJSONFile))
	assert.Equal(t, "events_June_2024.csv", ExportFileName(ref, FormatCSVFile))
	assert.Equal(t, "events_June_2024.ics", ExportFileName(ref, FormatICSFile))
}

func TestCalendarExportFiltersMonth(t *testing.T) {
	seed := append(exportFixture(),
		model.Event{ID: "may", Name: "May", StartTime: "09:00", EndTime: "10:00", Date: "2024-05-31"},
		model.Event{ID: "jul", Name: "July", StartTime: "09:00", EndTime: "10:00", Date: "2024-07-01"},
	)
	c, _ := newTestCalendar(t, seed...)
	dir := filepath.Join(t.TempDir(), "out")

	path, err := c.Export(date(2024, time.June, 3), FormatJSONFile, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "events_June_2024.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []model.Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, exportFixture(), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCalendarExportOverwrites(t *testing.T) {
	c, _ := newTestCalendar(t, exportFixture()...)
	dir := t.TempDir()
	ref := date(2024, time.June, 1)

	_, err := c.Export(ref, FormatCSVFile, dir)
	require.NoError(t, err)
	require.NoError(t, c.Delete(context.Background(), "b"))

	path, err := c.Export(ref, FormatCSVFile, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n")+1)
}

func TestCalendarExportLogsTypedAttrs(t *testing.T) {
	var logs bytes.Buffer
	c := New(logger.NewWriter(&logs, "info"), testutil.NewMemoryStore(exportFixture()...))
	require.NoError(t, c.Load(context.Background()))

	path, err := c.Export(date(2024, time.June, 1), FormatCSVFile, t.TempDir())
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "msg=\"events exported\"")
	assert.Contains(t, out, "op=calendar.Export")
	assert.Contains(t, out, "count=2")
	assert.Contains(t, out, "path="+path)
}
