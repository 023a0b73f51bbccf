package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nhle/eventcal/internal/fileutil"
	"github.com/nhle/eventcal/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatJSONFile Format = "json"
	FormatCSVFile  Format = "csv"
	FormatICSFile  Format = "ics"
)

// ParseFormat accepts "json", "csv" or "ics" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSONFile, FormatCSVFile, FormatICSFile:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, csv or ics)", s)
	}
}

// csvHeader is the first line of every CSV export.
const csvHeader = "Name,Start Time,End Time,Description,Date,Color"

// ExportFileName returns events_<Month>_<Year>.<ext> for ref's month.
func ExportFileName(ref time.Time, f Format) string {
	return fmt.Sprintf("events_%s.%s", ref.Format("January_2006"), f)
}

// FormatJSON writes events as a pretty-printed JSON array.
func FormatJSON(w io.Writer, events []model.Event) error {
	if events == nil {
		events = []model.Event{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}
	return nil
}

// FormatCSV writes the header row and one row per event. Every field is
// quoted and embedded quotes are doubled. The header always ends in a
// newline; rows are newline separated without a trailing one.
func FormatCSV(w io.Writer, events []model.Event) error {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for n, e := range events {
		if n > 0 {
			b.WriteByte('\n')
		}
		fields := []string{e.Name, e.StartTime, e.EndTime, e.Description, e.Date, e.Color}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteCSV(f))
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Render formats events in f. now stamps iCalendar output.
func Render(w io.Writer, f Format, events []model.Event, now time.Time) error {
	switch f {
	case FormatJSONFile:
		return FormatJSON(w, events)
	case FormatCSVFile:
		return FormatCSV(w, events)
	case FormatICSFile:
		return FormatICS(w, events, now)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// Export writes the events of ref's month to dir and returns the file path.
func (c *Calendar) Export(ref time.Time, f Format, dir string) (string, error) {
	const op = "calendar.Export"

	events := c.EventsInMonth(ref)

	var buf bytes.Buffer
	if err := Render(&buf, f, events, time.Now()); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, ExportFileName(ref, f))
	if err := fileutil.WriteAtomic(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	c.log.Info("events exported", slog.String("op", op), slog.String("path", path), slog.Int("count", len(events)))
	return path, nil
}
