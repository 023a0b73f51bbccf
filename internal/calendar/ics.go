package calendar

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/nhle/eventcal/internal/model"
)

const icsProductID = "-//eventcal//Month Calendar//EN"

// icsFloating is the iCalendar local-time form without a zone, matching the
// naive date and time strings stored on events.
const icsFloating = "20060102T150405"

// FormatICS writes events as a VCALENDAR. Events whose date or times do
// not parse are skipped.
func FormatICS(w io.Writer, events []model.Event, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	for _, e := range events {
		start, end, ok := eventSpan(e)
		if !ok {
			continue
		}

		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now.UTC())
		ve.SetProperty(ics.ComponentPropertyDtStart, start.Format(icsFloating))
		ve.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icsFloating))
		ve.SetSummary(e.Name)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		ve.SetProperty(ics.ComponentProperty("COLOR"), e.DisplayColor())
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing ics: %w", err)
	}
	return nil
}

// eventSpan combines the event date with its start and end times.
func eventSpan(e model.Event) (time.Time, time.Time, bool) {
	day, ok := e.Day()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse(model.TimeLayout, e.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(model.TimeLayout, e.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	at := func(clock time.Time) time.Time {
		return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	}
	return at(start), at(end), true
}
