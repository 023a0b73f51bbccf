package model

import (
	"fmt"
	"time"
)

// Layouts for the naive date and time-of-day strings stored on an Event.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Defaults applied to new events.
const (
	DefaultColor     = "#FF5733"
	DefaultStartTime = "09:00"
	DefaultEndTime   = "10:00"
)

// Event is a single user-created calendar entry. The JSON keys match the
// payload the browser calendar kept in local storage.
type Event struct {
	ID          string `json:"id" db:"id" validate:"-"`
	Name        string `json:"name" db:"name" validate:"required"`
	StartTime   string `json:"startTime" db:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"endTime" db:"end_time" validate:"required,datetime=15:04"`
	Description string `json:"description,omitempty" db:"description" validate:"-"`
	Date        string `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	Color       string `json:"color,omitempty" db:"color" validate:"omitempty,hexcolor"`
}

// Day parses the event's date. Hand-edited data may carry a malformed date,
// in which case ok is false.
func (e Event) Day() (time.Time, bool) {
	d, err := ParseDate(e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// DisplayColor returns the event color, falling back to DefaultColor.
func (e Event) DisplayColor() string {
	if e.Color == "" {
		return DefaultColor
	}
	return e.Color
}

// TimeRange renders "09:00 - 10:00".
func (e Event) TimeRange() string {
	return fmt.Sprintf("%s - %s", e.StartTime, e.EndTime)
}

// ParseDate parses a YYYY-MM-DD string into a midnight UTC civil date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return d, nil
}

// FormatDate renders the civil date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CivilDate drops the clock and zone from t, keeping its wall-clock date.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
