package calendar

import (
	"time"

	"github.com/nhle/eventcal/internal/model"
)

// Day is one cell of the month grid. Padding cells from the neighbouring
// months have InMonth set to false.
type Day struct {
	Date    time.Time
	InMonth bool
}

// Key returns the cell's date as YYYY-MM-DD.
func (d Day) Key() string {
	return model.FormatDate(d.Date)
}

// Grid is the full set of cells displayed for one month. Days always starts
// on WeekStart and its length is a multiple of seven.
type Grid struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Days      []Day
}

// BuildGrid computes the cells for the month containing ref, padded with
// days from the adjacent months so the grid begins at the start of the
// week holding the 1st and ends at the end of the week holding the last day.
func BuildGrid(ref time.Time, weekStart time.Weekday) Grid {
	first := MonthStart(ref)
	last := first.AddDate(0, 1, -1)

	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	trail := (int(weekStart) + 6 - int(last.Weekday()) + 7) % 7

	start := first.AddDate(0, 0, -lead)
	total := lead + last.Day() + trail

	days := make([]Day, total)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = Day{Date: d, InMonth: d.Month() == first.Month()}
	}

	return Grid{
		Year:      first.Year(),
		Month:     first.Month(),
		WeekStart: weekStart,
		Days:      days,
	}
}

// MonthStart returns the first day of t's month as a civil date.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of the grid's month.
func (g Grid) MonthStart() time.Time {
	return time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Title renders "January 2006".
func (g Grid) Title() string {
	return g.MonthStart().Format("January 2006")
}

// First returns the first displayed cell date.
func (g Grid) First() time.Time {
	if len(g.Days) == 0 {
		return time.Time{}
	}
	return g.Days[0].Date
}

// Last returns the last displayed cell date.
func (g Grid) Last() time.Time {
	if len(g.Days) == 0 {
		return time.Time{}
	}
	return g.Days[len(g.Days)-1].Date
}

// Weeks splits the cells into rows of seven.
func (g Grid) Weeks() [][]Day {
	weeks := make([][]Day, 0, len(g.Days)/7)
	for i := 0; i+7 <= len(g.Days); i += 7 {
		weeks = append(weeks, g.Days[i:i+7])
	}
	return weeks
}

// IndexOf returns the cell index holding date, or -1 when the date is not
// displayed.
func (g Grid) IndexOf(date time.Time) int {
	if len(g.Days) == 0 {
		return -1
	}
	d := model.CivilDate(date)
	if d.Before(g.First()) || d.After(g.Last()) {
		return -1
	}
	return int(d.Sub(g.First()).Hours() / 24)
}

// Contains reports whether date is displayed, padding included.
func (g Grid) Contains(date time.Time) bool {
	return g.IndexOf(date) >= 0
}

// DayAt returns the cell at index i.
func (g Grid) DayAt(i int) (Day, bool) {
	if i < 0 || i >= len(g.Days) {
		return Day{}, false
	}
	return g.Days[i], true
}

// WeekdayHeaders returns the three-letter weekday labels in grid order.
func WeekdayHeaders(weekStart time.Weekday) []string {
	headers := make([]string, 7)
	for i := range headers {
		headers[i] = time.Weekday((int(weekStart) + i) % 7).String()[:3]
	}
	return headers
}
