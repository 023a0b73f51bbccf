package calendar

import (
	"sort"
	"time"

	"github.com/nhle/eventcal/internal/model"
)

// EventsOn returns the events whose date is exactly day, in collection
// order. Events with an unparseable date never match.
func EventsOn(events []model.Event, day time.Time) []model.Event {
	key := model.FormatDate(model.CivilDate(day))

	var out []model.Event
	for _, e := range events {
		if _, ok := e.Day(); !ok {
			continue
		}
		if e.Date == key {
			out = append(out, e)
		}
	}
	return out
}

// EventsInMonth returns the events dated inside ref's month, in collection
// order.
func EventsInMonth(events []model.Event, ref time.Time) []model.Event {
	first := MonthStart(ref)
	next := first.AddDate(0, 1, 0)

	var out []model.Event
	for _, e := range events {
		d, ok := e.Day()
		if !ok {
			continue
		}
		if !d.Before(first) && d.Before(next) {
			out = append(out, e)
		}
	}
	return out
}

// Index buckets a collection by date so that rendering a grid does not
// rescan the whole collection per cell.
type Index map[string][]model.Event

// NewIndex builds an Index. Bucket order follows collection order.
func NewIndex(events []model.Event) Index {
	idx := make(Index)
	for _, e := range events {
		d, ok := e.Day()
		if !ok {
			continue
		}
		key := model.FormatDate(d)
		idx[key] = append(idx[key], e)
	}
	return idx
}

// On returns the events dated day.
func (idx Index) On(day time.Time) []model.Event {
	return idx[model.FormatDate(model.CivilDate(day))]
}

// SortByStart returns a copy of events ordered by start time. Events
// starting at the same time keep their relative order.
func SortByStart(events []model.Event) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
