package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/eventcal/internal/model"
	"github.com/nhle/eventcal/tests/testutil"
)

func TestEventsOn(t *testing.T) {
	a := testutil.FakeEvent("2024-06-03")
	b := testutil.FakeEvent("2024-06-04")
	c := testutil.FakeEvent("2024-06-03")
	bad := testutil.FakeEvent("June 3rd")
	events := []model.Event{a, b, bad, c}

	assert.Equal(t, []model.Event{a, c}, EventsOn(events, date(2024, time.June, 3)))
	assert.Equal(t, []model.Event{b}, EventsOn(events, time.Date(2024, time.June, 4, 18, 30, 0, 0, time.UTC)))
	assert.Empty(t, EventsOn(events, date(2024, time.June, 5)))
	assert.Empty(t, EventsOn(nil, date(2024, time.June, 3)))
}

func TestIndexAgreesWithEventsOn(t *testing.T) {
	var events []model.Event
	for _, d := range []string{"2024-05-31", "2024-06-01", "2024-06-01", "2024-06-15", "2024-07-02", "bogus"} {
		events = append(events, testutil.FakeEvent(d))
	}

	idx := NewIndex(events)
	g := BuildGrid(date(2024, time.June, 1), time.Sunday)
	for _, d := range g.Days {
		assert.Equal(t, EventsOn(events, d.Date), idx.On(d.Date), d.Key())
	}
}

func TestEventsInMonth(t *testing.T) {
	may := testutil.FakeEvent("2024-05-31")
	first := testutil.FakeEvent("2024-06-01")
	last := testutil.FakeEvent("2024-06-30")
	july := testutil.FakeEvent("2024-07-01")
	events := []model.Event{may, last, first, july}

	got := EventsInMonth(events, date(2024, time.June, 17))
	assert.Equal(t, []model.Event{last, first}, got)
}

func TestSortByStart(t *testing.T) {
	late := model.Event{ID: "late", StartTime: "14:00"}
	early := model.Event{ID: "early", StartTime: "08:30"}
	tie := model.Event{ID: "tie", StartTime: "08:30"}
	in := []model.Event{late, early, tie}

	got := SortByStart(in)

	assert.Equal(t, []string{"early", "tie", "late"}, ids(got))
	assert.Equal(t, []string{"late", "early", "tie"}, ids(in))
}

func ids(events []model.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}
