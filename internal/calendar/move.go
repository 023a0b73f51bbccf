package calendar

import (
	"context"
	"fmt"

	"github.com/nhle/eventcal/internal/model"
)

// RescheduleRequest describes a grab-and-drop of an event between two grid
// cells.
type RescheduleRequest struct {
	SourceDayIndex      int
	DestinationDayIndex int
	EventID             string
}

// Validate checks that both indices address cells of g and that the event
// is currently dated on the source cell.
func (r RescheduleRequest) Validate(g Grid, events []model.Event) error {
	src, ok := g.DayAt(r.SourceDayIndex)
	if !ok {
		return fmt.Errorf("%w: source index %d outside grid", ErrInvalidMove, r.SourceDayIndex)
	}
	if _, ok := g.DayAt(r.DestinationDayIndex); !ok {
		return fmt.Errorf("%w: destination index %d outside grid", ErrInvalidMove, r.DestinationDayIndex)
	}
	if r.EventID == "" {
		return fmt.Errorf("%w: missing event id", ErrInvalidMove)
	}

	for _, e := range EventsOn(events, src.Date) {
		if e.ID == r.EventID {
			return nil
		}
	}
	return fmt.Errorf("%w: event %s is not on %s", ErrInvalidMove, r.EventID, src.Key())
}

// Move applies a validated drag payload by rescheduling the event to the
// destination cell's date.
func (c *Calendar) Move(ctx context.Context, g Grid, req RescheduleRequest) error {
	if err := req.Validate(g, c.Events()); err != nil {
		return err
	}
	dst, _ := g.DayAt(req.DestinationDayIndex)
	return c.Reschedule(ctx, req.EventID, dst.Key())
}
