// Package calendar holds the month-grid arithmetic, the per-day event
// lookup and the in-memory event collection with its mutations.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nhle/eventcal/internal/logger"
	"github.com/nhle/eventcal/internal/model"
)

// Storage persists the whole event collection as one unit.
type Storage interface {
	Load(ctx context.Context) ([]model.Event, error)
	Save(ctx context.Context, events []model.Event) error
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithDefaultColor overrides the color given to events created without one.
func WithDefaultColor(color string) Option {
	return func(c *Calendar) {
		if color != "" {
			c.defaultColor = color
		}
	}
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(c *Calendar) {
		c.newID = gen
	}
}

// Calendar is the application state: the event collection and the store
// it is written back to after every mutation.
type Calendar struct {
	mu           sync.Mutex
	log          *slog.Logger
	storage      Storage
	validate     *validator.Validate
	events       []model.Event
	defaultColor string
	newID        func() string
	saveErr      error

	// gen counts changes to events; Sync drops a read that raced one.
	gen uint64
}

// New creates an empty Calendar. Call Load to read the stored collection.
func New(log *slog.Logger, storage Storage, opts ...Option) *Calendar {
	c := &Calendar{
		log:          log,
		storage:      storage,
		validate:     newValidator(),
		defaultColor: model.DefaultColor,
		newID:        func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDefaultColor changes the color given to events created without one.
func (c *Calendar) SetDefaultColor(color string) {
	if color == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultColor = color
}

// Load replaces the in-memory collection with the stored one. A read or
// decode failure leaves the calendar empty and returns a *StorageError;
// the calendar stays usable.
func (c *Calendar) Load(ctx context.Context) error {
	const op = "calendar.Load"

	events, err := c.storage.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.events = nil
		serr := &StorageError{Op: "loading", Err: err}
		c.log.Error("failed to load events, starting empty", slog.String("op", op), logger.Err(serr))
		return serr
	}

	c.events = events
	c.gen++
	c.log.Debug("events loaded", slog.String("op", op), slog.Int("count", len(events)))
	return nil
}

// Sync re-reads the store and adopts its collection when it differs from
// the in-memory one, which happens when another process shares the
// backend. Unlike Load, a failed read keeps the current events. A read
// that overlaps a local mutation is discarded.
func (c *Calendar) Sync(ctx context.Context) (bool, error) {
	const op = "calendar.Sync"

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	events, err := c.storage.Load(ctx)
	if err != nil {
		return false, &StorageError{Op: "loading", Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		c.log.Debug("discarding stale reload", slog.String("op", op))
		return false, nil
	}
	if slices.Equal(events, c.events) {
		return false, nil
	}

	c.log.Info("events changed in storage", slog.String("op", op),
		slog.Int("before", len(c.events)), slog.Int("after", len(events)))
	c.events = events
	c.gen++
	return true, nil
}

// Events returns a copy of the collection in insertion order.
func (c *Calendar) Events() []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Len returns the number of events.
func (c *Calendar) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

// Get returns the event with the given id.
func (c *Calendar) Get(id string) (model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return model.Event{}, fmt.Errorf("event %s: %w", id, ErrEventNotFound)
	}
	return c.events[i], nil
}

// EventsOn returns the events dated day, in insertion order.
func (c *Calendar) EventsOn(day time.Time) []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return EventsOn(c.events, day)
}

// EventsInMonth returns the events dated inside ref's month.
func (c *Calendar) EventsInMonth(ref time.Time) []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return EventsInMonth(c.events, ref)
}

// SaveErr returns the error from the most recent save, or nil if it
// succeeded.
func (c *Calendar) SaveErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveErr
}

// Create validates e, assigns it a new id and appends it.
func (c *Calendar) Create(ctx context.Context, e model.Event) (model.Event, error) {
	const op = "calendar.Create"

	c.mu.Lock()
	defer c.mu.Unlock()

	e = normalizeEvent(e, c.defaultColor)
	if err := validateEvent(c.validate, e); err != nil {
		return model.Event{}, err
	}

	e.ID = c.newID()
	c.events = append(c.events, e)
	c.persist(ctx, op)

	c.log.Info("event created", slog.String("op", op), slog.String("id", e.ID), slog.String("date", e.Date))
	return e, nil
}

// Update replaces the fields of the event with e.ID.
func (c *Calendar) Update(ctx context.Context, e model.Event) (model.Event, error) {
	const op = "calendar.Update"

	c.mu.Lock()
	defer c.mu.Unlock()

	e = normalizeEvent(e, c.defaultColor)
	if err := validateEvent(c.validate, e); err != nil {
		return model.Event{}, err
	}

	i := c.indexOf(e.ID)
	if i < 0 {
		c.log.Warn("update for unknown event", slog.String("op", op), slog.String("id", e.ID))
		return model.Event{}, fmt.Errorf("event %s: %w", e.ID, ErrEventNotFound)
	}

	c.events[i] = e
	c.persist(ctx, op)

	c.log.Info("event updated", slog.String("op", op), slog.String("id", e.ID))
	return e, nil
}

// Delete removes the event with the given id. There is no undo.
func (c *Calendar) Delete(ctx context.Context, id string) error {
	const op = "calendar.Delete"

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		c.log.Warn("delete for unknown event", slog.String("op", op), slog.String("id", id))
		return fmt.Errorf("event %s: %w", id, ErrEventNotFound)
	}

	events := make([]model.Event, 0, len(c.events)-1)
	events = append(events, c.events[:i]...)
	events = append(events, c.events[i+1:]...)
	c.events = events
	c.persist(ctx, op)

	c.log.Info("event deleted", slog.String("op", op), slog.String("id", id))
	return nil
}

// Reschedule moves the event to date, leaving its times untouched. Any
// valid date is accepted.
func (c *Calendar) Reschedule(ctx context.Context, id string, date string) error {
	const op = "calendar.Reschedule"

	d, err := model.ParseDate(date)
	if err != nil {
		return &ValidationError{Field: "Date", Message: "Date must be a date (YYYY-MM-DD)."}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		c.log.Warn("reschedule for unknown event", slog.String("op", op), slog.String("id", id))
		return fmt.Errorf("event %s: %w", id, ErrEventNotFound)
	}

	from := c.events[i].Date
	c.events[i].Date = model.FormatDate(d)
	c.persist(ctx, op)

	c.log.Info("event rescheduled", slog.String("op", op), slog.String("id", id),
		slog.String("from", from), slog.String("to", c.events[i].Date))
	return nil
}

// persist writes the whole collection. A failure is logged and recorded
// for SaveErr but does not undo the in-memory change. Callers hold c.mu.
func (c *Calendar) persist(ctx context.Context, op string) {
	c.gen++

	snapshot := make([]model.Event, len(c.events))
	copy(snapshot, c.events)

	if err := c.storage.Save(ctx, snapshot); err != nil {
		c.saveErr = &StorageError{Op: "saving", Err: err}
		c.log.Error("failed to save events", slog.String("op", op), logger.Err(c.saveErr))
		return
	}
	c.saveErr = nil
}

func (c *Calendar) indexOf(id string) int {
	for i := range c.events {
		if c.events[i].ID == id {
			return i
		}
	}
	return -1
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
