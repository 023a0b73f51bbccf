package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/nhle/eventcal/internal/model"
	"github.com/nhle/eventcal/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// ErrSaveFailed is returned by a MemoryStore with FailSave set.
var ErrSaveFailed = errors.New("save failed")

// MemoryStore keeps the collection in memory and counts saves.
type MemoryStore struct {
	mu       sync.Mutex
	events   []model.Event
	saves    int
	FailSave bool
	LoadErr  error
}

// NewMemoryStore returns a MemoryStore seeded with events.
func NewMemoryStore(events ...model.Event) *MemoryStore {
	return &MemoryStore{events: events}
}

func (m *MemoryStore) Load(_ context.Context) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]model.Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, events []model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave {
		return ErrSaveFailed
	}
	m.events = make([]model.Event, len(events))
	copy(m.events, events)
	m.saves++
	return nil
}

// Saved returns the last saved collection.
func (m *MemoryStore) Saved() []model.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Event, len(m.events))
	copy(out, m.events)
	return out
}

// Saves returns the number of successful saves.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FakeEvent returns a valid event on date with generated text fields.
func FakeEvent(date string) model.Event {
	return model.Event{
		ID:          gofakeit.UUID(),
		Name:        gofakeit.LetterN(12),
		StartTime:   "09:00",
		EndTime:     "10:00",
		Description: gofakeit.LetterN(40),
		Date:        date,
		Color:       model.DefaultColor,
	}
}
