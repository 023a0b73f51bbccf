package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrEventNotFound is returned when an id does not match any event.
	ErrEventNotFound = errors.New("event not found")

	// ErrInvalidMove is returned for a drag payload that does not describe
	// an event on a displayed day.
	ErrInvalidMove = errors.New("invalid move")
)

// ValidationError rejects user input before any mutation happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps a failure reading or writing the persisted collection.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s events: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
