package attendance

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Time-ordering validation failures. All are recoverable: the caller shows
// the message and refuses to persist.
var (
	ErrFutureCheckIn         = errors.New("check-in time cannot be in the future")
	ErrFutureCheckOut        = errors.New("check-out time cannot be in the future")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time cannot be before check-in time")
)

// OverlapError reports that a candidate session intersects an existing one.
// It carries the conflicting session so callers can show its window.
type OverlapError struct {
	Conflict Session
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("session overlaps an existing session (%s)", e.Conflict.Window())
}

// InvalidSessionRefError reports an edit or delete that targets a session ID
// not present in the day's session set.
type InvalidSessionRefError struct {
	ID uuid.UUID
}

func (e *InvalidSessionRefError) Error() string {
	return fmt.Sprintf("no session with id %s", e.ID)
}
