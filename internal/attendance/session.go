package attendance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session statuses
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Worked-hours sentinel values used when a duration cannot be computed.
const (
	WorkedIncomplete = "Incomplete"
	WorkedInvalid    = "Invalid"
)

// Session is one continuous work interval for one employee on one calendar day.
// Sessions are addressed by ID, not by slice position, so deleting one session
// never invalidates references to its neighbours.
type Session struct {
	ID             uuid.UUID  `json:"id"`
	CheckIn        time.Time  `json:"checkIn"`
	CheckOut       *time.Time `json:"checkOut"`
	WorkedHours    string     `json:"worked_hours"`
	Status         string     `json:"status"`
	EditedBy       string     `json:"editedBy,omitempty"`
	EditedAt       *time.Time `json:"editedAt,omitempty"`
	CheckInEdited  bool       `json:"checkInEdited"`
	CheckOutEdited bool       `json:"checkOutEdited"`
}

// DaySessions is the set of sessions belonging to one employee on one calendar
// day, in display order.
type DaySessions struct {
	Sessions    []Session `json:"sessions"`
	IsClockedIn bool      `json:"isClockedIn"`
}

// NewSession builds a session for a recorded check-in/check-out pair. Status
// and worked hours are derived; the ID is generated here and stays stable for
// the life of the session.
func NewSession(checkIn time.Time, checkOut *time.Time, recordedBy string, now time.Time) Session {
	s := Session{
		ID:       uuid.New(),
		CheckIn:  checkIn,
		CheckOut: checkOut,
		EditedBy: recordedBy,
	}
	s.EditedAt = &now
	s.Status = deriveStatus(checkOut)
	s.WorkedHours = ComputeWorkedDuration(checkIn, checkOut)
	return s
}

// ComputeWorkedDuration returns the worked duration for a check-in/check-out
// pair as "Xh Ym", or "Incomplete" when the session is still open, or
// "Invalid" when the check-out precedes the check-in.
//
// Raw elapsed time is clamped at 24 hours before the statutory break
// deduction: shifts of 12.5 hours or more lose a full hour, shifts of 4.5
// hours or more lose 30 minutes. Fractional minutes are truncated.
func ComputeWorkedDuration(checkIn time.Time, checkOut *time.Time) string {
	if checkOut == nil {
		return WorkedIncomplete
	}
	if checkOut.Before(checkIn) {
		return WorkedInvalid
	}

	elapsed := checkOut.Sub(checkIn)
	if elapsed > 24*time.Hour {
		elapsed = 24 * time.Hour
	}

	switch {
	case elapsed >= 12*time.Hour+30*time.Minute:
		elapsed -= time.Hour
	case elapsed >= 4*time.Hour+30*time.Minute:
		elapsed -= 30 * time.Minute
	}

	totalMinutes := int(elapsed.Minutes())
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}

// ValidateCandidateTimes runs the time-ordering checks that must pass before
// any overlap check: neither endpoint may be in the future, and a check-out
// may not precede its check-in.
func ValidateCandidateTimes(checkIn time.Time, checkOut *time.Time, now time.Time) error {
	if checkIn.After(now) {
		return ErrFutureCheckIn
	}
	if checkOut != nil {
		if checkOut.After(now) {
			return ErrFutureCheckOut
		}
		if checkOut.Before(checkIn) {
			return ErrCheckOutBeforeCheckIn
		}
	}
	return nil
}

// ApplyEdit replaces a session's endpoints, re-deriving status and worked
// hours. The edited flags are sticky: once an endpoint has been changed the
// flag stays set, even if a later edit restores the original value.
func ApplyEdit(s Session, newCheckIn time.Time, newCheckOut *time.Time, editor string, now time.Time) Session {
	if !newCheckIn.Equal(s.CheckIn) {
		s.CheckInEdited = true
	}
	if !timesEqual(newCheckOut, s.CheckOut) {
		s.CheckOutEdited = true
	}

	s.CheckIn = newCheckIn
	s.CheckOut = newCheckOut
	s.Status = deriveStatus(newCheckOut)
	s.WorkedHours = ComputeWorkedDuration(newCheckIn, newCheckOut)
	s.EditedBy = editor
	s.EditedAt = &now
	return s
}

// Recalculate refreshes the derived fields of every session and the day's
// clocked-in flag. Called after any mutation of the session set.
func (d *DaySessions) Recalculate() {
	d.IsClockedIn = false
	for i := range d.Sessions {
		s := &d.Sessions[i]
		s.Status = deriveStatus(s.CheckOut)
		s.WorkedHours = ComputeWorkedDuration(s.CheckIn, s.CheckOut)
		if s.Status == StatusOpen {
			d.IsClockedIn = true
		}
	}
}

// Find returns the session with the given ID and its position in display
// order, or an InvalidSessionRefError when no session matches.
func (d *DaySessions) Find(id uuid.UUID) (int, *Session, error) {
	for i := range d.Sessions {
		if d.Sessions[i].ID == id {
			return i, &d.Sessions[i], nil
		}
	}
	return -1, nil, &InvalidSessionRefError{ID: id}
}

// Remove deletes the session with the given ID, closing the gap in display
// order.
func (d *DaySessions) Remove(id uuid.UUID) error {
	i, _, err := d.Find(id)
	if err != nil {
		return err
	}
	d.Sessions = append(d.Sessions[:i], d.Sessions[i+1:]...)
	d.Recalculate()
	return nil
}

// Window describes the session's time range for conflict messages, e.g.
// "09:00 – 17:00" or "09:00 – open".
func (s Session) Window() string {
	if s.CheckOut == nil {
		return fmt.Sprintf("%s – open", s.CheckIn.Format("15:04"))
	}
	return fmt.Sprintf("%s – %s", s.CheckIn.Format("15:04"), s.CheckOut.Format("15:04"))
}

func deriveStatus(checkOut *time.Time) string {
	if checkOut == nil {
		return StatusOpen
	}
	return StatusClosed
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
