package attendance

import (
	"time"

	"github.com/google/uuid"
)

// CheckOverlap decides whether a candidate session may coexist with the
// existing sessions of the same employee and day. excludeID skips one session
// by ID, used when validating an edit against its own prior state; pass
// uuid.Nil when adding a new session.
//
// Closed intervals compare half-open, [checkIn, checkOut), so back-to-back
// shifts that meet exactly at a boundary do not conflict. Two open sessions
// always conflict on the same calendar day: an employee cannot hold two
// unclosed shifts at once. Timestamps are truncated to millisecond precision
// before comparison.
//
// Returns nil when the candidate is legal, or an *OverlapError carrying the
// first conflicting session found.
func CheckOverlap(candidate Session, existing []Session, excludeID uuid.UUID) error {
	candIn := candidate.CheckIn.Truncate(time.Millisecond)
	var candOut *time.Time
	if candidate.CheckOut != nil {
		t := candidate.CheckOut.Truncate(time.Millisecond)
		candOut = &t
	}

	for _, other := range existing {
		if excludeID != uuid.Nil && other.ID == excludeID {
			continue
		}

		otherIn := other.CheckIn.Truncate(time.Millisecond)
		var otherOut *time.Time
		if other.CheckOut != nil {
			t := other.CheckOut.Truncate(time.Millisecond)
			otherOut = &t
		}

		conflict := false
		switch {
		case candOut != nil && otherOut != nil:
			// closed vs closed: half-open interval intersection
			conflict = candIn.Before(*otherOut) && otherIn.Before(*candOut)
		case candOut == nil && otherOut != nil:
			// open candidate vs closed: check-in inside [in, out)
			conflict = !candIn.Before(otherIn) && candIn.Before(*otherOut)
		case candOut != nil && otherOut == nil:
			// closed candidate vs open: candidate spans the open start
			conflict = candOut.After(otherIn) && candIn.Before(otherIn)
		default:
			// both open: at most one unclosed shift per day
			conflict = sameCalendarDay(candIn, otherIn)
		}

		if conflict {
			return &OverlapError{Conflict: other}
		}
	}
	return nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
