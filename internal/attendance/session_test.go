package attendance

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return ts
}

func timePtr(ts time.Time) *time.Time { return &ts }

func TestComputeWorkedDuration(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string // empty means open session
		want     string
	}{
		{"open session", "2025-03-10 09:00", "", "Incomplete"},
		{"checkout before checkin", "2025-03-10 17:00", "2025-03-10 09:00", "Invalid"},
		{"eight hour shift loses half hour", "2025-03-10 09:00", "2025-03-10 17:00", "7h 30m"},
		{"thirteen hour shift loses full hour", "2025-03-10 08:00", "2025-03-10 21:00", "12h 0m"},
		{"short shift no deduction", "2025-03-10 09:00", "2025-03-10 09:20", "0h 20m"},
		{"exactly 4.5h triggers half hour", "2025-03-10 09:00", "2025-03-10 13:30", "4h 0m"},
		{"just under 4.5h keeps all", "2025-03-10 09:00", "2025-03-10 13:29", "4h 29m"},
		{"exactly 12.5h triggers full hour", "2025-03-10 08:00", "2025-03-10 20:30", "11h 30m"},
		{"zero length", "2025-03-10 09:00", "2025-03-10 09:00", "0h 0m"},
		{"corrupt multi-day pair clamps at 24h", "2025-03-10 09:00", "2025-03-14 09:00", "23h 0m"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := mustTime(t, tc.checkIn)
			var out *time.Time
			if tc.checkOut != "" {
				out = timePtr(mustTime(t, tc.checkOut))
			}

			got := ComputeWorkedDuration(in, out)
			if got != tc.want {
				t.Errorf("ComputeWorkedDuration(%s, %s) = %q, want %q", tc.checkIn, tc.checkOut, got, tc.want)
			}

			// Pure function: a second call must agree with the first.
			if again := ComputeWorkedDuration(in, out); again != got {
				t.Errorf("not idempotent: first %q, second %q", got, again)
			}
		})
	}
}

func TestComputeWorkedDurationTruncatesSeconds(t *testing.T) {
	in := mustTime(t, "2025-03-10 09:00")
	out := in.Add(1*time.Hour + 59*time.Minute + 59*time.Second)

	if got := ComputeWorkedDuration(in, &out); got != "1h 59m" {
		t.Errorf("expected fractional minutes truncated to %q, got %q", "1h 59m", got)
	}
}

func TestValidateCandidateTimes(t *testing.T) {
	now := mustTime(t, "2025-03-10 18:00")

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  error
	}{
		{"valid closed pair", "2025-03-10 09:00", "2025-03-10 17:00", nil},
		{"valid open session", "2025-03-10 09:00", "", nil},
		{"future check-in", "2025-03-10 19:00", "", ErrFutureCheckIn},
		{"future check-out", "2025-03-10 09:00", "2025-03-10 19:00", ErrFutureCheckOut},
		{"check-out before check-in", "2025-03-10 17:00", "2025-03-10 09:00", ErrCheckOutBeforeCheckIn},
		{"future check-in reported before ordering", "2025-03-10 20:00", "2025-03-10 19:00", ErrFutureCheckIn},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := mustTime(t, tc.checkIn)
			var out *time.Time
			if tc.checkOut != "" {
				out = timePtr(mustTime(t, tc.checkOut))
			}

			err := ValidateCandidateTimes(in, out, now)
			if err != tc.wantErr {
				t.Errorf("got error %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestApplyEditStickyFlags(t *testing.T) {
	now := mustTime(t, "2025-03-10 18:00")
	s := NewSession(mustTime(t, "2025-03-10 09:00"), timePtr(mustTime(t, "2025-03-10 17:00")), "manager1", now)

	if s.CheckInEdited || s.CheckOutEdited {
		t.Fatalf("fresh session must not carry edited flags")
	}

	// Change the check-in only.
	edited := ApplyEdit(s, mustTime(t, "2025-03-10 08:30"), s.CheckOut, "manager2", now)
	if !edited.CheckInEdited {
		t.Errorf("checkInEdited not set after check-in change")
	}
	if edited.CheckOutEdited {
		t.Errorf("checkOutEdited set although check-out unchanged")
	}
	if edited.WorkedHours != "8h 0m" {
		t.Errorf("worked hours not recomputed: got %q", edited.WorkedHours)
	}
	if edited.EditedBy != "manager2" {
		t.Errorf("editedBy = %q, want manager2", edited.EditedBy)
	}

	// Edit the check-in back to its original value: the flag must stay set.
	reverted := ApplyEdit(edited, s.CheckIn, edited.CheckOut, "manager2", now)
	if !reverted.CheckInEdited {
		t.Errorf("edited flag cleared after reverting value; flags are sticky")
	}

	// Applying an identical edit twice is a no-op beyond the first flip.
	again := ApplyEdit(reverted, reverted.CheckIn, reverted.CheckOut, "manager2", now)
	if again.CheckInEdited != reverted.CheckInEdited || again.CheckOutEdited != reverted.CheckOutEdited {
		t.Errorf("identical edit changed flags: %+v vs %+v", again, reverted)
	}
}

func TestApplyEditReopensSession(t *testing.T) {
	now := mustTime(t, "2025-03-10 18:00")
	s := NewSession(mustTime(t, "2025-03-10 09:00"), timePtr(mustTime(t, "2025-03-10 17:00")), "manager1", now)

	reopened := ApplyEdit(s, s.CheckIn, nil, "manager1", now)
	if reopened.Status != StatusOpen {
		t.Errorf("status = %q, want %q", reopened.Status, StatusOpen)
	}
	if reopened.WorkedHours != WorkedIncomplete {
		t.Errorf("worked hours = %q, want %q", reopened.WorkedHours, WorkedIncomplete)
	}
	if !reopened.CheckOutEdited {
		t.Errorf("removing the check-out must set checkOutEdited")
	}
}

func TestDaySessionsRemoveKeepsIdentity(t *testing.T) {
	now := mustTime(t, "2025-03-10 23:00")
	a := NewSession(mustTime(t, "2025-03-10 06:00"), timePtr(mustTime(t, "2025-03-10 10:00")), "m", now)
	b := NewSession(mustTime(t, "2025-03-10 11:00"), timePtr(mustTime(t, "2025-03-10 14:00")), "m", now)
	c := NewSession(mustTime(t, "2025-03-10 15:00"), nil, "m", now)

	day := &DaySessions{Sessions: []Session{a, b, c}}
	day.Recalculate()

	if !day.IsClockedIn {
		t.Fatalf("day with an open session must report isClockedIn")
	}

	if err := day.Remove(b.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(day.Sessions) != 2 {
		t.Fatalf("expected 2 sessions after delete, got %d", len(day.Sessions))
	}

	// c shifted into b's old slot but is still reachable by its own ID.
	if day.Sessions[1].ID != c.ID {
		t.Errorf("expected session %s at index 1, got %s", c.ID, day.Sessions[1].ID)
	}
	if _, found, err := day.Find(c.ID); err != nil || found.CheckIn != c.CheckIn {
		t.Errorf("session lost identity after delete: %v", err)
	}

	if err := day.Remove(uuid.New()); err == nil {
		t.Errorf("expected InvalidSessionRefError for unknown id")
	} else if _, ok := err.(*InvalidSessionRefError); !ok {
		t.Errorf("expected *InvalidSessionRefError, got %T", err)
	}
}

func TestDaySessionsClockedInClearsAfterClose(t *testing.T) {
	now := mustTime(t, "2025-03-10 23:00")
	open := NewSession(mustTime(t, "2025-03-10 09:00"), nil, "m", now)

	day := &DaySessions{Sessions: []Session{open}}
	day.Recalculate()
	if !day.IsClockedIn {
		t.Fatalf("expected isClockedIn with one open session")
	}

	day.Sessions[0] = ApplyEdit(day.Sessions[0], open.CheckIn, timePtr(mustTime(t, "2025-03-10 17:00")), "m", now)
	day.Recalculate()
	if day.IsClockedIn {
		t.Errorf("isClockedIn must clear once every session is closed")
	}
}
