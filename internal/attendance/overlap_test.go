package attendance

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func closedSession(t *testing.T, in, out string) Session {
	t.Helper()
	return Session{
		ID:       uuid.New(),
		CheckIn:  mustTime(t, in),
		CheckOut: timePtr(mustTime(t, out)),
		Status:   StatusClosed,
	}
}

func openSession(t *testing.T, in string) Session {
	t.Helper()
	return Session{
		ID:      uuid.New(),
		CheckIn: mustTime(t, in),
		Status:  StatusOpen,
	}
}

func TestCheckOverlapClosedClosed(t *testing.T) {
	existing := []Session{closedSession(t, "2025-03-10 09:00", "2025-03-10 17:00")}

	tests := []struct {
		name     string
		in, out  string
		conflict bool
	}{
		{"back-to-back at boundary", "2025-03-10 17:00", "2025-03-10 18:00", false},
		{"ends at existing start", "2025-03-10 07:00", "2025-03-10 09:00", false},
		{"one minute into existing", "2025-03-10 16:59", "2025-03-10 18:00", true},
		{"fully inside existing", "2025-03-10 10:00", "2025-03-10 11:00", true},
		{"fully covers existing", "2025-03-10 08:00", "2025-03-10 18:00", true},
		{"identical interval", "2025-03-10 09:00", "2025-03-10 17:00", true},
		{"entirely before", "2025-03-10 05:00", "2025-03-10 08:00", false},
		{"entirely after", "2025-03-10 18:00", "2025-03-10 20:00", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cand := closedSession(t, tc.in, tc.out)
			err := CheckOverlap(cand, existing, uuid.Nil)
			if tc.conflict && err == nil {
				t.Errorf("expected conflict for [%s, %s)", tc.in, tc.out)
			}
			if !tc.conflict && err != nil {
				t.Errorf("unexpected conflict for [%s, %s): %v", tc.in, tc.out, err)
			}
		})
	}
}

func TestCheckOverlapOpenCandidate(t *testing.T) {
	existing := []Session{closedSession(t, "2025-03-10 09:00", "2025-03-10 17:00")}

	tests := []struct {
		name     string
		in       string
		conflict bool
	}{
		{"check-in inside closed interval", "2025-03-10 12:00", true},
		{"check-in at closed start", "2025-03-10 09:00", true},
		{"check-in at closed end boundary", "2025-03-10 17:00", false},
		{"check-in before closed interval", "2025-03-10 07:00", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckOverlap(openSession(t, tc.in), existing, uuid.Nil)
			if tc.conflict != (err != nil) {
				t.Errorf("open candidate at %s: conflict=%v, err=%v", tc.in, tc.conflict, err)
			}
		})
	}
}

func TestCheckOverlapAgainstOpenExisting(t *testing.T) {
	existing := []Session{openSession(t, "2025-03-10 09:00")}

	// Closed candidate spanning the open session's start conflicts.
	if err := CheckOverlap(closedSession(t, "2025-03-10 08:00", "2025-03-10 10:00"), existing, uuid.Nil); err == nil {
		t.Errorf("closed candidate spanning open start must conflict")
	}

	// Closed candidate entirely before the open start is fine.
	if err := CheckOverlap(closedSession(t, "2025-03-10 07:00", "2025-03-10 08:30"), existing, uuid.Nil); err != nil {
		t.Errorf("closed candidate before open start must not conflict: %v", err)
	}

	// A second open session anywhere on the same day conflicts.
	if err := CheckOverlap(openSession(t, "2025-03-10 22:00"), existing, uuid.Nil); err == nil {
		t.Errorf("two open sessions on the same day must conflict")
	}

	// An open session on a different day does not.
	if err := CheckOverlap(openSession(t, "2025-03-11 22:00"), existing, uuid.Nil); err != nil {
		t.Errorf("open sessions on different days must not conflict: %v", err)
	}
}

func TestCheckOverlapExcludesSelfOnEdit(t *testing.T) {
	s := closedSession(t, "2025-03-10 09:00", "2025-03-10 17:00")
	existing := []Session{s}

	// Editing s into an interval that overlaps only itself is legal.
	cand := s
	cand.CheckOut = timePtr(mustTime(t, "2025-03-10 16:00"))
	if err := CheckOverlap(cand, existing, s.ID); err != nil {
		t.Errorf("edit overlapping only itself must pass: %v", err)
	}

	// Without the exclusion the same candidate conflicts.
	if err := CheckOverlap(cand, existing, uuid.Nil); err == nil {
		t.Errorf("expected conflict when self is not excluded")
	}
}

func TestCheckOverlapReportsConflictWindow(t *testing.T) {
	existing := []Session{closedSession(t, "2025-03-10 09:00", "2025-03-10 17:00")}

	err := CheckOverlap(closedSession(t, "2025-03-10 10:00", "2025-03-10 11:00"), existing, uuid.Nil)
	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected *OverlapError, got %T", err)
	}
	if overlap.Conflict.ID != existing[0].ID {
		t.Errorf("conflict does not reference the existing session")
	}
	if !strings.Contains(err.Error(), "09:00 – 17:00") {
		t.Errorf("error message missing conflict window: %q", err.Error())
	}
}

func TestCheckOverlapMillisecondTruncation(t *testing.T) {
	base := mustTime(t, "2025-03-10 17:00")

	// An existing check-out carrying sub-millisecond noise still meets the
	// candidate check-in exactly at the boundary after truncation.
	out := base.Add(500 * time.Microsecond)
	existing := []Session{{ID: uuid.New(), CheckIn: mustTime(t, "2025-03-10 09:00"), CheckOut: &out}}

	cand := closedSession(t, "2025-03-10 17:00", "2025-03-10 18:00")
	if err := CheckOverlap(cand, existing, uuid.Nil); err != nil {
		t.Errorf("sub-millisecond noise must not produce a conflict: %v", err)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	now := mustTime(t, "2025-03-10 18:00")
	doc := NewDocument(now)
	day := doc.Day(10)
	day.Sessions = append(day.Sessions, NewSession(mustTime(t, "2025-03-10 09:00"), timePtr(mustTime(t, "2025-03-10 17:00")), "m", now))
	day.Recalculate()

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Document
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cand := closedSession(t, "2025-03-10 10:00", "2025-03-10 11:00")
	before := CheckOverlap(cand, doc.Days["10"].Sessions, uuid.Nil)
	after := CheckOverlap(cand, restored.Days["10"].Sessions, uuid.Nil)

	if (before == nil) != (after == nil) {
		t.Errorf("validation disagrees across serialization: before=%v after=%v", before, after)
	}
	if restored.Days["10"].Sessions[0].WorkedHours != "7h 30m" {
		t.Errorf("worked hours lost in round trip: %q", restored.Days["10"].Sessions[0].WorkedHours)
	}
}
