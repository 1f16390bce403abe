package services

import (
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	from, to, err := ParseRange("2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}
	if !from.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v, want 2025-03-01", from)
	}
	// Inclusive range: to is bumped one day past the requested end.
	if !to.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("to = %v, want 2025-04-01", to)
	}
}

func TestParseRangeSingleDay(t *testing.T) {
	from, to, err := ParseRange("2025-03-15", "2025-03-15")
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}
	if to.Sub(from) != 24*time.Hour {
		t.Errorf("single-day range spans %v, want 24h", to.Sub(from))
	}
}

func TestParseRangeInvalid(t *testing.T) {
	tests := []struct {
		name      string
		from, to  string
		wantField string
	}{
		{"bad from format", "03/01/2025", "2025-03-31", "from"},
		{"bad to format", "2025-03-01", "tomorrow", "to"},
		{"to before from", "2025-03-31", "2025-03-01", "to"},
		{"empty", "", "", "from"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseRange(tc.from, tc.to)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if _, present := ve.Fields[tc.wantField]; !present {
				t.Errorf("expected field error on %q, got %v", tc.wantField, ve.Fields)
			}
		})
	}
}
