package attendance

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPayPeriodWindow(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		wantFrom  time.Time
		wantUntil time.Time
	}{
		// 2025-03-12 is a Wednesday; the period runs Mon 10th to Mon 17th.
		{"midweek", date(2025, time.March, 12), date(2025, time.March, 10), date(2025, time.March, 17)},
		{"sunday end of period", date(2025, time.March, 16), date(2025, time.March, 10), date(2025, time.March, 17)},
		// On a Monday the just-closed period stays editable.
		{"monday shifts back a week", date(2025, time.March, 17), date(2025, time.March, 10), date(2025, time.March, 17)},
		{"tuesday starts new period", date(2025, time.March, 18), date(2025, time.March, 17), date(2025, time.March, 24)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := PayPeriodWindow(tc.today)
			if !w.From.Equal(tc.wantFrom) || !w.Until.Equal(tc.wantUntil) {
				t.Errorf("PayPeriodWindow(%s) = [%s, %s), want [%s, %s)",
					tc.today.Format("2006-01-02"),
					w.From.Format("2006-01-02"), w.Until.Format("2006-01-02"),
					tc.wantFrom.Format("2006-01-02"), tc.wantUntil.Format("2006-01-02"))
			}
		})
	}
}

func TestPayPeriodWindowContains(t *testing.T) {
	w := PayPeriodWindow(date(2025, time.March, 12))

	if !w.Contains(date(2025, time.March, 10)) {
		t.Errorf("period start must be editable")
	}
	if !w.Contains(time.Date(2025, time.March, 16, 23, 30, 0, 0, time.UTC)) {
		t.Errorf("time-of-day must not affect containment")
	}
	if w.Contains(date(2025, time.March, 17)) {
		t.Errorf("window is half-open; the next Monday is outside")
	}
	if w.Contains(date(2025, time.March, 9)) {
		t.Errorf("days before the period must not be editable")
	}
}

func TestSameDayWindow(t *testing.T) {
	w := SameDayWindow(time.Date(2025, time.March, 12, 14, 45, 0, 0, time.UTC))

	if !w.Contains(date(2025, time.March, 12)) {
		t.Errorf("same day must be editable")
	}
	if w.Contains(date(2025, time.March, 11)) || w.Contains(date(2025, time.March, 13)) {
		t.Errorf("adjacent days must not be editable")
	}
}
