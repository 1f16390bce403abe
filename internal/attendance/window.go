package attendance

import "time"

// EditableWindow is the span of calendar days an editor may modify,
// half-open [From, Until).
type EditableWindow struct {
	From  time.Time
	Until time.Time
}

// Contains reports whether the given day falls inside the window. Only the
// calendar date matters; time-of-day is ignored.
func (w EditableWindow) Contains(day time.Time) bool {
	d := midnight(day)
	return !d.Before(w.From) && d.Before(w.Until)
}

// PayPeriodWindow returns the current Monday-to-Monday pay period for the
// given day. When today is itself a Monday the period that just closed is
// still editable, so the window shifts back one week.
func PayPeriodWindow(today time.Time) EditableWindow {
	d := midnight(today)

	offset := (int(d.Weekday()) - int(time.Monday) + 7) % 7
	monday := d.AddDate(0, 0, -offset)
	if offset == 0 {
		monday = monday.AddDate(0, 0, -7)
	}

	return EditableWindow{From: monday, Until: monday.AddDate(0, 0, 7)}
}

// SameDayWindow restricts editing to the given calendar day only.
func SameDayWindow(today time.Time) EditableWindow {
	d := midnight(today)
	return EditableWindow{From: d, Until: d.AddDate(0, 0, 1)}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
