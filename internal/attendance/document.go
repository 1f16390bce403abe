package attendance

import (
	"strconv"
	"time"
)

// Document is one employee-month of attendance, the unit of storage. Days are
// keyed by the unpadded day-of-month number as a string ("1" .. "31"). The
// whole document is read before mutating and written back whole; there is no
// partial-document concurrency control (see the repository for the optional
// version check).
type Document struct {
	Days     map[string]*DaySessions `json:"days"`
	Metadata Metadata                `json:"metadata"`
}

type Metadata struct {
	Created     time.Time `json:"created"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewDocument returns an empty month document.
func NewDocument(now time.Time) *Document {
	return &Document{
		Days:     make(map[string]*DaySessions),
		Metadata: Metadata{Created: now, LastUpdated: now},
	}
}

// Day returns the sessions for a day of the month, creating the entry when it
// does not exist yet.
func (doc *Document) Day(dayOfMonth int) *DaySessions {
	if doc.Days == nil {
		doc.Days = make(map[string]*DaySessions)
	}
	key := DayKey(dayOfMonth)
	d, ok := doc.Days[key]
	if !ok {
		d = &DaySessions{}
		doc.Days[key] = d
	}
	return d
}

// Touch refreshes the document's lastUpdated stamp; created is preserved.
func (doc *Document) Touch(now time.Time) {
	doc.Metadata.LastUpdated = now
}

// DayKey formats a day-of-month as the document's map key.
func DayKey(dayOfMonth int) string {
	return strconv.Itoa(dayOfMonth)
}

// MonthKey formats a point in time as the "YYYY-MM" document key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
