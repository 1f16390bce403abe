package models

import (
	"time"

	"github.com/google/uuid"
)

// SafeCount is one recorded count of the safe, either at open or close of a
// business day. Expected balance carries forward from the previous closing
// count; variance is actual minus expected. All amounts are cents.
type SafeCount struct {
	ID            uuid.UUID `json:"id"`
	CountDate     time.Time `json:"count_date"`
	Shift         string    `json:"shift"` // "open" | "close"
	CountedBy     uuid.UUID `json:"counted_by"`
	ActualCents   int64     `json:"actual_cents"`
	ExpectedCents int64     `json:"expected_cents"`
	VarianceCents int64     `json:"variance_cents"`
	DenomsJSON    []byte    `json:"denominations"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

type RecordSafeCountRequest struct {
	CountDate     string         `json:"count_date"` // "2006-01-02"
	Shift         string         `json:"shift"`
	ActualCents   int64          `json:"actual_cents"`
	Denominations map[string]int `json:"denominations"`
	Notes         *string        `json:"notes"`
}
