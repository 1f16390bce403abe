package models

import (
	"time"

	"github.com/google/uuid"
)

// SalesTransaction is one settled kitchen order ticket.
type SalesTransaction struct {
	ID         uuid.UUID `json:"id"`
	TicketNo   string    `json:"ticket_no"`
	CustomerID *string   `json:"customer_id"`
	TotalCents int64     `json:"total_cents"`
	SoldAt     time.Time `json:"sold_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type SalesLine struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	ItemID        uuid.UUID `json:"item_id"`
	Quantity      int       `json:"quantity"`
	LineCents     int64     `json:"line_cents"`
}

// Report row shapes. Buckets are formatted by the reports service: hour of
// day ("14:00"), date ("2006-01-02"), ISO week ("2025-W11"), or month
// ("2006-01") depending on the report.
type SalesBucket struct {
	Bucket     string `json:"bucket"`
	Orders     int    `json:"orders"`
	TotalCents int64  `json:"total_cents"`
}

type ItemSales struct {
	ItemID     uuid.UUID `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Quantity   int       `json:"quantity"`
	TotalCents int64     `json:"total_cents"`
}

type CustomerTrendPoint struct {
	Date      string `json:"date"`
	Customers int    `json:"customers"`
	Orders    int    `json:"orders"`
}
