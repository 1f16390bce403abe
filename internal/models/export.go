package models

import (
	"time"

	"github.com/google/uuid"
)

// ExportJob tracks an asynchronous XLSX report export processed by the
// worker pool.
type ExportJob struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	ReportType   string     `json:"report_type"` // "hourly" | "daily" | "weekly" | "monthly" | "items" | "customers"
	FromDate     string     `json:"from_date"`   // "2006-01-02"
	ToDate       string     `json:"to_date"`
	Status       string     `json:"status"` // "pending" | "processing" | "completed" | "failed"
	FilePath     *string    `json:"file_path"`
	ErrorMessage *string    `json:"error_message"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

type ExportRequest struct {
	ReportType string `json:"report_type"`
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
}
