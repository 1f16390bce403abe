package models

import (
	"time"

	"github.com/google/uuid"
)

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// WebSocket message types. UserID, when set, narrows delivery to a single
// user's connections; alerts leave it zero and go to everyone.
type WSMessage struct {
	Type    string      `json:"type"`
	UserID  uuid.UUID   `json:"user_id,omitempty"`
	Payload interface{} `json:"payload"`
}

type AlertEvent struct {
	AlertID   uuid.UUID `json:"alert_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportReadyEvent struct {
	JobID      uuid.UUID `json:"job_id"`
	ReportType string    `json:"report_type"`
	FilePath   string    `json:"file_path"`
}

type ExportFailedEvent struct {
	JobID        uuid.UUID `json:"job_id"`
	ErrorMessage string    `json:"error_message"`
}
