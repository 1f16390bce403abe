package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"backhouse-backend/internal/middleware"
	"backhouse-backend/internal/services"
)

type AttendanceHandler struct {
	service *services.AttendanceService
}

func NewAttendanceHandler(service *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

type sessionRequest struct {
	Day      string  `json:"day"`       // "2006-01-02"
	CheckIn  string  `json:"check_in"`  // RFC 3339
	CheckOut *string `json:"check_out"` // RFC 3339, omitted for open sessions
	Version  int     `json:"version"`   // document version read; 0 skips the CAS
}

// GetMonth returns one employee-month attendance document.
// GET /attendance/{userID}/{month}
func (h *AttendanceHandler) GetMonth(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return
	}

	doc, version, err := h.service.GetMonth(r.Context(), userID, chi.URLParam(r, "month"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"document": doc,
		"version":  version,
	})
}

// AddSession records a manual check-in/check-out entry.
// POST /attendance/{userID}/sessions
func (h *AttendanceHandler) AddSession(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return
	}

	change, ok := h.parseChange(w, r, userID)
	if !ok {
		return
	}

	session, err := h.service.AddSession(r.Context(), middleware.GetRole(r.Context()), change)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"session": session})
}

// EditSession replaces the endpoints of an existing session.
// PUT /attendance/{userID}/sessions/{sessionID}
func (h *AttendanceHandler) EditSession(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return
	}
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	change, ok := h.parseChange(w, r, userID)
	if !ok {
		return
	}

	session, err := h.service.EditSession(r.Context(), middleware.GetRole(r.Context()), sessionID, change)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

// DeleteSession removes a session.
// DELETE /attendance/{userID}/sessions/{sessionID}?day=2006-01-02
func (h *AttendanceHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return
	}
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("day"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Query parameter day must be formatted YYYY-MM-DD", r))
		return
	}

	change := services.SessionChange{
		UserID: userID,
		Day:    day,
		Editor: middleware.GetUserID(r.Context()).String(),
	}

	if err := h.service.DeleteSession(r.Context(), middleware.GetRole(r.Context()), sessionID, change); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Session deleted"})
}

func (h *AttendanceHandler) parseChange(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (services.SessionChange, bool) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return services.SessionChange{}, false
	}

	fieldErrors := make(map[string]string)

	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		fieldErrors["day"] = "Day must be formatted YYYY-MM-DD"
	}
	checkIn, err := time.Parse(time.RFC3339, req.CheckIn)
	if err != nil {
		fieldErrors["check_in"] = "Check-in must be an RFC 3339 timestamp"
	}
	var checkOut *time.Time
	if req.CheckOut != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOut)
		if err != nil {
			fieldErrors["check_out"] = "Check-out must be an RFC 3339 timestamp"
		} else {
			checkOut = &t
		}
	}

	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fieldErrors, r))
		return services.SessionChange{}, false
	}

	return services.SessionChange{
		UserID:   userID,
		Day:      day,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Editor:   middleware.GetUserID(r.Context()).String(),
		Version:  req.Version,
	}, true
}
