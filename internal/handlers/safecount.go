package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"backhouse-backend/internal/middleware"
	"backhouse-backend/internal/models"
	"backhouse-backend/internal/services"
)

type SafeCountHandler struct {
	service *services.SafeCountService
}

func NewSafeCountHandler(service *services.SafeCountService) *SafeCountHandler {
	return &SafeCountHandler{service: service}
}

// Record stores an opening or closing safe count.
// POST /safe-counts
func (h *SafeCountHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req models.RecordSafeCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	sc, err := h.service.Record(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"safe_count": sc})
}

// List returns safe counts over a date range.
// GET /safe-counts?from=2006-01-02&to=2006-01-02
func (h *SafeCountHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Query parameter from must be formatted YYYY-MM-DD", r))
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Query parameter to must be formatted YYYY-MM-DD", r))
		return
	}

	counts, err := h.service.ListRange(r.Context(), from, to)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"safe_counts": counts})
}
