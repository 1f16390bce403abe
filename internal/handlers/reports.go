package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"backhouse-backend/internal/middleware"
	"backhouse-backend/internal/models"
	"backhouse-backend/internal/services"
)

type ReportsHandler struct {
	reports *services.ReportsService
	exports *services.ExportService
}

func NewReportsHandler(reports *services.ReportsService, exports *services.ExportService) *ReportsHandler {
	return &ReportsHandler{reports: reports, exports: exports}
}

// Bucketed serves the hourly/daily/weekly/monthly reports.
// GET /reports/{type}?from=...&to=...  (with optional &format=csv)
func (h *ReportsHandler) Bucketed(w http.ResponseWriter, r *http.Request) {
	reportType := chi.URLParam(r, "type")
	from, to, err := services.ParseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	buckets, err := h.reports.Bucketed(r.Context(), reportType, from, to)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+reportType+"_sales.csv")
		services.WriteBucketsCSV(w, buckets)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"buckets": buckets})
}

// Items serves the item-level sales report.
// GET /reports/items?from=...&to=...
func (h *ReportsHandler) Items(w http.ResponseWriter, r *http.Request) {
	from, to, err := services.ParseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	items, err := h.reports.ItemTotals(r.Context(), from, to)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Customers serves the customer-trend report.
// GET /reports/customers?from=...&to=...
func (h *ReportsHandler) Customers(w http.ResponseWriter, r *http.Request) {
	from, to, err := services.ParseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	points, err := h.reports.CustomerTrend(r.Context(), from, to)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"trend": points})
}

// Export queues an asynchronous XLSX export.
// POST /reports/export
func (h *ReportsHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req models.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	job := &models.ExportJob{
		UserID:     middleware.GetUserID(r.Context()),
		ReportType: req.ReportType,
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
	}
	if err := h.exports.Enqueue(r.Context(), job); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{"job": job})
}

// ExportStatus reports on a queued export.
// GET /reports/export/{id}
func (h *ReportsHandler) ExportStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid job ID", r))
		return
	}

	job, err := h.exports.GetJob(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Export job not found", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"job": job})
}

// ExportDownload streams a completed workbook.
// GET /reports/export/{id}/download
func (h *ReportsHandler) ExportDownload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid job ID", r))
		return
	}

	job, err := h.exports.GetJob(r.Context(), id)
	if err != nil || job.Status != "completed" || job.FilePath == nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Export not ready", r))
		return
	}

	f, err := os.Open(*job.FilePath)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Export file missing", r))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(*job.FilePath))
	http.ServeContent(w, r, filepath.Base(*job.FilePath), job.CreatedAt, f)
}
