package handlers

import (
	"net/http"
	"strings"
	"time"

	"wordle/internal/service"
)

// AdminHandler serves the admin reports
type AdminHandler struct {
	reportService *service.ReportService
	now           func() time.Time
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reportService *service.ReportService) *AdminHandler {
	return &AdminHandler{reportService: reportService, now: time.Now}
}

// DailyReport summarizes one calendar day; date defaults to today (UTC)
func (h *AdminHandler) DailyReport(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = h.now().UTC().Format(time.DateOnly)
	}

	report, err := h.reportService.Daily(r.Context(), date)
	if err != nil {
		respondWithServiceError(w, "Error building daily report", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// UserReport summarizes one player's history
func (h *AdminHandler) UserReport(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, "username is required", "", nil)
		return
	}

	report, err := h.reportService.User(r.Context(), username)
	if err != nil {
		respondWithServiceError(w, "Error building user report", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
