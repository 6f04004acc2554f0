package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
)

var exportTypes = map[string]bool{"projects": true, "employees": true, "transactions": true}

type ReportHandler struct {
	Svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler {
	return &ReportHandler{Svc: svc}
}

// Projects: GET /reports/projects
func (h *ReportHandler) Projects(w http.ResponseWriter, r *http.Request) {
	rows, totals, err := h.Svc.Projects()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "totals": totals})
}

// Employees: GET /reports/employees
func (h *ReportHandler) Employees(w http.ResponseWriter, r *http.Request) {
	rows, totals, err := h.Svc.Employees()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "totals": totals})
}

// Export: GET /reports/export?type=; streams the named report as a CSV
// attachment.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	reportType := r.URL.Query().Get("type")
	if !exportTypes[reportType] {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_report_type", nil)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.CSVFilename(reportType, time.Now())))
	if err := h.Svc.WriteCSV(w, reportType); err != nil {
		// Headers are out; nothing sensible left to send.
		return
	}
}
