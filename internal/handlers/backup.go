package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
)

type BackupHandler struct {
	Svc *services.BackupService
}

func NewBackupHandler(svc *services.BackupService) *BackupHandler {
	return &BackupHandler{Svc: svc}
}

// Export: GET /db/export; full snapshot as a JSON attachment.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Svc.Export()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	filename := fmt.Sprintf("pm-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return
	}
}

// Import: POST /db/import; replaces the database with the posted snapshot.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	var snap services.Snapshot
	if err := decodeJSON(r, &snap); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Svc.Import(snap); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Data imported successfully"})
}

// Destroy: DELETE /destroy; wipes every table, settings included.
func (h *BackupHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Destroy(); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "All data destroyed"})
}
