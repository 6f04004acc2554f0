package handlers

import (
	"net/http"

	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/models"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
	"github.com/xplicit-dev/project-finance-manager/internal/validation"
)

var currencies = []string{
	models.CurrencyUSD, models.CurrencyINR, models.CurrencyEUR, models.CurrencyGBP,
}

type SettingsHandler struct {
	Svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Svc: svc}
}

// settingsView never carries the password hash.
type settingsView struct {
	ID       uint   `json:"id"`
	Currency string `json:"currency"`
}

func viewOf(s *models.Settings) settingsView {
	return settingsView{ID: s.ID, Currency: s.Currency}
}

// Get: GET /settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Svc.Get()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, viewOf(settings))
}

type updateSettingsRequest struct {
	Currency string `json:"currency"`
}

// Update: PUT /settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("currency", req.Currency, v)
	validation.OneOf("currency", req.Currency, currencies, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	settings, err := h.Svc.UpdateCurrency(req.Currency)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, viewOf(settings))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword: PUT /settings/password; a wrong current password yields
// 401, not 400.
func (h *SettingsHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("currentPassword", req.CurrentPassword, v)
	validation.Required("newPassword", req.NewPassword, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Svc.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Password updated successfully"})
}
