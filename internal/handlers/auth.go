package handlers

import (
	"net/http"

	"github.com/xplicit-dev/project-finance-manager/internal/auth"
	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
	"github.com/xplicit-dev/project-finance-manager/internal/validation"
)

type AuthHandler struct {
	Settings *services.SettingsService
}

func NewAuthHandler(settings *services.SettingsService) *AuthHandler {
	return &AuthHandler{Settings: settings}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login: POST /auth/login; verifies the shared password and issues the
// session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("password", req.Password, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Settings.VerifyPassword(req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	auth.CreateSession(w)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Logout: POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Check: GET /auth/check; reports session validity without requiring one.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"authenticated": auth.ParseSession(r)})
}
