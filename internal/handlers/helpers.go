package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
)

// decodeJSON parses a request body into dst, rejecting malformed payloads.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

// pathID reads a numeric path parameter.
func pathID(r *http.Request, name string) (uint, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryID reads an optional numeric query parameter. Returns 0 when absent.
func queryID(r *http.Request, name string) (uint, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// writeServiceError maps service failures onto the response taxonomy.
// Storage errors are logged with detail and surfaced as a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var exceeds services.ExceedsRemainingError
	switch {
	case errors.As(err, &exceeds):
		httpx.JSONError(w, http.StatusBadRequest, exceeds.Error(), map[string]any{"remaining": exceeds.Remaining})
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrInvoiceNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrPayoutNotFound),
		errors.Is(err, services.ErrAssignmentNotFound):
		httpx.JSONError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrAlreadyAssigned),
		errors.Is(err, services.ErrNotAssigned),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrInvalidSnapshot):
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidPassword):
		httpx.JSONError(w, http.StatusUnauthorized, err.Error(), nil)
	default:
		slog.Error("storage failure", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
