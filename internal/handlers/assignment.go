package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/models"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
	"github.com/xplicit-dev/project-finance-manager/internal/validation"
)

var assignmentPayoutTypes = []string{models.PayoutFixed, models.PayoutVariable}

type AssignmentHandler struct {
	Svc *services.AssignmentService
}

func NewAssignmentHandler(svc *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{Svc: svc}
}

type assignRequest struct {
	EmployeeID   uint            `json:"employeeId"`
	PayoutAmount decimal.Decimal `json:"payoutAmount"`
	PayoutType   string          `json:"payoutType"`
	Notes        string          `json:"notes"`
}

// Assign: POST /projects/{id}/employees
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.RequiredID("employeeId", req.EmployeeID, v)
	validation.PositiveAmount("payoutAmount", req.PayoutAmount, v)
	validation.OneOf("payoutType", req.PayoutType, assignmentPayoutTypes, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	assignment, err := h.Svc.Assign(projectID, services.AssignmentInput{
		EmployeeID:   req.EmployeeID,
		PayoutAmount: req.PayoutAmount,
		PayoutType:   req.PayoutType,
		Notes:        req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, assignment)
}

type updateAssignmentRequest struct {
	PayoutAmount decimal.Decimal `json:"payoutAmount"`
	PayoutType   *string         `json:"payoutType"`
	Notes        *string         `json:"notes"`
}

// Update: PATCH /projects/{id}/employees/{employeeId}
func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	employeeID, ok := pathID(r, "employeeId")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_employee_id", nil)
		return
	}
	var req updateAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.PositiveAmount("payoutAmount", req.PayoutAmount, v)
	if req.PayoutType != nil {
		validation.OneOf("payoutType", *req.PayoutType, assignmentPayoutTypes, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	assignment, err := h.Svc.UpdateAllocation(projectID, employeeID, services.AssignmentUpdate{
		PayoutAmount: req.PayoutAmount,
		PayoutType:   req.PayoutType,
		Notes:        req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, assignment)
}

// Remove: DELETE /projects/{id}/employees/{employeeId}
func (h *AssignmentHandler) Remove(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	employeeID, ok := pathID(r, "employeeId")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_employee_id", nil)
		return
	}
	if err := h.Svc.Remove(projectID, employeeID); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Team member removed from project"})
}
