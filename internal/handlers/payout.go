package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/models"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
	"github.com/xplicit-dev/project-finance-manager/internal/validation"
)

var payoutTypes = []string{models.PayoutRegular, models.PayoutAdvance, models.PayoutBonus}

type PayoutHandler struct {
	DB  *gorm.DB
	Svc *services.PayoutService
}

func NewPayoutHandler(db *gorm.DB, svc *services.PayoutService) *PayoutHandler {
	return &PayoutHandler{DB: db, Svc: svc}
}

// List: GET /payouts?projectId=&employeeId=
func (h *PayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Preload("Project").Preload("Employee").Order("payout_date desc")
	projectID, ok := queryID(r, "projectId")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_project_id", nil)
		return
	}
	if projectID != 0 {
		q = q.Where("project_id = ?", projectID)
	}
	employeeID, ok := queryID(r, "employeeId")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_employee_id", nil)
		return
	}
	if employeeID != 0 {
		q = q.Where("employee_id = ?", employeeID)
	}
	var payouts []models.Payout
	if err := q.Find(&payouts).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payouts)
}

type createPayoutRequest struct {
	ProjectID  uint            `json:"projectId"`
	EmployeeID uint            `json:"employeeId"`
	Amount     decimal.Decimal `json:"amount"`
	PayoutDate string          `json:"payoutDate"`
	PayoutType string          `json:"payoutType"`
	Notes      string          `json:"notes"`
}

// Create: POST /payouts; fails when the employee has no assignment on the
// project.
func (h *PayoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.RequiredID("projectId", req.ProjectID, v)
	validation.RequiredID("employeeId", req.EmployeeID, v)
	validation.PositiveAmount("amount", req.Amount, v)
	validation.OneOf("payoutType", req.PayoutType, payoutTypes, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	in := services.PayoutInput{
		ProjectID:  req.ProjectID,
		EmployeeID: req.EmployeeID,
		Amount:     req.Amount,
		PayoutType: req.PayoutType,
		Notes:      req.Notes,
	}
	if req.PayoutDate != "" {
		when, err := parseDate(req.PayoutDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_payout_date", nil)
			return
		}
		in.PayoutDate = &when
	}
	payout, err := h.Svc.Create(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.DB.Preload("Project").Preload("Employee").First(payout, payout.ID).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, payout)
}

type updatePayoutRequest struct {
	Amount     *decimal.Decimal `json:"amount"`
	PayoutDate *string          `json:"payoutDate"`
	PayoutType *string          `json:"payoutType"`
	Notes      *string          `json:"notes"`
}

// Update: PUT /payouts/{id}
func (h *PayoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req updatePayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	if req.Amount != nil {
		validation.PositiveAmount("amount", *req.Amount, v)
	}
	if req.PayoutType != nil {
		validation.OneOf("payoutType", *req.PayoutType, payoutTypes, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	in := services.PayoutUpdate{
		Amount:     req.Amount,
		PayoutType: req.PayoutType,
		Notes:      req.Notes,
	}
	if req.PayoutDate != nil && *req.PayoutDate != "" {
		when, err := parseDate(*req.PayoutDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_payout_date", nil)
			return
		}
		in.PayoutDate = &when
	}
	payout, err := h.Svc.Update(id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payout)
}

// Delete: DELETE /payouts/{id}
func (h *PayoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Payout deleted successfully"})
}
