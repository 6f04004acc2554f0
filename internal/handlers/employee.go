package handlers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/ledger"
	"github.com/xplicit-dev/project-finance-manager/internal/models"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
	"github.com/xplicit-dev/project-finance-manager/internal/validation"
)

type EmployeeHandler struct {
	DB  *gorm.DB
	Svc *services.EmployeeService
}

func NewEmployeeHandler(db *gorm.DB, svc *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{DB: db, Svc: svc}
}

type employeeWithTotals struct {
	models.Employee
	TotalPayouts   decimal.Decimal `json:"totalPayouts"`
	TotalAllocated decimal.Decimal `json:"totalAllocated"`
	TotalPending   decimal.Decimal `json:"totalPending"`
}

// List: GET /employees; each row carries derived payout totals. Pending is
// allocated minus paid and may be negative for overpaid employees.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	var employees []models.Employee
	if err := h.DB.Preload("Payouts").Preload("Assignments.Project").
		Order("created_at desc").Find(&employees).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]employeeWithTotals, 0, len(employees))
	for _, e := range employees {
		out = append(out, employeeWithTotals{
			Employee:       e,
			TotalPayouts:   ledger.EmployeeTotalPayouts(e),
			TotalAllocated: ledger.EmployeeTotalAllocated(e),
			TotalPending:   ledger.EmployeeTotalPending(e),
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}

type createEmployeeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
}

// Create: POST /employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var count int64
	if err := h.DB.Model(&models.Employee{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	if count > 0 {
		writeServiceError(w, services.ErrDuplicateEmail)
		return
	}
	employee := models.Employee{Name: req.Name, Email: req.Email, Role: req.Role, Phone: req.Phone}
	if err := h.DB.Create(&employee).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, employee)
}

// Get: GET /employees/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var employee models.Employee
	err := h.DB.
		Preload("Payouts", func(db *gorm.DB) *gorm.DB { return db.Order("payout_date desc") }).
		Preload("Payouts.Project").
		Preload("Assignments.Project").
		First(&employee, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeServiceError(w, services.ErrEmployeeNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, employeeWithTotals{
		Employee:       employee,
		TotalPayouts:   ledger.EmployeeTotalPayouts(employee),
		TotalAllocated: ledger.EmployeeTotalAllocated(employee),
		TotalPending:   ledger.EmployeeTotalPending(employee),
	})
}

type updateEmployeeRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
	Phone *string `json:"phone"`
}

// Update: PUT /employees/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var employee models.Employee
	if err := h.DB.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeServiceError(w, services.ErrEmployeeNotFound)
			return
		}
		writeServiceError(w, err)
		return
	}
	if req.Email != nil && *req.Email != "" && *req.Email != employee.Email {
		var count int64
		if err := h.DB.Model(&models.Employee{}).Where("email = ? AND id <> ?", *req.Email, id).Count(&count).Error; err != nil {
			writeServiceError(w, err)
			return
		}
		if count > 0 {
			writeServiceError(w, services.ErrDuplicateEmail)
			return
		}
		employee.Email = *req.Email
	}
	if req.Name != nil && *req.Name != "" {
		employee.Name = *req.Name
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if err := h.DB.Save(&employee).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, employee)
}

// Delete: DELETE /employees/{id}; cascades payouts and assignments.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
}
