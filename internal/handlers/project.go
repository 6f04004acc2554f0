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

type ProjectHandler struct {
	DB  *gorm.DB
	Svc *services.ProjectService
}

func NewProjectHandler(db *gorm.DB, svc *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{DB: db, Svc: svc}
}

// projectWithTotals decorates a project with its derived figures. Totals are
// recomputed from the loaded entity graph on every request.
type projectWithTotals struct {
	models.Project
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Profit        decimal.Decimal `json:"profit"`
}

func withTotals(p models.Project) projectWithTotals {
	return projectWithTotals{
		Project:       p,
		TotalIncome:   ledger.ProjectIncome(p),
		TotalExpenses: ledger.ProjectExpenses(p),
		Profit:        ledger.ProjectProfit(p),
	}
}

// List: GET /projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	var projects []models.Project
	if err := h.DB.Preload("Invoices.Payments").Preload("Payouts").Preload("Team.Employee").
		Order("created_at desc").Find(&projects).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]projectWithTotals, 0, len(projects))
	for _, p := range projects {
		out = append(out, withTotals(p))
	}
	httpx.JSON(w, http.StatusOK, out)
}

type createProjectRequest struct {
	Name        string          `json:"name"`
	Client      string          `json:"client"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
}

// Create: POST /projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("client", req.Client, v)
	validation.PositiveAmount("totalAmount", req.TotalAmount, v)
	validation.OneOf("status", req.Status, []string{models.ProjectActive, models.ProjectOnHold, models.ProjectCompleted}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	status := req.Status
	if status == "" {
		status = models.ProjectActive
	}
	project := models.Project{
		Name:        req.Name,
		Client:      req.Client,
		TotalAmount: req.TotalAmount,
		Description: req.Description,
		Status:      status,
	}
	if err := h.DB.Create(&project).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, project)
}

// Get: GET /projects/{id}; full detail with derived figures.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var project models.Project
	err := h.DB.
		Preload("Invoices", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Preload("Invoices.Payments").
		Preload("Payouts", func(db *gorm.DB) *gorm.DB { return db.Order("payout_date desc") }).
		Preload("Payouts.Employee").
		Preload("Team.Employee").
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeServiceError(w, services.ErrProjectNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, withTotals(project))
}

type updateProjectRequest struct {
	Name        *string          `json:"name"`
	Client      *string          `json:"client"`
	TotalAmount *decimal.Decimal `json:"totalAmount"`
	Description *string          `json:"description"`
	Status      *string          `json:"status"`
}

// Update: PUT /projects/{id}; only supplied fields change.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req updateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var project models.Project
	if err := h.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeServiceError(w, services.ErrProjectNotFound)
			return
		}
		writeServiceError(w, err)
		return
	}
	v := validation.Violations{}
	if req.TotalAmount != nil {
		validation.PositiveAmount("totalAmount", *req.TotalAmount, v)
	}
	if req.Status != nil {
		validation.OneOf("status", *req.Status, []string{models.ProjectActive, models.ProjectOnHold, models.ProjectCompleted}, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if req.Name != nil && *req.Name != "" {
		project.Name = *req.Name
	}
	if req.Client != nil && *req.Client != "" {
		project.Client = *req.Client
	}
	if req.TotalAmount != nil {
		project.TotalAmount = *req.TotalAmount
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil && *req.Status != "" {
		project.Status = *req.Status
	}
	if err := h.DB.Save(&project).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, project)
}

// Delete: DELETE /projects/{id}; cascades invoices, payments, payouts,
// assignments and notes.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}
