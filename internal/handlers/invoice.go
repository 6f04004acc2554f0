package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/ledger"
	"github.com/xplicit-dev/project-finance-manager/internal/models"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
	"github.com/xplicit-dev/project-finance-manager/internal/validation"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

type invoiceWithPaid struct {
	models.Invoice
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
}

func withPaid(inv models.Invoice) invoiceWithPaid {
	return invoiceWithPaid{
		Invoice:         inv,
		PaidAmount:      ledger.InvoicePaid(inv),
		RemainingAmount: ledger.InvoiceRemaining(inv),
	}
}

// generateInvoiceNumber builds a unique fallback number from the current
// time and a random token.
func generateInvoiceNumber() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), token)
}

// List: GET /invoices?status=&projectId=
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Preload("Project").Preload("Payments").Order("created_at desc")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	projectID, ok := queryID(r, "projectId")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_project_id", nil)
		return
	}
	if projectID != 0 {
		q = q.Where("project_id = ?", projectID)
	}
	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]invoiceWithPaid, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, withPaid(inv))
	}
	httpx.JSON(w, http.StatusOK, out)
}

type createInvoiceRequest struct {
	ProjectID     uint            `json:"projectId"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"dueDate"`
	Notes         string          `json:"notes"`
	InvoiceNumber string          `json:"invoiceNumber"`
}

// Create: POST /invoices; new invoices always start as drafts.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.RequiredID("projectId", req.ProjectID, v)
	validation.PositiveAmount("amount", req.Amount, v)
	validation.Required("dueDate", req.DueDate, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_due_date", nil)
		return
	}
	if err := h.DB.First(&models.Project{}, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeServiceError(w, services.ErrProjectNotFound)
			return
		}
		writeServiceError(w, err)
		return
	}

	number := req.InvoiceNumber
	if number == "" {
		number = generateInvoiceNumber()
	} else {
		var count int64
		if err := h.DB.Model(&models.Invoice{}).Where("invoice_number = ?", number).Count(&count).Error; err != nil {
			writeServiceError(w, err)
			return
		}
		if count > 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invoice_number_already_exists", nil)
			return
		}
	}

	invoice := models.Invoice{
		InvoiceNumber: number,
		ProjectID:     req.ProjectID,
		Amount:        req.Amount,
		DueDate:       dueDate,
		Status:        models.InvoiceDraft,
		Notes:         req.Notes,
	}
	if err := h.DB.Create(&invoice).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.DB.Preload("Project").First(&invoice, invoice.ID).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, invoice)
}

// Get: GET /invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var invoice models.Invoice
	err := h.DB.Preload("Project").Preload("Payments").First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeServiceError(w, services.ErrInvoiceNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, withPaid(invoice))
}

type updateInvoiceRequest struct {
	Amount  *decimal.Decimal `json:"amount"`
	DueDate *string          `json:"dueDate"`
	Status  *string          `json:"status"`
	Notes   *string          `json:"notes"`
}

// Update: PUT /invoices/{id}; the one entry point for a manual overdue
// status; it stands until the next payment mutation reconciles it away.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req updateInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var invoice models.Invoice
	if err := h.DB.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeServiceError(w, services.ErrInvoiceNotFound)
			return
		}
		writeServiceError(w, err)
		return
	}
	v := validation.Violations{}
	if req.Amount != nil {
		validation.PositiveAmount("amount", *req.Amount, v)
	}
	if req.Status != nil {
		validation.OneOf("status", *req.Status, []string{models.InvoiceDraft, models.InvoiceSent, models.InvoicePaid, models.InvoiceOverdue}, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if req.Amount != nil {
		invoice.Amount = *req.Amount
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_due_date", nil)
			return
		}
		invoice.DueDate = due
	}
	if req.Status != nil && *req.Status != "" {
		invoice.Status = *req.Status
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if err := h.DB.Save(&invoice).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

// Delete: DELETE /invoices/{id}; cascades payments.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Invoice deleted successfully"})
}
