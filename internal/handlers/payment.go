package handlers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/httpx"
	"github.com/xplicit-dev/project-finance-manager/internal/models"
	"github.com/xplicit-dev/project-finance-manager/internal/services"
	"github.com/xplicit-dev/project-finance-manager/internal/validation"
)

var paymentMethods = []string{
	models.MethodBankTransfer, models.MethodCash, models.MethodCheck,
	models.MethodOnline, models.MethodCreditCard, models.MethodOther,
}

type PaymentHandler struct {
	DB  *gorm.DB
	Svc *services.PaymentService
}

func NewPaymentHandler(db *gorm.DB, svc *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{DB: db, Svc: svc}
}

// List: GET /payments?invoiceId=
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Preload("Invoice.Project").Order("payment_date desc")
	invoiceID, ok := queryID(r, "invoiceId")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_invoice_id", nil)
		return
	}
	if invoiceID != 0 {
		q = q.Where("invoice_id = ?", invoiceID)
	}
	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}

// Get: GET /payments/{id}
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var payment models.Payment
	err := h.DB.Preload("Invoice.Project").First(&payment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeServiceError(w, services.ErrPaymentNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payment)
}

type createPaymentRequest struct {
	InvoiceID     uint            `json:"invoiceId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
}

// Create: POST /payments; the remaining-amount guard and the invoice
// status reconciliation both run inside the service transaction.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.RequiredID("invoiceId", req.InvoiceID, v)
	validation.PositiveAmount("amount", req.Amount, v)
	validation.OneOf("paymentMethod", req.PaymentMethod, paymentMethods, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	in := services.PaymentInput{
		InvoiceID:     req.InvoiceID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.PaymentDate != "" {
		when, err := parseDate(req.PaymentDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_payment_date", nil)
			return
		}
		in.PaymentDate = &when
	}
	payment, err := h.Svc.Create(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.DB.Preload("Invoice.Project").First(payment, payment.ID).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, payment)
}

type updatePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	PaymentDate   *string          `json:"paymentDate"`
	PaymentMethod *string          `json:"paymentMethod"`
	Notes         *string          `json:"notes"`
}

// Update: PUT /payments/{id}; re-runs reconciliation against the full
// payment set with the change applied.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req updatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	if req.Amount != nil {
		validation.PositiveAmount("amount", *req.Amount, v)
	}
	if req.PaymentMethod != nil {
		validation.OneOf("paymentMethod", *req.PaymentMethod, paymentMethods, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	in := services.PaymentUpdate{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		when, err := parseDate(*req.PaymentDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_payment_date", nil)
			return
		}
		in.PaymentDate = &when
	}
	payment, err := h.Svc.Update(id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payment)
}

// Delete: DELETE /payments/{id}; reconciles the invoice against the
// payments that remain.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Payment deleted successfully"})
}
