package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/ledger"
	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

// PaymentService owns every mutation of the payment set. Each mutation and
// the invoice status it implies commit in one transaction, so the status can
// never drift from the payments on record and two concurrent payments cannot
// both pass the remaining-amount check.
type PaymentService struct{ DB *gorm.DB }

func NewPaymentService(db *gorm.DB) *PaymentService { return &PaymentService{DB: db} }

type PaymentInput struct {
	InvoiceID     uint
	Amount        decimal.Decimal
	PaymentDate   *time.Time
	PaymentMethod string
	Notes         string
}

type PaymentUpdate struct {
	Amount        *decimal.Decimal
	PaymentDate   *time.Time
	PaymentMethod *string
	Notes         *string
}

// Create records a payment after checking it fits the invoice's remaining
// amount, then reconciles the invoice status.
func (s *PaymentService) Create(in PaymentInput) (*models.Payment, error) {
	var created models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.Preload("Payments").First(&inv, in.InvoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}
		remaining := ledger.InvoiceRemaining(inv)
		if in.Amount.GreaterThan(remaining) {
			return ExceedsRemainingError{Remaining: remaining}
		}

		when := time.Now()
		if in.PaymentDate != nil {
			when = *in.PaymentDate
		}
		method := in.PaymentMethod
		if method == "" {
			method = models.MethodBankTransfer
		}
		created = models.Payment{
			InvoiceID:     in.InvoiceID,
			Amount:        in.Amount,
			PaymentDate:   when,
			PaymentMethod: method,
			Notes:         in.Notes,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		total := ledger.InvoicePaid(inv).Add(in.Amount)
		return tx.Model(&inv).Update("status", ledger.StatusForPayments(total, inv.Amount)).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies a partial change to a payment, re-checks the invoice cap
// against the full payment set with the change applied, and reconciles.
func (s *PaymentService) Update(id uint, in PaymentUpdate) (*models.Payment, error) {
	var updated models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var pay models.Payment
		if err := tx.First(&pay, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		var inv models.Invoice
		if err := tx.Preload("Payments").First(&inv, pay.InvoiceID).Error; err != nil {
			return err
		}

		if in.Amount != nil {
			pay.Amount = *in.Amount
		}
		if in.PaymentDate != nil {
			pay.PaymentDate = *in.PaymentDate
		}
		if in.PaymentMethod != nil && *in.PaymentMethod != "" {
			pay.PaymentMethod = *in.PaymentMethod
		}
		if in.Notes != nil {
			pay.Notes = *in.Notes
		}

		// Total over the payment set with this change applied.
		total := decimal.Zero
		for _, p := range inv.Payments {
			if p.ID == pay.ID {
				total = total.Add(pay.Amount)
			} else {
				total = total.Add(p.Amount)
			}
		}
		if total.GreaterThan(inv.Amount) {
			return ExceedsRemainingError{Remaining: inv.Amount.Sub(total.Sub(pay.Amount))}
		}

		if err := tx.Save(&pay).Error; err != nil {
			return err
		}
		updated = pay
		return tx.Model(&inv).Update("status", ledger.StatusForPayments(total, inv.Amount)).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a payment and reconciles the invoice status against the
// payments that remain.
func (s *PaymentService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var pay models.Payment
		if err := tx.First(&pay, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		var inv models.Invoice
		if err := tx.Preload("Payments").First(&inv, pay.InvoiceID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&pay).Error; err != nil {
			return err
		}
		total := decimal.Zero
		for _, p := range inv.Payments {
			if p.ID != pay.ID {
				total = total.Add(p.Amount)
			}
		}
		return tx.Model(&inv).Update("status", ledger.StatusForPayments(total, inv.Amount)).Error
	})
}
