package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. draft, sent and paid are recomputed from the payment set;
// overdue is only ever set by an explicit invoice update.
const (
	InvoiceDraft   = "draft"
	InvoiceSent    = "sent"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// Payment methods.
const (
	MethodBankTransfer = "bank_transfer"
	MethodCash         = "cash"
	MethodCheck        = "check"
	MethodOnline       = "online"
	MethodCreditCard   = "credit_card"
	MethodOther        = "other"
)

// Invoice is a bill issued against a project. Its payments may never sum to
// more than Amount.
type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"unique;not null" json:"invoiceNumber"`
	ProjectID     uint            `gorm:"not null;index" json:"projectId"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	DueDate       time.Time       `gorm:"not null" json:"dueDate"`
	Status        string          `gorm:"not null;default:'draft'" json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Payments []Payment `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// Payment is money received against an invoice.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceID     uint            `gorm:"not null;index" json:"invoiceId"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"not null" json:"paymentDate"`
	PaymentMethod string          `gorm:"not null;default:'bank_transfer'" json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Invoice *Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
}
