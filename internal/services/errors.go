package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Business-rule and lookup failures surfaced to handlers. Handlers translate
// these into the 4xx taxonomy; anything else from the storage layer becomes
// a logged 500.
var (
	ErrProjectNotFound    = errors.New("project_not_found")
	ErrEmployeeNotFound   = errors.New("employee_not_found")
	ErrInvoiceNotFound    = errors.New("invoice_not_found")
	ErrPaymentNotFound    = errors.New("payment_not_found")
	ErrPayoutNotFound     = errors.New("payout_not_found")
	ErrAssignmentNotFound = errors.New("assignment_not_found")

	ErrAlreadyAssigned = errors.New("employee_already_assigned")
	ErrNotAssigned     = errors.New("employee_not_assigned")
	ErrDuplicateEmail  = errors.New("email_already_exists")

	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidSnapshot = errors.New("invalid_snapshot_format")
)

// ExceedsRemainingError rejects a payment that would push an invoice's paid
// total over its face value. Remaining carries the amount still payable so
// the caller can report the figure.
type ExceedsRemainingError struct {
	Remaining decimal.Decimal
}

func (e ExceedsRemainingError) Error() string {
	return fmt.Sprintf("payment amount exceeds remaining invoice amount (%s)", e.Remaining.String())
}
