package services

import (
	"errors"
	"testing"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

func TestPaymentCreateReconcilesStatus(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewPaymentService(dbi)
	p := seedProject(t, dbi, "1000")
	inv := seedInvoice(t, dbi, p.ID, "600")

	if _, err := svc.Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "300")}); err != nil {
		t.Fatalf("create partial payment: %v", err)
	}
	if got := invoiceStatus(t, dbi, inv.ID); got != models.InvoiceSent {
		t.Fatalf("after partial payment status = %q, want sent", got)
	}

	if _, err := svc.Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "300")}); err != nil {
		t.Fatalf("create final payment: %v", err)
	}
	if got := invoiceStatus(t, dbi, inv.ID); got != models.InvoicePaid {
		t.Fatalf("after full payment status = %q, want paid", got)
	}
}

func TestPaymentCreateDefaultsMethod(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewPaymentService(dbi)
	p := seedProject(t, dbi, "1000")
	inv := seedInvoice(t, dbi, p.ID, "600")

	pay, err := svc.Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "100")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pay.PaymentMethod != models.MethodBankTransfer {
		t.Fatalf("default method = %q, want bank_transfer", pay.PaymentMethod)
	}
	if pay.PaymentDate.IsZero() {
		t.Fatalf("payment date not defaulted")
	}
}

func TestPaymentCreateRejectsOverpayment(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewPaymentService(dbi)
	p := seedProject(t, dbi, "1000")
	inv := seedInvoice(t, dbi, p.ID, "600")

	if _, err := svc.Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "300")}); err != nil {
		t.Fatalf("create first payment: %v", err)
	}
	_, err := svc.Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "400")})
	var exceeds ExceedsRemainingError
	if !errors.As(err, &exceeds) {
		t.Fatalf("expected ExceedsRemainingError, got %v", err)
	}
	if !exceeds.Remaining.Equal(mustDec(t, "300")) {
		t.Fatalf("remaining = %s, want 300", exceeds.Remaining)
	}
	// The rejected payment must leave nothing behind.
	var count int64
	dbi.Model(&models.Payment{}).Count(&count)
	if count != 1 {
		t.Fatalf("payment count = %d, want 1", count)
	}
	if got := invoiceStatus(t, dbi, inv.ID); got != models.InvoiceSent {
		t.Fatalf("status after rejected payment = %q, want sent", got)
	}
}

func TestPaymentCreateUnknownInvoice(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewPaymentService(dbi)
	if _, err := svc.Create(PaymentInput{InvoiceID: 99, Amount: mustDec(t, "10")}); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestPaymentUpdateRecomputesStatus(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewPaymentService(dbi)
	p := seedProject(t, dbi, "1000")
	inv := seedInvoice(t, dbi, p.ID, "600")

	pay, err := svc.Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "600")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := invoiceStatus(t, dbi, inv.ID); got != models.InvoicePaid {
		t.Fatalf("status = %q, want paid", got)
	}

	smaller := mustDec(t, "200")
	if _, err := svc.Update(pay.ID, PaymentUpdate{Amount: &smaller}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := invoiceStatus(t, dbi, inv.ID); got != models.InvoiceSent {
		t.Fatalf("status after shrink = %q, want sent", got)
	}
}

func TestPaymentUpdateRejectsOvershoot(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewPaymentService(dbi)
	p := seedProject(t, dbi, "1000")
	inv := seedInvoice(t, dbi, p.ID, "600")

	pay, err := svc.Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "300")})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "200")}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	bigger := mustDec(t, "500")
	_, err = svc.Update(pay.ID, PaymentUpdate{Amount: &bigger})
	var exceeds ExceedsRemainingError
	if !errors.As(err, &exceeds) {
		t.Fatalf("expected ExceedsRemainingError, got %v", err)
	}
	if !exceeds.Remaining.Equal(mustDec(t, "400")) {
		t.Fatalf("remaining = %s, want 400", exceeds.Remaining)
	}
}

func TestPaymentDeleteReconcilesStatus(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewPaymentService(dbi)
	p := seedProject(t, dbi, "1000")
	inv := seedInvoice(t, dbi, p.ID, "600")

	first, err := svc.Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "300")})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "300")}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	if err := svc.Delete(first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := invoiceStatus(t, dbi, inv.ID); got != models.InvoiceSent {
		t.Fatalf("status after delete = %q, want sent", got)
	}

	var remaining []models.Payment
	dbi.Find(&remaining)
	if len(remaining) != 1 {
		t.Fatalf("payment count = %d, want 1", len(remaining))
	}
	if err := svc.Delete(remaining[0].ID); err != nil {
		t.Fatalf("delete last: %v", err)
	}
	if got := invoiceStatus(t, dbi, inv.ID); got != models.InvoiceDraft {
		t.Fatalf("status with no payments = %q, want draft", got)
	}
}

func TestPaymentDeleteUnknown(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewPaymentService(dbi)
	if err := svc.Delete(42); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}
