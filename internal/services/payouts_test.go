package services

import (
	"errors"
	"testing"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

func TestPayoutRequiresAssignment(t *testing.T) {
	dbi := setupTestDB(t)
	p := seedProject(t, dbi, "1000")
	e := seedEmployee(t, dbi, "jordan@example.com")

	svc := NewPayoutService(dbi)
	_, err := svc.Create(PayoutInput{ProjectID: p.ID, EmployeeID: e.ID, Amount: mustDec(t, "200")})
	if !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
	var count int64
	dbi.Model(&models.Payout{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected payout left %d rows", count)
	}
}

func TestPayoutCreateWithAssignment(t *testing.T) {
	dbi := setupTestDB(t)
	p := seedProject(t, dbi, "1000")
	e := seedEmployee(t, dbi, "jordan@example.com")
	assignSvc := NewAssignmentService(dbi)
	if _, err := assignSvc.Assign(p.ID, AssignmentInput{EmployeeID: e.ID, PayoutAmount: mustDec(t, "500")}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	svc := NewPayoutService(dbi)
	payout, err := svc.Create(PayoutInput{ProjectID: p.ID, EmployeeID: e.ID, Amount: mustDec(t, "200")})
	if err != nil {
		t.Fatalf("create payout: %v", err)
	}
	if payout.PayoutType != models.PayoutRegular {
		t.Fatalf("default type = %q, want regular", payout.PayoutType)
	}
	if payout.Status != models.PayoutCompleted {
		t.Fatalf("default status = %q, want completed", payout.Status)
	}
}

func TestAssignDuplicateRejected(t *testing.T) {
	dbi := setupTestDB(t)
	p := seedProject(t, dbi, "1000")
	e := seedEmployee(t, dbi, "jordan@example.com")
	svc := NewAssignmentService(dbi)

	if _, err := svc.Assign(p.ID, AssignmentInput{EmployeeID: e.ID, PayoutAmount: mustDec(t, "500")}); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := svc.Assign(p.ID, AssignmentInput{EmployeeID: e.ID, PayoutAmount: mustDec(t, "100")}); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
}

func TestAssignUnknownProjectOrEmployee(t *testing.T) {
	dbi := setupTestDB(t)
	e := seedEmployee(t, dbi, "jordan@example.com")
	svc := NewAssignmentService(dbi)

	if _, err := svc.Assign(99, AssignmentInput{EmployeeID: e.ID, PayoutAmount: mustDec(t, "1")}); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	p := seedProject(t, dbi, "1000")
	if _, err := svc.Assign(p.ID, AssignmentInput{EmployeeID: 99, PayoutAmount: mustDec(t, "1")}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestAssignmentRemoveKeepsPayouts(t *testing.T) {
	dbi := setupTestDB(t)
	p := seedProject(t, dbi, "1000")
	e := seedEmployee(t, dbi, "jordan@example.com")
	assignSvc := NewAssignmentService(dbi)
	if _, err := assignSvc.Assign(p.ID, AssignmentInput{EmployeeID: e.ID, PayoutAmount: mustDec(t, "500")}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := NewPayoutService(dbi).Create(PayoutInput{ProjectID: p.ID, EmployeeID: e.ID, Amount: mustDec(t, "200")}); err != nil {
		t.Fatalf("payout: %v", err)
	}

	if err := assignSvc.Remove(p.ID, e.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	var payouts int64
	dbi.Model(&models.Payout{}).Count(&payouts)
	if payouts != 1 {
		t.Fatalf("removing the assignment must not delete recorded payouts; count = %d", payouts)
	}
	if err := assignSvc.Remove(p.ID, e.ID); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("expected ErrAssignmentNotFound on second remove, got %v", err)
	}
}

func TestProjectCascadeDelete(t *testing.T) {
	dbi := setupTestDB(t)
	p := seedProject(t, dbi, "1000")
	e := seedEmployee(t, dbi, "jordan@example.com")
	inv := seedInvoice(t, dbi, p.ID, "600")
	if _, err := NewAssignmentService(dbi).Assign(p.ID, AssignmentInput{EmployeeID: e.ID, PayoutAmount: mustDec(t, "500")}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := NewPaymentService(dbi).Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "300")}); err != nil {
		t.Fatalf("payment: %v", err)
	}
	if _, err := NewPayoutService(dbi).Create(PayoutInput{ProjectID: p.ID, EmployeeID: e.ID, Amount: mustDec(t, "100")}); err != nil {
		t.Fatalf("payout: %v", err)
	}
	if err := dbi.Create(&models.Note{ProjectID: p.ID, Content: "kickoff", Color: "#ffffff"}).Error; err != nil {
		t.Fatalf("note: %v", err)
	}

	if err := NewProjectService(dbi).Delete(p.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	for _, check := range []struct {
		name  string
		model any
	}{
		{"projects", &models.Project{}},
		{"invoices", &models.Invoice{}},
		{"payments", &models.Payment{}},
		{"payouts", &models.Payout{}},
		{"assignments", &models.ProjectEmployee{}},
		{"notes", &models.Note{}},
	} {
		var count int64
		dbi.Model(check.model).Count(&count)
		if count != 0 {
			t.Fatalf("%s not cascaded; count = %d", check.name, count)
		}
	}
	// The employee itself survives.
	var employees int64
	dbi.Model(&models.Employee{}).Count(&employees)
	if employees != 1 {
		t.Fatalf("employee count = %d, want 1", employees)
	}
}

func TestEmployeeCascadeDelete(t *testing.T) {
	dbi := setupTestDB(t)
	p := seedProject(t, dbi, "1000")
	e := seedEmployee(t, dbi, "jordan@example.com")
	if _, err := NewAssignmentService(dbi).Assign(p.ID, AssignmentInput{EmployeeID: e.ID, PayoutAmount: mustDec(t, "500")}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := NewPayoutService(dbi).Create(PayoutInput{ProjectID: p.ID, EmployeeID: e.ID, Amount: mustDec(t, "100")}); err != nil {
		t.Fatalf("payout: %v", err)
	}

	if err := NewEmployeeService(dbi).Delete(e.ID); err != nil {
		t.Fatalf("delete employee: %v", err)
	}
	var payouts, assignments, projects int64
	dbi.Model(&models.Payout{}).Count(&payouts)
	dbi.Model(&models.ProjectEmployee{}).Count(&assignments)
	dbi.Model(&models.Project{}).Count(&projects)
	if payouts != 0 || assignments != 0 {
		t.Fatalf("employee dependents not cascaded: payouts=%d assignments=%d", payouts, assignments)
	}
	if projects != 1 {
		t.Fatalf("project must survive employee deletion")
	}
}
