package services

import (
	"errors"
	"testing"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

func TestBackupRoundTrip(t *testing.T) {
	dbi := setupTestDB(t)
	p := seedProject(t, dbi, "1000")
	e := seedEmployee(t, dbi, "jordan@example.com")
	inv := seedInvoice(t, dbi, p.ID, "600")
	if _, err := NewAssignmentService(dbi).Assign(p.ID, AssignmentInput{EmployeeID: e.ID, PayoutAmount: mustDec(t, "500")}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := NewPaymentService(dbi).Create(PaymentInput{InvoiceID: inv.ID, Amount: mustDec(t, "600")}); err != nil {
		t.Fatalf("payment: %v", err)
	}
	settingsSvc := NewSettingsService(dbi, "admin123")
	if err := settingsSvc.VerifyPassword("admin123"); err != nil {
		t.Fatalf("seed password hash: %v", err)
	}
	if _, err := settingsSvc.UpdateCurrency(models.CurrencyEUR); err != nil {
		t.Fatalf("currency: %v", err)
	}

	svc := NewBackupService(dbi)
	snap, err := svc.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if snap.Version != SnapshotVersion {
		t.Fatalf("version = %q, want %q", snap.Version, SnapshotVersion)
	}
	if len(snap.Data.Projects) != 1 || len(snap.Data.Payments) != 1 || len(snap.Data.ProjectEmployees) != 1 {
		t.Fatalf("unexpected snapshot shape: %+v", snap.Data)
	}

	// Mutate then restore.
	if err := dbi.Create(&models.Project{Name: "Extra", Client: "X", TotalAmount: mustDec(t, "1")}).Error; err != nil {
		t.Fatalf("extra project: %v", err)
	}
	if err := settingsSvc.ChangePassword("admin123", "newpass"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if err := svc.Import(*snap); err != nil {
		t.Fatalf("import: %v", err)
	}

	var projects int64
	dbi.Model(&models.Project{}).Count(&projects)
	if projects != 1 {
		t.Fatalf("project count after import = %d, want 1", projects)
	}
	settings, err := settingsSvc.Get()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.Currency != models.CurrencyEUR {
		t.Fatalf("currency not restored: %q", settings.Currency)
	}
	// The password changed after export must survive the restore.
	if err := settingsSvc.VerifyPassword("newpass"); err != nil {
		t.Fatalf("import must not reset the password: %v", err)
	}
	if got := invoiceStatus(t, dbi, snap.Data.Invoices[0].ID); got != models.InvoicePaid {
		t.Fatalf("restored invoice status = %q, want paid", got)
	}
}

func TestImportRejectsUnversionedSnapshot(t *testing.T) {
	dbi := setupTestDB(t)
	seedProject(t, dbi, "1000")

	err := NewBackupService(dbi).Import(Snapshot{})
	if !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	var projects int64
	dbi.Model(&models.Project{}).Count(&projects)
	if projects != 1 {
		t.Fatalf("rejected import must leave data untouched")
	}
}

func TestDestroyWipesEverything(t *testing.T) {
	dbi := setupTestDB(t)
	p := seedProject(t, dbi, "1000")
	seedEmployee(t, dbi, "jordan@example.com")
	seedInvoice(t, dbi, p.ID, "600")
	settingsSvc := NewSettingsService(dbi, "admin123")
	if _, err := settingsSvc.Get(); err != nil {
		t.Fatalf("settings: %v", err)
	}

	if err := NewBackupService(dbi).Destroy(); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	for _, m := range []any{
		&models.Project{}, &models.Employee{}, &models.Invoice{},
		&models.Payment{}, &models.Payout{}, &models.ProjectEmployee{},
		&models.Note{}, &models.Settings{},
	} {
		var count int64
		dbi.Model(m).Count(&count)
		if count != 0 {
			t.Fatalf("%T not wiped; count = %d", m, count)
		}
	}
}
