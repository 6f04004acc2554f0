package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbi.AutoMigrate(
		&models.Settings{}, &models.Project{}, &models.Employee{}, &models.Note{},
		&models.ProjectEmployee{}, &models.Invoice{}, &models.Payment{}, &models.Payout{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return dbi
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func seedProject(t *testing.T, dbi *gorm.DB, total string) models.Project {
	t.Helper()
	p := models.Project{Name: "Website Redesign", Client: "Acme", TotalAmount: mustDec(t, total), Status: models.ProjectActive}
	if err := dbi.Create(&p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func seedEmployee(t *testing.T, dbi *gorm.DB, email string) models.Employee {
	t.Helper()
	e := models.Employee{Name: "Jordan Diaz", Email: email, Role: "developer"}
	if err := dbi.Create(&e).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return e
}

func seedInvoice(t *testing.T, dbi *gorm.DB, projectID uint, amount string) models.Invoice {
	t.Helper()
	inv := models.Invoice{
		InvoiceNumber: "INV-" + t.Name(),
		ProjectID:     projectID,
		Amount:        mustDec(t, amount),
		DueDate:       time.Now().Add(30 * 24 * time.Hour),
		Status:        models.InvoiceDraft,
	}
	if err := dbi.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv
}

func invoiceStatus(t *testing.T, dbi *gorm.DB, id uint) string {
	t.Helper()
	var inv models.Invoice
	if err := dbi.First(&inv, id).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	return inv.Status
}
