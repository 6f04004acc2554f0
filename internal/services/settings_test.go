package services

import (
	"errors"
	"testing"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

func TestSettingsLazyCreate(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewSettingsService(dbi, "admin123")

	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.Currency != models.CurrencyUSD {
		t.Fatalf("default currency = %q, want USD", settings.Currency)
	}
	// The password hash is seeded on first verification, not on Get.
	if settings.Password != "" {
		t.Fatalf("password hash seeded too early")
	}
}

func TestVerifyPasswordSeedsDefault(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewSettingsService(dbi, "admin123")

	if err := svc.VerifyPassword("admin123"); err != nil {
		t.Fatalf("default password rejected: %v", err)
	}
	if err := svc.VerifyPassword("wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.Password == "" || settings.Password == "admin123" {
		t.Fatalf("password must be stored as a hash")
	}
}

func TestChangePassword(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewSettingsService(dbi, "admin123")

	if err := svc.ChangePassword("nope", "next"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword("admin123", "s3cret"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if err := svc.VerifyPassword("s3cret"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if err := svc.VerifyPassword("admin123"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("old password must stop working")
	}
}

func TestUpdateCurrency(t *testing.T) {
	dbi := setupTestDB(t)
	svc := NewSettingsService(dbi, "admin123")

	settings, err := svc.UpdateCurrency(models.CurrencyINR)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if settings.Currency != models.CurrencyINR {
		t.Fatalf("currency = %q, want INR", settings.Currency)
	}
}
