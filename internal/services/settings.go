package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

// SettingsService owns the singleton Settings row: the display currency and
// the bcrypt hash of the shared access password. The row is created lazily
// on first access; the password hash is seeded from the configured default
// the first time authentication needs it.
type SettingsService struct {
	DB              *gorm.DB
	DefaultPassword string
}

func NewSettingsService(db *gorm.DB, defaultPassword string) *SettingsService {
	return &SettingsService{DB: db, DefaultPassword: defaultPassword}
}

// Get returns the settings row, creating it with default currency if absent.
func (s *SettingsService) Get() (*models.Settings, error) {
	var settings models.Settings
	err := s.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{Currency: models.CurrencyUSD}
		if err := s.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateCurrency sets the display currency label.
func (s *SettingsService) UpdateCurrency(currency string) (*models.Settings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	settings.Currency = currency
	if err := s.DB.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// ensurePassword seeds the default password hash if none is stored yet.
func (s *SettingsService) ensurePassword(settings *models.Settings) error {
	if settings.Password != "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	settings.Password = string(hash)
	return s.DB.Save(settings).Error
}

// VerifyPassword checks the candidate against the stored hash, lazily
// initializing the hash from the default password policy first.
func (s *SettingsService) VerifyPassword(candidate string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := s.ensurePassword(settings); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(settings.Password), []byte(candidate)) != nil {
		return ErrInvalidPassword
	}
	return nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one.
func (s *SettingsService) ChangePassword(current, next string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := s.ensurePassword(settings); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(settings.Password), []byte(current)) != nil {
		return ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	settings.Password = string(hash)
	return s.DB.Save(settings).Error
}
