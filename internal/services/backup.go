package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

// SnapshotVersion tags exported backups so imports can reject unknown shapes.
const SnapshotVersion = "1.0"

// Snapshot is a full point-in-time dump of every entity table, used for
// backup and restore.
type Snapshot struct {
	Version    string       `json:"version"`
	ExportDate time.Time    `json:"exportDate"`
	Data       SnapshotData `json:"data"`
}

type SnapshotData struct {
	Projects         []models.Project         `json:"projects"`
	Invoices         []models.Invoice         `json:"invoices"`
	Payments         []models.Payment         `json:"payments"`
	Employees        []models.Employee        `json:"employees"`
	ProjectEmployees []models.ProjectEmployee `json:"projectEmployees"`
	Payouts          []models.Payout          `json:"payouts"`
	Notes            []models.Note            `json:"notes"`
	Settings         []models.Settings        `json:"settings"`
}

// BackupService exports, restores and destroys the whole database.
type BackupService struct{ DB *gorm.DB }

func NewBackupService(db *gorm.DB) *BackupService { return &BackupService{DB: db} }

// Export dumps every table as-is, without derived figures.
func (s *BackupService) Export() (*Snapshot, error) {
	snap := &Snapshot{Version: SnapshotVersion, ExportDate: time.Now().UTC()}
	d := &snap.Data
	for _, step := range []struct {
		dest any
	}{
		{&d.Projects}, {&d.Invoices}, {&d.Payments}, {&d.Employees},
		{&d.ProjectEmployees}, {&d.Payouts}, {&d.Notes}, {&d.Settings},
	} {
		if err := s.DB.Find(step.dest).Error; err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// Import replaces every non-settings table with the snapshot contents.
// Tables are cleared and recreated in foreign-key order. Only the currency
// is taken from the snapshot's settings; the stored password hash survives
// so a restore never silently resets authentication.
func (s *BackupService) Import(snap Snapshot) error {
	if snap.Version == "" {
		return ErrInvalidSnapshot
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.Payment{}, &models.Invoice{}, &models.Payout{},
			&models.ProjectEmployee{}, &models.Note{}, &models.Project{}, &models.Employee{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}

		d := snap.Data
		if len(d.Employees) > 0 {
			if err := tx.Create(&d.Employees).Error; err != nil {
				return err
			}
		}
		if len(d.Projects) > 0 {
			if err := tx.Create(&d.Projects).Error; err != nil {
				return err
			}
		}
		if len(d.Notes) > 0 {
			if err := tx.Create(&d.Notes).Error; err != nil {
				return err
			}
		}
		if len(d.ProjectEmployees) > 0 {
			if err := tx.Create(&d.ProjectEmployees).Error; err != nil {
				return err
			}
		}
		if len(d.Invoices) > 0 {
			if err := tx.Create(&d.Invoices).Error; err != nil {
				return err
			}
		}
		if len(d.Payments) > 0 {
			if err := tx.Create(&d.Payments).Error; err != nil {
				return err
			}
		}
		if len(d.Payouts) > 0 {
			if err := tx.Create(&d.Payouts).Error; err != nil {
				return err
			}
		}

		if len(d.Settings) > 0 {
			var current models.Settings
			if err := tx.First(&current).Error; err == nil {
				if err := tx.Model(&current).Update("currency", d.Settings[0].Currency).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Destroy irreversibly deletes every row in every table, settings included.
func (s *BackupService) Destroy() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.Payment{}, &models.Invoice{}, &models.Payout{},
			&models.ProjectEmployee{}, &models.Note{}, &models.Project{},
			&models.Employee{}, &models.Settings{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
