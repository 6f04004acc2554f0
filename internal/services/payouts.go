package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

// PayoutService records money paid to employees. Creation is guarded: the
// (project, employee) pair must have a ProjectEmployee assignment or nothing
// is written.
type PayoutService struct{ DB *gorm.DB }

func NewPayoutService(db *gorm.DB) *PayoutService { return &PayoutService{DB: db} }

type PayoutInput struct {
	ProjectID  uint
	EmployeeID uint
	Amount     decimal.Decimal
	PayoutDate *time.Time
	PayoutType string
	Notes      string
}

type PayoutUpdate struct {
	Amount     *decimal.Decimal
	PayoutDate *time.Time
	PayoutType *string
	Notes      *string
}

func (s *PayoutService) Create(in PayoutInput) (*models.Payout, error) {
	var created models.Payout
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var assignment models.ProjectEmployee
		err := tx.Where("project_id = ? AND employee_id = ?", in.ProjectID, in.EmployeeID).First(&assignment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAssigned
		}
		if err != nil {
			return err
		}

		when := time.Now()
		if in.PayoutDate != nil {
			when = *in.PayoutDate
		}
		kind := in.PayoutType
		if kind == "" {
			kind = models.PayoutRegular
		}
		created = models.Payout{
			ProjectID:  in.ProjectID,
			EmployeeID: in.EmployeeID,
			Amount:     in.Amount,
			PayoutDate: when,
			PayoutType: kind,
			Status:     models.PayoutCompleted,
			Notes:      in.Notes,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *PayoutService) Update(id uint, in PayoutUpdate) (*models.Payout, error) {
	var pay models.Payout
	if err := s.DB.First(&pay, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, err
	}
	if in.Amount != nil {
		pay.Amount = *in.Amount
	}
	if in.PayoutDate != nil {
		pay.PayoutDate = *in.PayoutDate
	}
	if in.PayoutType != nil && *in.PayoutType != "" {
		pay.PayoutType = *in.PayoutType
	}
	if in.Notes != nil {
		pay.Notes = *in.Notes
	}
	if err := s.DB.Save(&pay).Error; err != nil {
		return nil, err
	}
	return &pay, nil
}

func (s *PayoutService) Delete(id uint) error {
	var pay models.Payout
	if err := s.DB.First(&pay, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPayoutNotFound
		}
		return err
	}
	return s.DB.Delete(&pay).Error
}
