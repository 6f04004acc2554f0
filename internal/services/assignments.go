package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

// AssignmentService manages project team membership. One assignment per
// (project, employee) pair; duplicates are rejected before any write.
type AssignmentService struct{ DB *gorm.DB }

func NewAssignmentService(db *gorm.DB) *AssignmentService { return &AssignmentService{DB: db} }

type AssignmentInput struct {
	EmployeeID   uint
	PayoutAmount decimal.Decimal
	PayoutType   string
	Notes        string
}

type AssignmentUpdate struct {
	PayoutAmount decimal.Decimal
	PayoutType   *string
	Notes        *string
}

func (s *AssignmentService) Assign(projectID uint, in AssignmentInput) (*models.ProjectEmployee, error) {
	var created models.ProjectEmployee
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Project{}, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		if err := tx.First(&models.Employee{}, in.EmployeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}
		var existing models.ProjectEmployee
		err := tx.Where("project_id = ? AND employee_id = ?", projectID, in.EmployeeID).First(&existing).Error
		if err == nil {
			return ErrAlreadyAssigned
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		kind := in.PayoutType
		if kind == "" {
			kind = models.PayoutFixed
		}
		created = models.ProjectEmployee{
			ProjectID:    projectID,
			EmployeeID:   in.EmployeeID,
			PayoutAmount: in.PayoutAmount,
			PayoutType:   kind,
			Notes:        in.Notes,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	if err := s.DB.Preload("Employee").Preload("Project").
		Where("project_id = ? AND employee_id = ?", projectID, in.EmployeeID).First(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *AssignmentService) UpdateAllocation(projectID, employeeID uint, in AssignmentUpdate) (*models.ProjectEmployee, error) {
	var assignment models.ProjectEmployee
	err := s.DB.Where("project_id = ? AND employee_id = ?", projectID, employeeID).First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}

	assignment.PayoutAmount = in.PayoutAmount
	if in.PayoutType != nil && *in.PayoutType != "" {
		assignment.PayoutType = *in.PayoutType
	}
	if in.Notes != nil {
		assignment.Notes = *in.Notes
	}
	if err := s.DB.Save(&assignment).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Preload("Employee").Preload("Project").
		Where("project_id = ? AND employee_id = ?", projectID, employeeID).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *AssignmentService) Remove(projectID, employeeID uint) error {
	var assignment models.ProjectEmployee
	err := s.DB.Where("project_id = ? AND employee_id = ?", projectID, employeeID).First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAssignmentNotFound
	}
	if err != nil {
		return err
	}
	return s.DB.Where("project_id = ? AND employee_id = ?", projectID, employeeID).Delete(&models.ProjectEmployee{}).Error
}
