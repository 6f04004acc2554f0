package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/xplicit-dev/project-finance-manager/internal/models"
)

// Cascade deletes are applied explicitly in dependency order inside a
// transaction instead of relying on driver-level foreign key enforcement,
// which differs between sqlite and postgres setups.

// ProjectService covers project mutations that touch dependent tables.
type ProjectService struct{ DB *gorm.DB }

func NewProjectService(db *gorm.DB) *ProjectService { return &ProjectService{DB: db} }

// Delete removes a project with its invoices (and their payments), payouts,
// team assignments and notes.
func (s *ProjectService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		var invoiceIDs []uint
		if err := tx.Model(&models.Invoice{}).Where("project_id = ?", id).Pluck("id", &invoiceIDs).Error; err != nil {
			return err
		}
		if len(invoiceIDs) > 0 {
			if err := tx.Where("invoice_id IN ?", invoiceIDs).Delete(&models.Payment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Payout{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectEmployee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

// EmployeeService covers employee mutations that touch dependent tables.
type EmployeeService struct{ DB *gorm.DB }

func NewEmployeeService(db *gorm.DB) *EmployeeService { return &EmployeeService{DB: db} }

// Delete removes an employee with their payouts and project assignments.
// Projects the employee worked on are untouched.
func (s *EmployeeService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.First(&employee, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.Payout{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.ProjectEmployee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&employee).Error
	})
}

// InvoiceService covers invoice mutations that touch dependent tables.
type InvoiceService struct{ DB *gorm.DB }

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// Delete removes an invoice together with its payments.
func (s *InvoiceService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
}
