package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payout types and status.
const (
	PayoutRegular = "regular"
	PayoutAdvance = "advance"
	PayoutBonus   = "bonus"

	PayoutCompleted = "completed"
)

// Payout is money paid to an employee for work on a project. A payout may
// only exist for a (project, employee) pair that has a ProjectEmployee
// assignment.
type Payout struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ProjectID  uint            `gorm:"not null;index" json:"projectId"`
	EmployeeID uint            `gorm:"not null;index" json:"employeeId"`
	Amount     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PayoutDate time.Time       `gorm:"not null" json:"payoutDate"`
	PayoutType string          `gorm:"not null;default:'regular'" json:"payoutType"`
	Status     string          `gorm:"not null;default:'completed'" json:"status"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}
