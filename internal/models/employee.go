package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assignment payout types.
const (
	PayoutFixed    = "fixed"
	PayoutVariable = "variable"
)

// Employee is a team member who can be assigned to projects and paid out.
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null;index" json:"email"`
	Role      string    `json:"role,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Payouts     []Payout          `gorm:"foreignKey:EmployeeID" json:"payouts,omitempty"`
	Assignments []ProjectEmployee `gorm:"foreignKey:EmployeeID" json:"projectEmployees,omitempty"`
}

// ProjectEmployee is the assignment of an employee to a project together with
// the budgeted payout allocation for that member. At most one row exists per
// (project, employee) pair.
type ProjectEmployee struct {
	ProjectID    uint            `gorm:"primaryKey" json:"projectId"`
	EmployeeID   uint            `gorm:"primaryKey" json:"employeeId"`
	PayoutAmount decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"payoutAmount"`
	PayoutType   string          `gorm:"not null;default:'fixed'" json:"payoutType"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`

	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}
