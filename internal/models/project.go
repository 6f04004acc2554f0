package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project statuses.
const (
	ProjectActive    = "active"
	ProjectOnHold    = "on-hold"
	ProjectCompleted = "completed"
)

// Project is a client engagement with a budgeted total amount. All of its
// invoices, payouts, team assignments and notes are deleted with it.
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null;index" json:"name"`
	Client      string          `gorm:"not null" json:"client"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"totalAmount"`
	Description string          `json:"description,omitempty"`
	Status      string          `gorm:"not null;default:'active'" json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Invoices []Invoice         `gorm:"foreignKey:ProjectID" json:"invoices,omitempty"`
	Payouts  []Payout          `gorm:"foreignKey:ProjectID" json:"payouts,omitempty"`
	Team     []ProjectEmployee `gorm:"foreignKey:ProjectID" json:"projectEmployees,omitempty"`
	Notes    []Note            `gorm:"foreignKey:ProjectID" json:"notes,omitempty"`
}

// Note is a freeform annotation attached to a project. Content is required,
// title and color are presentational.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"projectId"`
	Title     string    `json:"title,omitempty"`
	Content   string    `gorm:"not null" json:"content"`
	Color     string    `gorm:"not null;default:'#ffffff'" json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
