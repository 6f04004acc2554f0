package models

import "time"

// Supported currency labels. Currency is a display label only; every amount
// in the system shares one implicit unit.
const (
	CurrencyUSD = "USD"
	CurrencyINR = "INR"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
)

// Settings is the application-wide singleton row: display currency and the
// bcrypt hash of the shared access password. It is created lazily on first
// access.
type Settings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Currency  string    `gorm:"not null;default:'USD'" json:"currency"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
