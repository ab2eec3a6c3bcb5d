package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered citizen of the treasury.
type User struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Username        string          `json:"username" gorm:"uniqueIndex;size:80;not null"`
	Email           string          `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash    string          `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	TwoFactorSecret string          `json:"-" gorm:"size:32"`
	Bio             string          `json:"bio" gorm:"type:text"` // Sanitized HTML subset
	Balance         decimal.Decimal `json:"balance" gorm:"type:decimal(20,2);not null;default:0"`
	LastGeneration  *time.Time      `json:"last_generation"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relations
	Banknotes []Banknote       `json:"banknotes,omitempty" gorm:"foreignKey:UserID"`
	Tasks     []GenerationTask `json:"-" gorm:"foreignKey:UserID"`
}

// TwoFactorEnabled reports whether the user completed TOTP enrollment.
func (u *User) TwoFactorEnabled() bool {
	return u.TwoFactorSecret != ""
}
