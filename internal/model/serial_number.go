package model

import "time"

// SerialNumber is the verification-lookup index for minted serials. It is
// kept separate from Banknote.SerialNumber so lookups are unambiguous across
// sides: the serial string is globally unique here. Superseded serials are
// deactivated rather than deleted; verification filters on IsActive.
type SerialNumber struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Serial     string    `json:"serial" gorm:"uniqueIndex;size:100;not null"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	BanknoteID *uint     `json:"banknote_id"`
	IsActive   bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Banknote *Banknote `json:"banknote,omitempty" gorm:"foreignKey:BanknoteID"`
}
