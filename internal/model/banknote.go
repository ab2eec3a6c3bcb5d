package model

import "time"

// NoteSide identifies which face of a note an artifact shows.
type NoteSide string

const (
	SideFront NoteSide = "front"
	SideBack  NoteSide = "back"
)

// Banknote represents one side of one minted note. A serial may appear once
// per side, never twice within the same side.
type Banknote struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	SerialNumber string    `json:"serial_number" gorm:"size:100;not null;uniqueIndex:uniq_serial_side"`
	SeedText     string    `json:"seed_text" gorm:"type:text;not null"`
	Denomination string    `json:"denomination" gorm:"size:50;not null"`
	Side         NoteSide  `json:"side" gorm:"size:10;not null;uniqueIndex:uniq_serial_side"`
	SVGPath      string    `json:"svg_path" gorm:"size:500;not null"`
	PNGPath      string    `json:"png_path" gorm:"size:500"`
	PDFPath      string    `json:"pdf_path" gorm:"size:500"`
	QRData       string    `json:"qr_data,omitempty" gorm:"type:text"`
	IsPublic     bool      `json:"is_public" gorm:"default:true;index"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
