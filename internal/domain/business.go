package domain

import (
	"time"
)

// BusinessToken is a venue's durable printable QR code. Created once on first
// provisioning, never mutated, never deleted in normal operation.
type BusinessToken struct {
	BusinessName string    `json:"business_name" gorm:"primaryKey"`
	QRCode       string    `json:"qr_code" gorm:"uniqueIndex"`
	CreatedAt    time.Time `json:"created_at"`
}

func (BusinessToken) TableName() string {
	return "business_qr_codes"
}
