package entity

import (
	"time"

	"gorm.io/gorm"
)

// InvoiceDocument is a file attached to an invoice; the bytes live under the upload dir.
type InvoiceDocument struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	InvoiceID    string    `gorm:"type:varchar(36);not null;index" json:"invoiceId"`
	Filename     string    `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string    `gorm:"type:varchar(255);not null" json:"originalName"`
	Filepath     string    `gorm:"type:varchar(500);not null" json:"filepath"`
	Mimetype     string    `gorm:"type:varchar(100)" json:"mimetype"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (d *InvoiceDocument) BeforeCreate(tx *gorm.DB) error {
	assignID(&d.ID)
	return nil
}
