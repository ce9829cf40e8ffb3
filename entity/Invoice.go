package entity

import (
	"time"

	"gorm.io/gorm"
)

type Invoice struct {
	ID            string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID       string     `gorm:"type:varchar(36);not null;index" json:"orderId"`
	Order         *Order     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order,omitempty"`
	InvoiceNumber string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"invoiceNumber"`
	InvoiceDate   *time.Time `json:"invoiceDate"`
	CreatedAt     time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Documents []InvoiceDocument `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"documents"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}

func (i *Invoice) AfterFind(tx *gorm.DB) error {
	if i.Documents == nil {
		i.Documents = []InvoiceDocument{}
	}
	return nil
}
