package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// money goes out as JSON numbers, the dashboard does arithmetic on them
	decimal.MarshalJSONWithoutQuotes = true
}

type OrderItem struct {
	ID       string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID  string          `gorm:"type:varchar(36);not null;index" json:"orderId"`
	Sku      *string         `gorm:"type:varchar(100)" json:"sku"`
	ItemName string          `gorm:"type:varchar(200);not null" json:"itemName"`
	Quantity int             `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}
