package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	RefNumber string `gorm:"type:varchar(100);uniqueIndex;not null" json:"refNumber"`

	SupplierID  string     `gorm:"type:varchar(36);not null;index" json:"supplierId"`
	Supplier    *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	ForwarderID string     `gorm:"type:varchar(36);not null;index" json:"forwarderId"`
	Forwarder   *Forwarder `gorm:"foreignKey:ForwarderID" json:"forwarder,omitempty"`

	Status                OrderStatus `gorm:"type:varchar(20);not null;default:DRAFT;index" json:"status"`
	OrderDate             *time.Time  `json:"orderDate"`
	DispatchDate          *time.Time  `json:"dispatchDate"`
	EstimatedDeliveryDate *time.Time  `json:"estimatedDeliveryDate"`
	ActualDeliveryDate    *time.Time  `json:"actualDeliveryDate"`
	ShipmentName          *string     `gorm:"type:varchar(200)" json:"shipmentName"`
	Comments              *string     `gorm:"type:text" json:"comments"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Invoices []Invoice   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"invoices"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	assignID(&o.ID)
	if o.Status == "" {
		o.Status = OrderStatusDraft
	}
	return nil
}

// AfterFind keeps collections as arrays in responses even when they were not preloaded.
func (o *Order) AfterFind(tx *gorm.DB) error {
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	if o.Invoices == nil {
		o.Invoices = []Invoice{}
	}
	return nil
}
