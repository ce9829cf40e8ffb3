package entity

import (
	"time"

	"gorm.io/gorm"
)

type Supplier struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
