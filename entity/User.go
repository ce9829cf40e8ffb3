package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultUserRole = "USER"

type User struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name"`
	Role      string    `gorm:"type:varchar(20);not null;default:USER" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	if u.Role == "" {
		u.Role = DefaultUserRole
	}
	return nil
}

// assignID fills an empty primary key; rows are keyed by UUID strings on every engine.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
