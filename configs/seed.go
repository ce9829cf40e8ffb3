package configs

import (
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mohammedmirzada/order-tracking/entity"
)

// SeedAdmin creates the first admin from ADMIN_EMAIL/ADMIN_PASSWORD once.
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Name:     cfg.AdminName,
		Role:     "ADMIN",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("seeded admin:", email)
	return nil
}
