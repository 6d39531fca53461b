package db

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/meinhoongagan/salon-booking/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSuperAdmin creates a super admin with email and password unless one
// already exists. It reports whether a row was created.
func SeedSuperAdmin(db *gorm.DB, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, errors.New("email and password are required")
	}

	var count int64
	if err := db.Model(&models.Admin{}).Where("role = ?", models.RoleSuperAdmin).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		log.Info("super admin already exists, skipping seed")
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := models.Admin{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, err
	}
	log.Infow("super admin created", "email", email)
	return true, nil
}
