package database

import (
	"fmt"
	"strings"

	"csirt-registry/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin создаёт администратора для локального провайдера,
// если в profiles ещё нет ни одного admin.
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := db.Model(&models.Profile{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin profile: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	account := models.AuthAccount{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Administrator",
	}
	profile := models.Profile{
		ID:   account.ID,
		Name: account.FullName,
		Role: models.RoleAdmin,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		return tx.Omit("Company").Create(&profile).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	logrus.WithField("email", email).Info("created default admin user")
	return nil
}
