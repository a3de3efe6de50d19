package seeders

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"devclub.community/configs/configslog"
	"devclub.community/models"
)

// SeedAdminUser creates the bootstrap organizer account when missing.
// The password must be changed after first login.
func SeedAdminUser(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", "admin@devclub.community").First(&existing).Error
	if err == nil {
		configslog.SLog.Info("admin user already exists, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		configslog.Log.Error("admin user lookup failed", zap.Error(err))
		return err
	}

	admin := models.User{
		Name:     "Admin User",
		Email:    "admin@devclub.community",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("admin user seed failed", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("admin user created (ID: %d)", admin.ID)
	return nil
}
