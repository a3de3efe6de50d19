package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"devclub.community/configs/configslog"
	"devclub.community/models"
)

// MigrateEventsTables creates/updates the events and event_images tables.
// The users table must exist first for the creator FK.
func MigrateEventsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating events tables...")
	if err := db.AutoMigrate(&models.Event{}, &models.EventImage{}); err != nil {
		configslog.Log.Error("Failed to migrate events tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Events tables migrated successfully")
	return nil
}
