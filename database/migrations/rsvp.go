package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"devclub.community/configs/configslog"
	"devclub.community/models"
)

// MigrateRSVPsTable creates/updates the rsvps table. The compound unique
// index on (event_id, user_email) is the load-bearing part: it is what
// makes duplicate admission for the same attendee impossible at write time.
func MigrateRSVPsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating rsvps table...")
	if err := db.AutoMigrate(&models.RSVP{}); err != nil {
		configslog.Log.Error("Failed to migrate rsvps table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("RSVPs table migrated successfully")
	return nil
}
