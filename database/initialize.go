package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"devclub.community/configs/configslog"
	"devclub.community/database/migrations"
	"devclub.community/database/seeders"
)

// Initialize runs migrations and seeders inside one transaction; a failure
// anywhere rolls everything back.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("neither migrate nor seed requested, nothing to do")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("running migrations...")
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("migration failed", zap.Error(err))
				return err
			}
			configslog.SLog.Info("migrations completed")
		}
		if seed {
			configslog.SLog.Info("running seeders...")
			if err := RunSeeders(tx); err != nil {
				configslog.Log.Error("seeding failed", zap.Error(err))
				return err
			}
			configslog.SLog.Info("seeders completed")
		}
		return nil
	})
}

// RunMigrationsInOrder migrates tables respecting FK dependencies:
// users before events, events before rsvps.
func RunMigrationsInOrder(db *gorm.DB) error {
	if err := migrations.MigrateUsersTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateEventsTables(db); err != nil {
		return err
	}
	if err := migrations.MigrateRSVPsTable(db); err != nil {
		return err
	}
	return nil
}

// RunSeeders seeds the admin account and the sample events.
func RunSeeders(db *gorm.DB) error {
	if err := seeders.SeedAdminUser(db); err != nil {
		return err
	}
	if err := seeders.SeedEvents(db); err != nil {
		return err
	}
	return nil
}
