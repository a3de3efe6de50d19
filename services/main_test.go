package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"devclub.community/models"
)

// newTestDB opens a private in-memory database and migrates the schema.
// cache=shared keeps the database alive across pool connections within one
// test; the test name keeps tests isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Event{}, &models.EventImage{}, &models.RSVP{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Role:     role,
		IsActive: true,
	}
	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

// createTestEvent makes a future, active event. maxAttendees <= 0 means
// unlimited.
func createTestEvent(t *testing.T, db *gorm.DB, creatorID uint, maxAttendees int) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:       "Go Meetup",
		Description: "An evening of Go talks and networking for the community.",
		Date:        time.Now().UTC().Add(48 * time.Hour),
		Time:        "18:00",
		Location:    "Community Hall",
		FormURL:     "https://forms.example.com/go-meetup",
		Category:    models.CategoryMeetup,
		IsActive:    true,
		CreatedByID: creatorID,
	}
	if maxAttendees > 0 {
		event.MaxAttendees = &maxAttendees
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("create test event: %v", err)
	}
	return event
}
