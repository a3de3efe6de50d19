package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"devclub.community/models"
	"devclub.community/services"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	handler := NewRSVPHandler(services.NewRSVPServiceDB(db))
	app := fiber.New()
	app.Post("/api/rsvp", handler.Create)
	app.Get("/api/rsvp/user/:userEmail", handler.ListForUser)
	return app, db
}

func seedEvent(t *testing.T, db *gorm.DB, maxAttendees int) *models.Event {
	t.Helper()
	admin := &models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true}
	if err := admin.SetPassword("secret123"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	event := &models.Event{
		Title:       "Go Meetup",
		Description: "An evening of Go talks and networking for the community.",
		Date:        time.Now().UTC().Add(48 * time.Hour),
		Time:        "18:00",
		Location:    "Community Hall",
		FormURL:     "https://forms.example.com/go-meetup",
		Category:    models.CategoryMeetup,
		IsActive:    true,
		CreatedByID: admin.ID,
	}
	if maxAttendees > 0 {
		event.MaxAttendees = &maxAttendees
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func postRSVP(t *testing.T, app *fiber.App, body any) (*http.Response, envelope) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/rsvp", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, env
}

func TestCreateRSVPEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	event := seedEvent(t, db, 1)

	resp, env := postRSVP(t, app, fiber.Map{
		"eventId":   event.ID,
		"userEmail": "jane@example.com",
		"userName":  "Jane Doe",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if !env.Success || env.Message != "RSVP created successfully" {
		t.Errorf("envelope = %+v", env)
	}

	// Same email again is a duplicate, not a capacity failure.
	resp, env = postRSVP(t, app, fiber.Map{
		"eventId":   event.ID,
		"userEmail": "JANE@example.com",
		"userName":  "Jane Doe",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("duplicate status = %d, want 400", resp.StatusCode)
	}
	if env.Success || env.Message != services.ErrRSVPDuplicate.Error() {
		t.Errorf("duplicate envelope = %+v", env)
	}

	// A different email hits the capacity limit.
	resp, env = postRSVP(t, app, fiber.Map{
		"eventId":   event.ID,
		"userEmail": "john@example.com",
		"userName":  "John Doe",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("full status = %d, want 400", resp.StatusCode)
	}
	if env.Message != services.ErrRSVPEventFull.Error() {
		t.Errorf("full message = %q", env.Message)
	}
}

func TestCreateRSVPUnknownEvent(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := postRSVP(t, app, fiber.Map{
		"eventId":   9999,
		"userEmail": "jane@example.com",
		"userName":  "Jane Doe",
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if env.Success {
		t.Error("success=true on missing event")
	}
}

func TestCreateRSVPValidation(t *testing.T) {
	app, db := newTestApp(t)
	event := seedEvent(t, db, 0)

	resp, env := postRSVP(t, app, fiber.Map{
		"eventId":   event.ID,
		"userEmail": "not-an-email",
		"userName":  "J",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if env.Message != "Validation failed" || len(env.Errors) == 0 {
		t.Errorf("envelope = %+v, want field errors", env)
	}
}
