package seeders

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"devclub.community/configs/configslog"
	"devclub.community/models"
)

func intPtr(v int) *int { return &v }

// SeedEvents creates a handful of sample events so a fresh install has
// something to show. Events are keyed by title; existing ones are skipped.
func SeedEvents(db *gorm.DB) error {
	var admin models.User
	if err := db.Where("email = ?", "admin@devclub.community").First(&admin).Error; err != nil {
		configslog.Log.Error("event seed requires the admin user", zap.Error(err))
		return err
	}

	base := time.Now().UTC().Truncate(time.Hour)
	events := []models.Event{
		{
			Title:            "React 18 Deep Dive Workshop",
			Description:      "Learn about the latest features in React 18 including concurrent rendering, automatic batching, and Suspense improvements. Hands-on, with practical examples and real-world use cases.",
			ShortDescription: "Learn React 18 features with hands-on examples",
			Date:             base.Add(21 * 24 * time.Hour),
			Time:             "14:00",
			Location:         "Virtual (Zoom)",
			FormURL:          "https://forms.google.com/react-workshop",
			Category:         models.CategoryWorkshop,
			MaxAttendees:     intPtr(100),
			Tags:             []string{"React", "JavaScript", "Frontend"},
			SpeakerName:      "Sarah Chen",
			SpeakerTitle:     "Senior React Developer",
			SpeakerBio:       "Sarah has 8+ years of experience building scalable web applications.",
			IsActive:         true,
			IsFeatured:       true,
			CreatedByID:      admin.ID,
			Images: []models.EventImage{
				{URL: "https://images.pexels.com/photos/1181298/pexels-photo-1181298.jpeg", Alt: "React Workshop"},
			},
		},
		{
			Title:            "AI/ML Bootcamp for Beginners",
			Description:      "A comprehensive introduction to Machine Learning using Python. Perfect for developers looking to get started with AI: fundamental concepts, popular libraries, and practical projects.",
			ShortDescription: "Introduction to Machine Learning with Python",
			Date:             base.Add(28 * 24 * time.Hour),
			Time:             "10:00",
			Location:         "Virtual (Discord)",
			FormURL:          "https://forms.google.com/ml-bootcamp",
			Category:         models.CategoryBootcamp,
			MaxAttendees:     intPtr(50),
			Tags:             []string{"Python", "Machine Learning", "AI"},
			IsActive:         true,
			CreatedByID:      admin.ID,
		},
		{
			Title:            "Community Hack Night",
			Description:      "An open evening of collaborative hacking on community projects. Bring a laptop and an idea; teams form on the spot and demo at the end of the night.",
			ShortDescription: "Open collaborative hacking evening",
			Date:             base.Add(14 * 24 * time.Hour),
			Time:             "18:30",
			Location:         "Innovation Hub, Downtown",
			FormURL:          "https://forms.google.com/hack-night",
			Category:         models.CategoryHackathon,
			Tags:             []string{"Open Source", "Networking"},
			IsActive:         true,
			CreatedByID:      admin.ID,
		},
	}

	created := 0
	for i := range events {
		var existing models.Event
		result := db.Where("title = ?", events[i].Title).First(&existing)
		if result.Error == nil {
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("event seed lookup failed",
				zap.String("title", events[i].Title), zap.Error(result.Error))
			return result.Error
		}
		if err := db.Create(&events[i]).Error; err != nil {
			configslog.Log.Error("event seed failed",
				zap.String("title", events[i].Title), zap.Error(err))
			return err
		}
		created++
	}

	if created > 0 {
		configslog.SLog.Infof("%d sample events seeded", created)
	} else {
		configslog.SLog.Info("all sample events already exist")
	}
	return nil
}
