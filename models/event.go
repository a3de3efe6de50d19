package models

import (
	"time"

	"github.com/lib/pq"
)

// EventCategory is the fixed set of event kinds the club runs.
type EventCategory string

const (
	CategoryWorkshop   EventCategory = "Workshop"
	CategoryBootcamp   EventCategory = "Bootcamp"
	CategoryConference EventCategory = "Conference"
	CategoryMeetup     EventCategory = "Meetup"
	CategoryHackathon  EventCategory = "Hackathon"
	CategoryWebinar    EventCategory = "Webinar"
)

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	switch EventCategory(s) {
	case CategoryWorkshop, CategoryBootcamp, CategoryConference,
		CategoryMeetup, CategoryHackathon, CategoryWebinar:
		return true
	}
	return false
}

// Event is a scheduled community gathering. Events are never physically
// removed; deletion flips IsActive and every read path filters on it.
type Event struct {
	BaseModel
	Title            string         `gorm:"type:varchar(200);not null" json:"title"`
	Description      string         `gorm:"type:text;not null" json:"description"`
	ShortDescription string         `gorm:"type:varchar(300)" json:"shortDescription,omitempty"`
	Date             time.Time      `gorm:"index;not null" json:"date"`
	Time             string         `gorm:"type:varchar(50);not null" json:"time"`
	Location         string         `gorm:"type:varchar(200);not null" json:"location"`
	FormURL          string         `gorm:"type:varchar(500);not null" json:"formUrl"`
	Category         EventCategory  `gorm:"type:varchar(20);index:idx_events_category_active;not null" json:"category"`
	MaxAttendees     *int           `gorm:"type:integer" json:"maxAttendees,omitempty"` // nil = unlimited
	Tags             pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	SpeakerName      string         `gorm:"type:varchar(100)" json:"speakerName,omitempty"`
	SpeakerTitle     string         `gorm:"type:varchar(150)" json:"speakerTitle,omitempty"`
	SpeakerAvatar    string         `gorm:"type:varchar(500)" json:"speakerAvatar,omitempty"`
	SpeakerBio       string         `gorm:"type:text" json:"speakerBio,omitempty"`
	IsActive         bool           `gorm:"default:true;index:idx_events_category_active;index" json:"isActive"`
	IsFeatured       bool           `gorm:"default:false;index" json:"isFeatured"`
	CreatedByID      uint           `gorm:"index;not null" json:"createdById"`

	CreatedBy User         `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"createdBy,omitempty"`
	Images    []EventImage `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
	RSVPs     []RSVP       `gorm:"foreignKey:EventID" json:"-"`
}

// EventImage is one gallery image attached to an event.
type EventImage struct {
	BaseModel
	EventID uint   `gorm:"index;not null" json:"eventId"`
	URL     string `gorm:"type:varchar(500);not null" json:"url"`
	Alt     string `gorm:"type:varchar(200)" json:"alt"`
}

// IsUpcoming reports whether the event is strictly in the future.
// Computed at read time, never stored.
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.Date.After(now)
}
