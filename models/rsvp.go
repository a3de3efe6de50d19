package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RSVPStatus is the reply state of a reservation.
type RSVPStatus string

const (
	RSVPStatusPending   RSVPStatus = "pending"
	RSVPStatusConfirmed RSVPStatus = "confirmed"
	RSVPStatusCancelled RSVPStatus = "cancelled"
)

// ValidRSVPStatus reports whether s names a known status.
func ValidRSVPStatus(s string) bool {
	switch RSVPStatus(s) {
	case RSVPStatusPending, RSVPStatusConfirmed, RSVPStatusCancelled:
		return true
	}
	return false
}

// RSVP is one attendee's reservation against one event. The compound unique
// index guarantees at most one RSVP per (event, email) pair regardless of
// status; the admission policy relies on the database enforcing it.
type RSVP struct {
	BaseModel
	EventID          uint       `gorm:"not null;index:idx_rsvps_event_email,unique" json:"eventId"`
	UserEmail        string     `gorm:"type:varchar(150);not null;index:idx_rsvps_event_email,unique" json:"userEmail"`
	UserName         string     `gorm:"type:varchar(100);not null" json:"userName"`
	Status           RSVPStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SubmittedAt      time.Time  `gorm:"index;not null" json:"submittedAt"`
	Notes            string     `gorm:"type:varchar(500)" json:"notes,omitempty"`
	ConfirmationCode string     `gorm:"type:varchar(36);uniqueIndex" json:"confirmationCode"`

	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"event,omitempty"`
}

// NormalizeEmail lower-cases and trims an address for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeCreate normalizes the email and assigns the confirmation code.
func (r *RSVP) BeforeCreate(tx *gorm.DB) error {
	r.UserEmail = NormalizeEmail(r.UserEmail)
	if r.ConfirmationCode == "" {
		r.ConfirmationCode = uuid.NewString()
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now().UTC()
	}
	return nil
}
