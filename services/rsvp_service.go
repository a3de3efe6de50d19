package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"devclub.community/configs"
	"devclub.community/models"
	"devclub.community/pkg/keymutex"
	"devclub.community/repositories"
)

// RSVPServiceError is a typed service-level error.
type RSVPServiceError string

func (e RSVPServiceError) Error() string { return string(e) }

const (
	ErrRSVPEventNotFound RSVPServiceError = "event not found"
	ErrRSVPEventInPast   RSVPServiceError = "cannot RSVP to past event"
	ErrRSVPDuplicate     RSVPServiceError = "you have already RSVPed to this event"
	ErrRSVPEventFull     RSVPServiceError = "event is full"
	ErrRSVPNotFound      RSVPServiceError = "RSVP not found"
	ErrRSVPInvalidStatus RSVPServiceError = "invalid status"
)

// AdmitInput is one admission request.
type AdmitInput struct {
	EventID   uint
	UserEmail string
	UserName  string
	Notes     string
}

// EventRSVPReport bundles an event's reservations with per-status counts.
type EventRSVPReport struct {
	RSVPs []models.RSVP               `json:"rsvps"`
	Stats map[models.RSVPStatus]int64 `json:"stats"`
}

// IRSVPService covers admission, status transitions, and reservation queries.
type IRSVPService interface {
	Admit(ctx context.Context, input AdmitInput) (*models.RSVP, error)
	SetStatus(ctx context.Context, id uint, status string) (*models.RSVP, error)
	ListForUser(ctx context.Context, email string, opts repositories.RSVPListOptions) ([]models.RSVP, error)
	ListForEvent(ctx context.Context, eventID uint, status string) (*EventRSVPReport, error)
}

// RSVPService implements the admission policy.
//
// The capacity check (count, compare, insert) is not atomic on its own, so
// two requests racing for the last slot could both pass it. Three layers
// close the race:
//   - a per-event mutex serializes check-and-insert in this process,
//   - the admission transaction locks the event row (FOR UPDATE on Postgres),
//   - the (event_id, user_email) unique index rejects same-attendee races at
//     write time; the constraint hit is reported as a duplicate RSVP.
type RSVPService struct {
	db         *gorm.DB
	eventLocks *keymutex.KeyMutex
	now        func() time.Time
}

// NewRSVPService wires the service on the shared connection.
func NewRSVPService() IRSVPService {
	return NewRSVPServiceDB(configs.GetDB())
}

// NewRSVPServiceDB wires the service on an explicit handle; used by tests.
func NewRSVPServiceDB(db *gorm.DB) *RSVPService {
	return &RSVPService{
		db:         db,
		eventLocks: keymutex.New(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Admit decides whether a new reservation may be created. Checks run in
// order and the first failure wins: active event exists, event is in the
// future, no reservation for the (event, email) pair in any status, and the
// event has capacity left (cancelled reservations do not hold a slot).
// Success writes exactly one reservation; every failure writes nothing.
func (s *RSVPService) Admit(ctx context.Context, input AdmitInput) (*models.RSVP, error) {
	if input.EventID == 0 || input.UserEmail == "" {
		return nil, ErrRSVPEventNotFound
	}
	email := models.NormalizeEmail(input.UserEmail)

	s.eventLocks.Lock(input.EventID)
	defer s.eventLocks.Unlock(input.EventID)

	var created *models.RSVP
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eventRepo := repositories.NewEventRepositoryTx(tx)
		rsvpRepo := repositories.NewRSVPRepositoryTx(tx)

		event, err := eventRepo.FindActiveByIDForUpdate(ctx, input.EventID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrRSVPEventNotFound
			}
			return err
		}

		if !event.Date.After(s.now()) {
			return ErrRSVPEventInPast
		}

		exists, err := rsvpRepo.ExistsForEventAndEmail(ctx, event.ID, email)
		if err != nil {
			return err
		}
		if exists {
			return ErrRSVPDuplicate
		}

		if event.MaxAttendees != nil {
			count, err := rsvpRepo.CountActiveForEvent(ctx, event.ID)
			if err != nil {
				return err
			}
			if count >= int64(*event.MaxAttendees) {
				return ErrRSVPEventFull
			}
		}

		rsvp := &models.RSVP{
			EventID:     event.ID,
			UserEmail:   email,
			UserName:    input.UserName,
			Status:      models.RSVPStatusPending,
			SubmittedAt: s.now(),
			Notes:       input.Notes,
		}
		if err := rsvpRepo.Create(ctx, rsvp); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return ErrRSVPDuplicate
			}
			return err
		}
		created = rsvp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SetStatus writes a new status on an existing reservation. Any transition
// between pending, confirmed and cancelled is allowed, no-ops included;
// cancelling frees the slot for the next admission.
func (s *RSVPService) SetStatus(ctx context.Context, id uint, status string) (*models.RSVP, error) {
	if !models.ValidRSVPStatus(status) {
		return nil, ErrRSVPInvalidStatus
	}
	repo := repositories.NewRSVPRepositoryDB(s.db)
	if err := repo.UpdateStatus(ctx, id, models.RSVPStatus(status)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRSVPNotFound
		}
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

// ListForUser returns a member's reservations to active events.
func (s *RSVPService) ListForUser(ctx context.Context, email string, opts repositories.RSVPListOptions) ([]models.RSVP, error) {
	repo := repositories.NewRSVPRepositoryDB(s.db)
	return repo.ListByUserEmail(ctx, models.NormalizeEmail(email), opts)
}

// ListForEvent returns an event's reservations plus per-status counts.
func (s *RSVPService) ListForEvent(ctx context.Context, eventID uint, status string) (*EventRSVPReport, error) {
	if status != "" && !models.ValidRSVPStatus(status) {
		return nil, ErrRSVPInvalidStatus
	}
	repo := repositories.NewRSVPRepositoryDB(s.db)
	rsvps, err := repo.ListByEventID(ctx, eventID, status)
	if err != nil {
		return nil, err
	}
	stats, err := repo.CountByStatusForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &EventRSVPReport{RSVPs: rsvps, Stats: stats}, nil
}

var _ IRSVPService = (*RSVPService)(nil)
