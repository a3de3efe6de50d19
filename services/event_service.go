package services

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"devclub.community/models"
	"devclub.community/pkg/queryparams"
	"devclub.community/repositories"
)

// EventServiceError is a typed service-level error.
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound        EventServiceError = "event not found"
	ErrEventTitleRequired   EventServiceError = "event title is required"
	ErrEventDateRequired    EventServiceError = "event date is required"
	ErrEventDateInPast      EventServiceError = "event date must be in the future"
	ErrEventInvalidCategory EventServiceError = "invalid event category"
	ErrEventInvalidCapacity EventServiceError = "max attendees must be at least 1"
	ErrEventInvalidInput    EventServiceError = "invalid event data"
)

// EventInput carries the writable fields of an event. Pointer fields
// distinguish "not provided" from zero values on partial updates.
type EventInput struct {
	Title            string
	Description      string
	ShortDescription string
	Date             time.Time
	Time             string
	Location         string
	FormURL          string
	Category         string
	MaxAttendees     *int
	Tags             []string
	SpeakerName      string
	SpeakerTitle     string
	SpeakerAvatar    string
	SpeakerBio       string
	IsFeatured       *bool
	Images           []models.EventImage
}

// EventWithMeta decorates an event with its read-time derived fields.
type EventWithMeta struct {
	models.Event
	IsUpcoming       bool  `json:"isUpcoming"`
	CurrentAttendees int64 `json:"currentAttendees"`
}

// IEventService covers the event lifecycle.
type IEventService interface {
	CreateEvent(ctx context.Context, creatorID uint, input EventInput) (*models.Event, error)
	GetEventByID(ctx context.Context, id uint) (*EventWithMeta, error)
	ListEvents(ctx context.Context, filter repositories.EventFilter, params queryparams.ListParams) ([]EventWithMeta, queryparams.PaginationMeta, error)
	UpdateEvent(ctx context.Context, id uint, input EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	GetCategories(ctx context.Context) ([]string, error)
}

// EventService implements IEventService.
type EventService struct {
	repo     repositories.IEventRepository
	rsvpRepo repositories.IRSVPRepository
	now      func() time.Time
}

// NewEventService wires the service on the shared connection.
func NewEventService() IEventService {
	return &EventService{
		repo:     repositories.NewEventRepository(),
		rsvpRepo: repositories.NewRSVPRepository(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NewEventServiceDB wires the service on an explicit handle; used by tests.
func NewEventServiceDB(db *gorm.DB) *EventService {
	return &EventService{
		repo:     repositories.NewEventRepositoryDB(db),
		rsvpRepo: repositories.NewRSVPRepositoryDB(db),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *EventService) validate(input EventInput, now time.Time) error {
	if input.Title == "" {
		return ErrEventTitleRequired
	}
	if input.Description == "" || input.Time == "" || input.Location == "" || input.FormURL == "" {
		return ErrEventInvalidInput
	}
	if input.Date.IsZero() {
		return ErrEventDateRequired
	}
	if !input.Date.After(now) {
		return ErrEventDateInPast
	}
	if !models.ValidCategory(input.Category) {
		return ErrEventInvalidCategory
	}
	if input.MaxAttendees != nil && *input.MaxAttendees < 1 {
		return ErrEventInvalidCapacity
	}
	return nil
}

// CreateEvent validates and persists a new active event.
func (s *EventService) CreateEvent(ctx context.Context, creatorID uint, input EventInput) (*models.Event, error) {
	if err := s.validate(input, s.now()); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:            input.Title,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Date:             input.Date.UTC(),
		Time:             input.Time,
		Location:         input.Location,
		FormURL:          input.FormURL,
		Category:         models.EventCategory(input.Category),
		MaxAttendees:     input.MaxAttendees,
		Tags:             input.Tags,
		SpeakerName:      input.SpeakerName,
		SpeakerTitle:     input.SpeakerTitle,
		SpeakerAvatar:    input.SpeakerAvatar,
		SpeakerBio:       input.SpeakerBio,
		IsActive:         true,
		IsFeatured:       input.IsFeatured != nil && *input.IsFeatured,
		CreatedByID:      creatorID,
		Images:           input.Images,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEventByID returns an active event with its live attendee count.
func (s *EventService) GetEventByID(ctx context.Context, id uint) (*EventWithMeta, error) {
	event, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	count, err := s.rsvpRepo.CountActiveForEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EventWithMeta{
		Event:            *event,
		IsUpcoming:       event.IsUpcoming(s.now()),
		CurrentAttendees: count,
	}, nil
}

// ListEvents returns a filtered page of active events.
func (s *EventService) ListEvents(ctx context.Context, filter repositories.EventFilter, params queryparams.ListParams) ([]EventWithMeta, queryparams.PaginationMeta, error) {
	params.Validate()
	now := s.now()
	filter.Now = now

	events, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, queryparams.PaginationMeta{}, err
	}

	decorated := make([]EventWithMeta, 0, len(events))
	for _, e := range events {
		decorated = append(decorated, EventWithMeta{
			Event:      e,
			IsUpcoming: e.IsUpcoming(now),
		})
	}
	return decorated, queryparams.NewMeta(params, total), nil
}

// UpdateEvent applies a partial update to an active event. Soft-deleted
// events read as not found; there is no reactivation path.
func (s *EventService) UpdateEvent(ctx context.Context, id uint, input EventInput) (*models.Event, error) {
	data := map[string]interface{}{}
	if input.Title != "" {
		data["title"] = input.Title
	}
	if input.Description != "" {
		data["description"] = input.Description
	}
	if input.ShortDescription != "" {
		data["short_description"] = input.ShortDescription
	}
	if !input.Date.IsZero() {
		if !input.Date.After(s.now()) {
			return nil, ErrEventDateInPast
		}
		data["date"] = input.Date.UTC()
	}
	if input.Time != "" {
		data["time"] = input.Time
	}
	if input.Location != "" {
		data["location"] = input.Location
	}
	if input.FormURL != "" {
		data["form_url"] = input.FormURL
	}
	if input.Category != "" {
		if !models.ValidCategory(input.Category) {
			return nil, ErrEventInvalidCategory
		}
		data["category"] = input.Category
	}
	if input.MaxAttendees != nil {
		if *input.MaxAttendees < 1 {
			return nil, ErrEventInvalidCapacity
		}
		data["max_attendees"] = *input.MaxAttendees
	}
	if input.Tags != nil {
		data["tags"] = pq.StringArray(input.Tags)
	}
	if input.SpeakerName != "" {
		data["speaker_name"] = input.SpeakerName
	}
	if input.SpeakerTitle != "" {
		data["speaker_title"] = input.SpeakerTitle
	}
	if input.SpeakerAvatar != "" {
		data["speaker_avatar"] = input.SpeakerAvatar
	}
	if input.SpeakerBio != "" {
		data["speaker_bio"] = input.SpeakerBio
	}
	if input.IsFeatured != nil {
		data["is_featured"] = *input.IsFeatured
	}

	if len(data) > 0 {
		if err := s.repo.Update(ctx, id, data); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrEventNotFound
			}
			return nil, err
		}
	}
	if input.Images != nil {
		if err := s.repo.ReplaceImages(ctx, id, input.Images); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrEventNotFound
			}
			return nil, err
		}
	}
	event, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// DeleteEvent soft-deletes the event. Deleting an already-inactive event
// reports not found, same as any other operation on it.
func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

// GetCategories lists the categories in use by active events.
func (s *EventService) GetCategories(ctx context.Context) ([]string, error) {
	return s.repo.DistinctCategories(ctx)
}
