package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"devclub.community/configs/configslog"
	"devclub.community/middlewares"
	"devclub.community/models"
	"devclub.community/pkg/queryparams"
	"devclub.community/pkg/responses"
	"devclub.community/pkg/validation"
	"devclub.community/repositories"
	"devclub.community/services"
)

// EventHandler serves the /api/event endpoints.
type EventHandler struct {
	service services.IEventService
}

// NewEventHandler wires the handler.
func NewEventHandler(service services.IEventService) *EventHandler {
	return &EventHandler{service: service}
}

type eventImageRequest struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt" validate:"max=200"`
}

type createEventRequest struct {
	Title            string              `json:"title" validate:"required,min=5,max=200"`
	Description      string              `json:"description" validate:"required,min=20,max=2000"`
	ShortDescription string              `json:"shortDescription" validate:"max=300"`
	Date             time.Time           `json:"date" validate:"required"`
	Time             string              `json:"time" validate:"required,max=50"`
	Location         string              `json:"location" validate:"required,min=3,max=200"`
	FormURL          string              `json:"formUrl" validate:"required,url"`
	Category         string              `json:"category" validate:"required,oneof=Workshop Bootcamp Conference Meetup Hackathon Webinar"`
	MaxAttendees     *int                `json:"maxAttendees" validate:"omitempty,gte=1"`
	Tags             []string            `json:"tags"`
	SpeakerName      string              `json:"speakerName" validate:"max=100"`
	SpeakerTitle     string              `json:"speakerTitle" validate:"max=150"`
	SpeakerAvatar    string              `json:"speakerAvatar" validate:"omitempty,url"`
	SpeakerBio       string              `json:"speakerBio" validate:"max=2000"`
	IsFeatured       bool                `json:"isFeatured"`
	Images           []eventImageRequest `json:"images" validate:"dive"`
}

type updateEventRequest struct {
	Title            string              `json:"title" validate:"omitempty,min=5,max=200"`
	Description      string              `json:"description" validate:"omitempty,min=20,max=2000"`
	ShortDescription string              `json:"shortDescription" validate:"max=300"`
	Date             time.Time           `json:"date"`
	Time             string              `json:"time" validate:"max=50"`
	Location         string              `json:"location" validate:"omitempty,min=3,max=200"`
	FormURL          string              `json:"formUrl" validate:"omitempty,url"`
	Category         string              `json:"category" validate:"omitempty,oneof=Workshop Bootcamp Conference Meetup Hackathon Webinar"`
	MaxAttendees     *int                `json:"maxAttendees" validate:"omitempty,gte=1"`
	Tags             []string            `json:"tags"`
	SpeakerName      string              `json:"speakerName" validate:"max=100"`
	SpeakerTitle     string              `json:"speakerTitle" validate:"max=150"`
	SpeakerAvatar    string              `json:"speakerAvatar" validate:"omitempty,url"`
	SpeakerBio       string              `json:"speakerBio" validate:"max=2000"`
	IsFeatured       *bool               `json:"isFeatured"`
	Images           []eventImageRequest `json:"images" validate:"dive"`
}

func (r createEventRequest) toInput() services.EventInput {
	images := make([]models.EventImage, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, models.EventImage{URL: img.URL, Alt: img.Alt})
	}
	return services.EventInput{
		Title:            r.Title,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Date:             r.Date,
		Time:             r.Time,
		Location:         r.Location,
		FormURL:          r.FormURL,
		Category:         r.Category,
		MaxAttendees:     r.MaxAttendees,
		Tags:             r.Tags,
		SpeakerName:      r.SpeakerName,
		SpeakerTitle:     r.SpeakerTitle,
		SpeakerAvatar:    r.SpeakerAvatar,
		SpeakerBio:       r.SpeakerBio,
		IsFeatured:       &r.IsFeatured,
		Images:           images,
	}
}

// List serves GET /api/event with category/upcoming/featured filters and
// pagination.
func (h *EventHandler) List(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams()
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams()
	}
	params.Validate()

	filter := repositories.EventFilter{
		Category: c.Query("category"),
		Upcoming: c.Query("upcoming") == "true",
		Featured: c.Query("featured") == "true",
	}

	events, meta, err := h.service.ListEvents(c.UserContext(), filter, params)
	if err != nil {
		configslog.Log.Error("event list failed", zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OK(c, fiber.Map{
		"events":     events,
		"pagination": meta,
	})
}

// Get serves GET /api/event/:id.
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return responses.Fail(c, fiber.StatusNotFound, "Event not found")
	}
	event, err := h.service.GetEventByID(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return responses.Fail(c, fiber.StatusNotFound, "Event not found")
		}
		configslog.Log.Error("event get failed", zap.Int("id", id), zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OK(c, fiber.Map{"event": event})
}

// Create serves POST /api/event (admin).
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req createEventRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	event, err := h.service.CreateEvent(c.UserContext(), middlewares.UserID(c), req.toInput())
	if err != nil {
		var svcErr services.EventServiceError
		if errors.As(err, &svcErr) {
			return responses.Fail(c, fiber.StatusBadRequest, svcErr.Error())
		}
		configslog.Log.Error("event create failed", zap.Error(err))
		return responses.Internal(c)
	}
	return responses.Created(c, "Event created successfully", fiber.Map{"event": event})
}

// Update serves PUT /api/event/:id (admin).
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return responses.Fail(c, fiber.StatusNotFound, "Event not found")
	}
	var req updateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	var images []models.EventImage
	if req.Images != nil {
		images = make([]models.EventImage, 0, len(req.Images))
		for _, img := range req.Images {
			images = append(images, models.EventImage{URL: img.URL, Alt: img.Alt})
		}
	}

	event, err := h.service.UpdateEvent(c.UserContext(), uint(id), services.EventInput{
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Date:             req.Date,
		Time:             req.Time,
		Location:         req.Location,
		FormURL:          req.FormURL,
		Category:         req.Category,
		MaxAttendees:     req.MaxAttendees,
		Tags:             req.Tags,
		SpeakerName:      req.SpeakerName,
		SpeakerTitle:     req.SpeakerTitle,
		SpeakerAvatar:    req.SpeakerAvatar,
		SpeakerBio:       req.SpeakerBio,
		IsFeatured:       req.IsFeatured,
		Images:           images,
	})
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return responses.Fail(c, fiber.StatusNotFound, "Event not found")
		}
		var svcErr services.EventServiceError
		if errors.As(err, &svcErr) {
			return responses.Fail(c, fiber.StatusBadRequest, svcErr.Error())
		}
		configslog.Log.Error("event update failed", zap.Int("id", id), zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OKMessage(c, "Event updated successfully", fiber.Map{"event": event})
}

// Delete serves DELETE /api/event/:id (admin). Soft delete: the event stays
// in storage with is_active=false.
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return responses.Fail(c, fiber.StatusNotFound, "Event not found")
	}
	if err := h.service.DeleteEvent(c.UserContext(), uint(id)); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return responses.Fail(c, fiber.StatusNotFound, "Event not found")
		}
		configslog.Log.Error("event delete failed", zap.Int("id", id), zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OKMessage(c, "Event deleted successfully", nil)
}

// Categories serves GET /api/event/categories.
func (h *EventHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories(c.UserContext())
	if err != nil {
		configslog.Log.Error("event categories failed", zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OK(c, fiber.Map{"categories": categories})
}
