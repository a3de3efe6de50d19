package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"devclub.community/configs/configslog"
	"devclub.community/pkg/responses"
	"devclub.community/pkg/validation"
	"devclub.community/repositories"
	"devclub.community/services"
)

// RSVPHandler serves the /api/rsvp endpoints.
type RSVPHandler struct {
	service services.IRSVPService
}

// NewRSVPHandler wires the handler.
func NewRSVPHandler(service services.IRSVPService) *RSVPHandler {
	return &RSVPHandler{service: service}
}

type createRSVPRequest struct {
	EventID   uint   `json:"eventId" validate:"required"`
	UserEmail string `json:"userEmail" validate:"required,email"`
	UserName  string `json:"userName" validate:"required,min=2,max=100"`
	Notes     string `json:"notes" validate:"max=500"`
}

type updateRSVPStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create serves POST /api/rsvp — the admission endpoint.
func (h *RSVPHandler) Create(c *fiber.Ctx) error {
	var req createRSVPRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	rsvp, err := h.service.Admit(c.UserContext(), services.AdmitInput{
		EventID:   req.EventID,
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRSVPEventNotFound):
			return responses.Fail(c, fiber.StatusNotFound, "Event not found")
		case errors.Is(err, services.ErrRSVPEventInPast),
			errors.Is(err, services.ErrRSVPDuplicate),
			errors.Is(err, services.ErrRSVPEventFull):
			return responses.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		configslog.Log.Error("rsvp create failed",
			zap.Uint("eventID", req.EventID), zap.Error(err))
		return responses.Internal(c)
	}
	return responses.Created(c, "RSVP created successfully", fiber.Map{"rsvp": rsvp})
}

// ListForUser serves GET /api/rsvp/user/:userEmail.
func (h *RSVPHandler) ListForUser(c *fiber.Ctx) error {
	email := c.Params("userEmail")
	opts := repositories.RSVPListOptions{
		Status:       c.Query("status"),
		UpcomingOnly: c.Query("upcoming") == "true",
	}
	rsvps, err := h.service.ListForUser(c.UserContext(), email, opts)
	if err != nil {
		configslog.Log.Error("rsvp list for user failed", zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OK(c, fiber.Map{"rsvps": rsvps})
}

// UpdateStatus serves PUT /api/rsvp/:id/status.
func (h *RSVPHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return responses.Fail(c, fiber.StatusNotFound, "RSVP not found")
	}
	var req updateRSVPStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	rsvp, err := h.service.SetStatus(c.UserContext(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRSVPInvalidStatus):
			return responses.Fail(c, fiber.StatusBadRequest, "Invalid status")
		case errors.Is(err, services.ErrRSVPNotFound):
			return responses.Fail(c, fiber.StatusNotFound, "RSVP not found")
		}
		configslog.Log.Error("rsvp status update failed", zap.Int("id", id), zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OKMessage(c, "RSVP status updated successfully", fiber.Map{"rsvp": rsvp})
}

// ListForEvent serves GET /api/rsvp/event/:eventId (admin) with per-status
// stats.
func (h *RSVPHandler) ListForEvent(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("eventId")
	if err != nil || eventID <= 0 {
		return responses.Fail(c, fiber.StatusNotFound, "Event not found")
	}
	report, err := h.service.ListForEvent(c.UserContext(), uint(eventID), c.Query("status"))
	if err != nil {
		if errors.Is(err, services.ErrRSVPInvalidStatus) {
			return responses.Fail(c, fiber.StatusBadRequest, "Invalid status")
		}
		configslog.Log.Error("rsvp list for event failed",
			zap.Int("eventID", eventID), zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OK(c, fiber.Map{
		"rsvps": report.RSVPs,
		"stats": report.Stats,
	})
}
