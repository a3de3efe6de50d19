package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"devclub.community/pkg/responses"
	"devclub.community/services"
)

// CommunityHandler serves the /api/community endpoints.
type CommunityHandler struct {
	service services.ICommunityService
}

// NewCommunityHandler wires the handler.
func NewCommunityHandler(service services.ICommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

type updateLinksRequest struct {
	WhatsApp  string `json:"whatsapp"`
	Discord   string `json:"discord"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	Email     string `json:"email"`
}

// Links serves GET /api/community/links.
func (h *CommunityHandler) Links(c *fiber.Ctx) error {
	links := h.service.Links()
	return responses.OK(c, fiber.Map{"links": fiber.Map{
		"whatsapp":  links.WhatsApp,
		"discord":   links.Discord,
		"instagram": links.Instagram,
		"linkedin":  links.LinkedIn,
		"email":     links.Email,
	}})
}

// UpdateLinks serves PUT /api/community/links (admin). Updates replace the
// in-process snapshot only.
func (h *CommunityHandler) UpdateLinks(c *fiber.Ctx) error {
	var req updateLinksRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	links, err := h.service.UpdateLinks(services.LinksUpdate{
		WhatsApp:  req.WhatsApp,
		Discord:   req.Discord,
		Instagram: req.Instagram,
		LinkedIn:  req.LinkedIn,
		Email:     req.Email,
	})
	if err != nil {
		var svcErr services.CommunityServiceError
		if errors.As(err, &svcErr) {
			return responses.Fail(c, fiber.StatusBadRequest, svcErr.Error())
		}
		return responses.Internal(c)
	}
	return responses.OKMessage(c, "Community links updated successfully", fiber.Map{"links": fiber.Map{
		"whatsapp":  links.WhatsApp,
		"discord":   links.Discord,
		"instagram": links.Instagram,
		"linkedin":  links.LinkedIn,
		"email":     links.Email,
	}})
}
