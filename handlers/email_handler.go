package handlers

import (
	"github.com/gofiber/fiber/v2"

	"devclub.community/pkg/responses"
	"devclub.community/pkg/validation"
	"devclub.community/services"
)

// EmailHandler serves the /api/email relay endpoints. These are
// collaborator calls, not core writes: a provider failure is reported to
// the caller and nothing else.
type EmailHandler struct {
	mailer services.IMailerService
}

// NewEmailHandler wires the handler.
func NewEmailHandler(mailer services.IMailerService) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

type subscribeRequest struct {
	Subscriber struct {
		Email     string   `json:"email" validate:"required,email"`
		FirstName string   `json:"firstName" validate:"max=100"`
		LastName  string   `json:"lastName" validate:"max=100"`
		Tags      []string `json:"tags"`
	} `json:"subscriber" validate:"required"`
}

type brevoContactRequest struct {
	Contact struct {
		Email      string            `json:"email" validate:"required,email"`
		Attributes map[string]string `json:"attributes"`
	} `json:"contact" validate:"required"`
}

type welcomeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=100"`
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Subscribe serves POST /api/email/subscribe.
func (h *EmailHandler) Subscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	err := h.mailer.SubscribeNewsletter(services.Subscriber{
		Email:     req.Subscriber.Email,
		FirstName: req.Subscriber.FirstName,
		LastName:  req.Subscriber.LastName,
		Tags:      req.Subscriber.Tags,
	})
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	return responses.OKMessage(c, "Subscribed to newsletter successfully", nil)
}

// BrevoContact serves POST /api/email/brevo-contact.
func (h *EmailHandler) BrevoContact(c *fiber.Ctx) error {
	var req brevoContactRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	if err := h.mailer.UpsertBrevoContact(req.Contact.Email, req.Contact.Attributes); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	return responses.OKMessage(c, "Contact added successfully", nil)
}

// SendWelcome serves POST /api/email/send-welcome.
func (h *EmailHandler) SendWelcome(c *fiber.Ctx) error {
	var req welcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	if err := h.mailer.SendWelcomeEmail(req.Email, req.Name); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	return responses.OKMessage(c, "Welcome email sent successfully", nil)
}

// Contact serves POST /api/email/contact.
func (h *EmailHandler) Contact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	err := h.mailer.RelayContactMessage(services.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	return responses.OKMessage(c, "Message sent successfully", nil)
}
