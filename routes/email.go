package routes

import (
	"github.com/gofiber/fiber/v2"

	"devclub.community/handlers"
)

func registerEmailRoutes(app *fiber.App, deps Deps) {
	h := handlers.NewEmailHandler(deps.Mailer)

	group := app.Group("/api/email")
	group.Post("/subscribe", h.Subscribe)
	group.Post("/brevo-contact", h.BrevoContact)
	group.Post("/send-welcome", h.SendWelcome)
	group.Post("/contact", h.Contact)
}
