package routes

import (
	"github.com/gofiber/fiber/v2"

	"devclub.community/handlers"
	"devclub.community/middlewares"
)

func registerRSVPRoutes(app *fiber.App, deps Deps) {
	h := handlers.NewRSVPHandler(deps.RSVPs)
	auth := middlewares.RequireAuth(deps.Auth)
	admin := middlewares.RequireAdmin()

	group := app.Group("/api/rsvp")
	group.Post("/", h.Create)
	group.Get("/user/:userEmail", h.ListForUser)
	group.Put("/:id/status", auth, h.UpdateStatus)
	group.Get("/event/:eventId", auth, admin, h.ListForEvent)
}
