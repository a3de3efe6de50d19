package routes

import (
	"github.com/gofiber/fiber/v2"

	"devclub.community/handlers"
	"devclub.community/middlewares"
)

func registerCommunityRoutes(app *fiber.App, deps Deps) {
	h := handlers.NewCommunityHandler(deps.Community)

	group := app.Group("/api/community")
	group.Get("/links", h.Links)
	group.Put("/links", middlewares.RequireAuth(deps.Auth), middlewares.RequireAdmin(), h.UpdateLinks)
}
