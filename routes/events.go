package routes

import (
	"github.com/gofiber/fiber/v2"

	"devclub.community/handlers"
	"devclub.community/middlewares"
)

func registerEventRoutes(app *fiber.App, deps Deps) {
	h := handlers.NewEventHandler(deps.Events)
	auth := middlewares.RequireAuth(deps.Auth)
	admin := middlewares.RequireAdmin()

	group := app.Group("/api/event")
	group.Get("/", h.List)
	group.Get("/categories", h.Categories)
	group.Get("/:id", h.Get)

	group.Post("/", auth, admin, h.Create)
	group.Put("/:id", auth, admin, h.Update)
	group.Delete("/:id", auth, admin, h.Delete)
}
