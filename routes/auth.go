package routes

import (
	"github.com/gofiber/fiber/v2"

	"devclub.community/handlers"
	"devclub.community/middlewares"
)

func registerAuthRoutes(app *fiber.App, deps Deps) {
	h := handlers.NewAuthHandler(deps.Auth, deps.Mailer)

	group := app.Group("/api/auth")
	group.Post("/signup", h.Signup)
	group.Post("/login", h.Login)

	group.Get("/profile", middlewares.RequireAuth(deps.Auth), h.Profile)
	group.Put("/profile", middlewares.RequireAuth(deps.Auth), h.UpdateProfile)
}
