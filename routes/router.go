package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"

	"devclub.community/configs"
	"devclub.community/handlers"
	"devclub.community/pkg/responses"
	"devclub.community/services"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Config    *configs.AppConfig
	Auth      services.IAuthService
	Events    services.IEventService
	RSVPs     services.IRSVPService
	Community services.ICommunityService
	Mailer    services.IMailerService
}

// SetupRoutes registers global middleware and every route group.
func SetupRoutes(app *fiber.App, deps Deps) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: corsOriginAllowed(deps.Config),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	health := handlers.NewHealthHandler(deps.Config)
	app.Get("/", health.Welcome)
	app.Get("/api/health", health.Health)

	registerAuthRoutes(app, deps)
	registerEventRoutes(app, deps)
	registerRSVPRoutes(app, deps)
	registerCommunityRoutes(app, deps)
	registerEmailRoutes(app, deps)

	// Unmatched API paths get the envelope, not Fiber's default 404.
	app.Use("/api", func(c *fiber.Ctx) error {
		return responses.Fail(c, fiber.StatusNotFound, "API endpoint not found")
	})
}

// corsOriginAllowed admits configured origins, plus any localhost origin
// outside production.
func corsOriginAllowed(cfg *configs.AppConfig) func(origin string) bool {
	allowed := strings.Split(cfg.CORSOrigins, ",")
	return func(origin string) bool {
		if !cfg.IsProduction() &&
			(strings.HasPrefix(origin, "http://localhost:") ||
				strings.HasPrefix(origin, "http://127.0.0.1:")) {
			return true
		}
		for _, a := range allowed {
			if strings.TrimSpace(a) == origin {
				return true
			}
		}
		return false
	}
}
