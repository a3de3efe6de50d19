package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"devclub.community/models"
	"devclub.community/pkg/responses"
	"devclub.community/services"
)

// Locals keys set by RequireAuth.
const (
	LocalUserID = "userID"
	LocalRole   = "userRole"
)

// RequireAuth validates the bearer token and stores the caller's identity
// in locals.
func RequireAuth(auth services.IAuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return responses.Fail(c, fiber.StatusUnauthorized, "Authentication required")
		}
		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return responses.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireAdmin allows only organizers through. Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role != string(models.RoleAdmin) {
			return responses.Fail(c, fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

// UserID reads the authenticated user id from locals.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}
