// Package responses implements the uniform JSON envelope every endpoint
// returns: {success, message?, data?, errors?}.
package responses

import "github.com/gofiber/fiber/v2"

// OK sends a 200 with data.
func OK(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// OKMessage sends a 200 with a message and optional data.
func OKMessage(c *fiber.Ctx, message string, data fiber.Map) error {
	body := fiber.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// Created sends a 201 with a message and data.
func Created(c *fiber.Ctx, message string, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Fail sends a failure envelope with the given status and message.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// ValidationFail sends a 400 with the per-field error list.
func ValidationFail(c *fiber.Ctx, errs []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Internal sends a generic 500; detail stays server-side.
func Internal(c *fiber.Ctx) error {
	return Fail(c, fiber.StatusInternalServerError, "Internal server error")
}

// FieldError is one validation failure in the errors array.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
