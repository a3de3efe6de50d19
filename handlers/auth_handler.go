package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"devclub.community/configs/configslog"
	"devclub.community/middlewares"
	"devclub.community/pkg/responses"
	"devclub.community/pkg/validation"
	"devclub.community/services"
)

// AuthHandler serves the /api/auth endpoints.
type AuthHandler struct {
	service services.IAuthService
	mailer  services.IMailerService
}

// NewAuthHandler wires the handler.
func NewAuthHandler(service services.IAuthService, mailer services.IMailerService) *AuthHandler {
	return &AuthHandler{service: service, mailer: mailer}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name     string   `json:"name" validate:"omitempty,min=2,max=100"`
	Avatar   string   `json:"avatar" validate:"omitempty,url"`
	Bio      string   `json:"bio" validate:"max=2000"`
	Skills   []string `json:"skills"`
	GitHub   string   `json:"github" validate:"omitempty,url"`
	LinkedIn string   `json:"linkedin" validate:"omitempty,url"`
	Website  string   `json:"website" validate:"omitempty,url"`
}

// Signup serves POST /api/auth/signup. The welcome email is fired off in
// the background; its outcome never affects the signup itself.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	user, token, err := h.service.Signup(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return responses.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		configslog.Log.Error("signup failed", zap.Error(err))
		return responses.Internal(c)
	}

	go func(email, name string) {
		if err := h.mailer.SendWelcomeEmail(email, name); err != nil {
			configslog.Log.Warn("welcome email not sent",
				zap.String("email", email), zap.Error(err))
		}
	}(user.Email, user.Name)

	return responses.Created(c, "Account created successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login serves POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	user, token, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return responses.Fail(c, fiber.StatusUnauthorized, err.Error())
		}
		configslog.Log.Error("login failed", zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OKMessage(c, "Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Profile serves GET /api/auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(c.UserContext(), middlewares.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return responses.Fail(c, fiber.StatusNotFound, err.Error())
		}
		configslog.Log.Error("profile get failed", zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OK(c, fiber.Map{"user": user})
}

// UpdateProfile serves PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req); errs != nil {
		return responses.ValidationFail(c, errs)
	}

	user, err := h.service.UpdateProfile(c.UserContext(), middlewares.UserID(c), services.ProfileInput{
		Name:     req.Name,
		Avatar:   req.Avatar,
		Bio:      req.Bio,
		Skills:   req.Skills,
		GitHub:   req.GitHub,
		LinkedIn: req.LinkedIn,
		Website:  req.Website,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return responses.Fail(c, fiber.StatusNotFound, err.Error())
		}
		configslog.Log.Error("profile update failed", zap.Error(err))
		return responses.Internal(c)
	}
	return responses.OKMessage(c, "Profile updated successfully", fiber.Map{"user": user})
}
