package handlers

import (
	"errors"
	"log/slog"

	"github.com/devconnect/devconnect-backend/internal/dto"
	"github.com/devconnect/devconnect-backend/internal/middleware"
	"github.com/devconnect/devconnect-backend/internal/services"
	"github.com/devconnect/devconnect-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

var loginMessages = validation.Messages{
	"Email":    "Please include a valid email",
	"Password": "Password is required",
}

// Login authenticates credentials and returns a signed token. Unknown email
// and wrong password produce the same response.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("Invalid request body"))
	}

	if items := validation.Check(&req, loginMessages); items != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Errors: items})
	}

	token, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errors(err.Error()))
		}
		slog.Error("login failed", "error", err, "route", "POST /api/auth")
		return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
	}

	return c.JSON(dto.TokenResponse{Token: token})
}

// Current returns the authenticated user, password omitted.
func (h *AuthHandler) Current(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errors("Token is not valid"))
	}

	user, err := h.authService.CurrentUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("User not found"))
		}
		slog.Error("current user lookup failed", "error", err, "route", "GET /api/auth", "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
	}

	return c.JSON(user)
}
