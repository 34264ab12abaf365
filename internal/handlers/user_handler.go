package handlers

import (
	"errors"
	"log/slog"

	"github.com/devconnect/devconnect-backend/internal/dto"
	"github.com/devconnect/devconnect-backend/internal/services"
	"github.com/devconnect/devconnect-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

var registerMessages = validation.Messages{
	"Name":     "Name is required",
	"Email":    "Please include a valid email",
	"Password": "Please enter a password with 6 or more characters",
}

// Register creates an account and returns a signed token.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("Invalid request body"))
	}

	if items := validation.Check(&req, registerMessages); items != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Errors: items})
	}

	token, err := h.authService.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errors(err.Error()))
		}
		slog.Error("registration failed", "error", err, "route", "POST /api/users")
		return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TokenResponse{Token: token})
}
