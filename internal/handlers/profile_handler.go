package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/devconnect/devconnect-backend/internal/dto"
	"github.com/devconnect/devconnect-backend/internal/middleware"
	"github.com/devconnect/devconnect-backend/internal/models"
	"github.com/devconnect/devconnect-backend/internal/services"
	"github.com/devconnect/devconnect-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	githubService  *services.GithubService
}

func NewProfileHandler(profileService *services.ProfileService, githubService *services.GithubService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, githubService: githubService}
}

var profileMessages = validation.Messages{
	"Status":          "Status is required",
	"Skills.required": "Skills is required",
	"Skills":          "Skills should be an array of strings",
}

var experienceMessages = validation.Messages{
	"Title":   "Title is required",
	"Company": "Company is required",
	"From":    "From date is required",
}

var educationMessages = validation.Messages{
	"School":       "School is required",
	"Degree":       "Degree is required",
	"FieldOfStudy": "Field of study is required",
	"From":         "From date is required",
}

// Me returns the authenticated user's own profile.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errors("Token is not valid"))
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("There is no profile for this user"))
		}
		return h.serverError(c, "GET /api/profile/me", err)
	}

	return c.JSON(profile.ToView())
}

// Upsert creates the profile on first submission and fully overwrites its
// fields on every later one.
func (h *ProfileHandler) Upsert(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errors("Token is not valid"))
	}

	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("Invalid request body"))
	}

	if items := validation.Check(&req, profileMessages); items != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Errors: items})
	}

	profile, err := h.profileService.Upsert(c.Context(), userID, &req)
	if err != nil {
		return h.serverError(c, "POST /api/profile", err)
	}

	return c.JSON(profile.ToView())
}

// GetAll lists every profile with owner name and avatar.
func (h *ProfileHandler) GetAll(c *fiber.Ctx) error {
	profiles, err := h.profileService.GetAll(c.Context())
	if err != nil {
		return h.serverError(c, "GET /api/profile", err)
	}

	views := make([]models.ProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, profiles[i].ToView())
	}
	return c.JSON(views)
}

// GetByUserID returns any user's profile. A malformed id is indistinguishable
// from an unknown one.
func (h *ProfileHandler) GetByUserID(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("Profile not found."))
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("Profile not found."))
		}
		return h.serverError(c, "GET /api/profile/user/:user_id", err)
	}

	return c.JSON(profile.ToView())
}

// DeleteMe removes the profile and the account behind the token.
func (h *ProfileHandler) DeleteMe(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errors("Token is not valid"))
	}

	if err := h.profileService.DeleteAccount(c.Context(), userID); err != nil {
		return h.serverError(c, "DELETE /api/profile", err)
	}

	return c.JSON(dto.MessageResponse{Msg: "User deleted"})
}

// AddExperience prepends an entry to the experience sub-collection.
func (h *ProfileHandler) AddExperience(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errors("Token is not valid"))
	}

	var req dto.ExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("Invalid request body"))
	}

	if items := validation.Check(&req, experienceMessages); items != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Errors: items})
	}

	profile, err := h.profileService.AddExperience(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("Profile not found."))
		}
		return h.serverError(c, "PUT /api/profile/experience", err)
	}

	return c.JSON(profile.ToView())
}

// RemoveExperience deletes one experience entry by id.
func (h *ProfileHandler) RemoveExperience(c *fiber.Ctx) error {
	return h.removeEntry(c, "experience", h.profileService.RemoveExperience)
}

// AddEducation prepends an entry to the education sub-collection.
func (h *ProfileHandler) AddEducation(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errors("Token is not valid"))
	}

	var req dto.EducationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("Invalid request body"))
	}

	if items := validation.Check(&req, educationMessages); items != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Errors: items})
	}

	profile, err := h.profileService.AddEducation(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("Profile not found."))
		}
		return h.serverError(c, "PUT /api/profile/education", err)
	}

	return c.JSON(profile.ToView())
}

// RemoveEducation deletes one education entry by id.
func (h *ProfileHandler) RemoveEducation(c *fiber.Ctx) error {
	return h.removeEntry(c, "education", h.profileService.RemoveEducation)
}

func (h *ProfileHandler) removeEntry(
	c *fiber.Ctx,
	kind string,
	remove func(ctx context.Context, userID uuid.UUID, entryID string) (*models.Profile, error),
) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errors("Token is not valid"))
	}

	profile, err := remove(c.Context(), userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) || errors.Is(err, services.ErrEntryNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Errors("Profile not found."))
		}
		return h.serverError(c, "DELETE /api/profile/"+kind+"/:id", err)
	}

	return c.JSON(profile.ToView())
}

// GithubRepos passes through the user's latest GitHub repositories.
func (h *ProfileHandler) GithubRepos(c *fiber.Ctx) error {
	repos, err := h.githubService.Repos(c.Context(), c.Params("username"))
	if err != nil {
		if errors.Is(err, services.ErrGithubProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Errors("No Github profile found"))
		}
		return h.serverError(c, "GET /api/profile/github/:username", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(repos)
}

func (h *ProfileHandler) serverError(c *fiber.Ctx, route string, err error) error {
	slog.Error("profile request failed", "error", err, "route", route, "request_id", requestID(c))
	return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
