package routes

import (
	"time"

	"github.com/devconnect/devconnect-backend/internal/config"
	"github.com/devconnect/devconnect-backend/internal/handlers"
	"github.com/devconnect/devconnect-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	userHandler *handlers.UserHandler,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Credential endpoints get a stricter limit: 10 req/min per IP
	credLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	// Registration and login — public
	api.Post("/users", credLimiter, userHandler.Register)
	api.Post("/auth", credLimiter, authHandler.Login)
	api.Get("/auth", middleware.Protected(cfg), authHandler.Current)

	profile := api.Group("/profile")

	// Public profile reads
	profile.Get("/github/:username", profileHandler.GithubRepos)
	profile.Get("/user/:user_id", profileHandler.GetByUserID)

	// Own-profile operations — protected
	profile.Get("/me", middleware.Protected(cfg), profileHandler.Me)
	profile.Post("/", middleware.Protected(cfg), profileHandler.Upsert)
	profile.Delete("/", middleware.Protected(cfg), profileHandler.DeleteMe)
	profile.Put("/experience", middleware.Protected(cfg), profileHandler.AddExperience)
	profile.Delete("/experience/:id", middleware.Protected(cfg), profileHandler.RemoveExperience)
	profile.Put("/education", middleware.Protected(cfg), profileHandler.AddEducation)
	profile.Delete("/education/:id", middleware.Protected(cfg), profileHandler.RemoveEducation)

	// Registered last so it does not shadow the named routes above
	profile.Get("/", profileHandler.GetAll)
}
