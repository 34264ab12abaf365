package middleware

import (
	"errors"

	"github.com/devconnect/devconnect-backend/internal/config"
	"github.com/devconnect/devconnect-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Protected rejects any request without a valid token in the x-auth-token
// header. There is no anonymous mode: a missing token and a bad token both
// short-circuit with 401 before a handler runs.
//
// jwtware checks signature and expiry against the same HS256 secret as
// services.TokenService.Verify; the two paths must stay accept-equivalent.
// Claim shape is checked by UserID below, mirroring Verify.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "header:x-auth-token",
		AuthScheme:  "",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			msg := "Token is not valid"
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				msg = "No token, authorization denied"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Errors(msg))
		},
	})
}

// UserID extracts the authenticated user id from the verified token claims
// that Protected stored in the request context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	userBlock, ok := claims["user"].(map[string]interface{})
	if !ok {
		return uuid.Nil, errors.New("missing user claim")
	}

	id, ok := userBlock["id"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing user id claim")
	}

	return uuid.Parse(id)
}
