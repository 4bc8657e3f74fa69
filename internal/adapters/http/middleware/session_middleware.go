package middleware

import (
	"errors"
	"strings"

	"skyfare/internal/core/domain"
	"skyfare/internal/core/services"
	"skyfare/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by SessionMiddleware.
const (
	LocalActor = "actor"
	LocalToken = "token"
)

// SessionMiddleware resolves the bearer token into the acting identity and
// stashes it in Locals. A blank or unknown token is rejected with 401 before
// the handler runs.
func SessionMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := ExtractToken(c)
		if tok == "" {
			return response.Unauthorized(c, "Session token required")
		}

		actor, err := authService.Resolve(c.Context(), tok)
		if err != nil {
			if errors.Is(err, domain.ErrNotLoggedIn) {
				return response.Unauthorized(c, "Not logged in")
			}
			return response.ServiceUnavailable(c, "Session store unavailable")
		}

		c.Locals(LocalActor, actor)
		c.Locals(LocalToken, tok)

		return c.Next()
	}
}

// ExtractToken pulls the session token from the Authorization header
// (Bearer scheme) or, failing that, the legacy "token" header.
func ExtractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Get("token")
}

// Actor returns the identity resolved by SessionMiddleware.
func Actor(c *fiber.Ctx) domain.Actor {
	actor, _ := c.Locals(LocalActor).(domain.Actor)
	return actor
}
