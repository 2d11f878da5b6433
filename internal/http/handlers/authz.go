package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shoecrew/internal/log"
	"shoecrew/internal/services"
)

// RequireAdmin resolves sid -> session -> user -> admin role and parks
// the user in Locals for the handler. The three failure modes stay
// distinct for the client.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := auth.CurrentAdmin(c.Context(), c.Cookies("sid"))
		if err != nil {
			applog.Security(c, "access.denied.admin", nil)
			return fail(c, "authz.admin", err)
		}
		c.Locals("user", u)
		return c.Next()
	}
}
