package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "shoecrew/internal/log"
	"shoecrew/internal/services"
)

// fail converts a service failure into the JSON error body for its
// category; anything unrecognized is a 500 and gets logged.
func fail(c *fiber.Ctx, action string, err error) error {
	var code int
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		code = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrAccessDenied), errors.Is(err, services.ErrNotOwner):
		code = fiber.StatusForbidden
	case errors.Is(err, services.ErrSessionNotFound), errors.Is(err, services.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrBadCreds),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrBadAdminRef),
		errors.Is(err, services.ErrNoSession),
		errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrOTPNotFound),
		errors.Is(err, services.ErrOTPMismatch):
		code = fiber.StatusBadRequest
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error"})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

const sessionCookieTTL = 24 * time.Hour

func setSessionCookie(c *fiber.Ctx, name, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Expires:  time.Now().Add(sessionCookieTTL),
	})
}

func clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Expires:  time.Now().Add(-time.Hour),
	})
}
