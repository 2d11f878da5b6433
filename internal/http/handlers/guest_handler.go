package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shoecrew/internal/log"
	"shoecrew/internal/services"
)

type GuestHandler struct {
	Cart *services.CartService
}

// Ensure hands out a guest identity: reuses the gid cookie when its
// record is still alive, recreates the record when TTL beat the cookie,
// and mints both otherwise.
func (h *GuestHandler) Ensure(c *fiber.Ctx) error {
	had := c.Cookies("gid")
	gid, items, err := h.Cart.EnsureGuest(c.Context(), had)
	if err != nil {
		return fail(c, "guest.ensure", err)
	}
	if had == "" {
		setSessionCookie(c, "gid", gid)
		applog.Info(c, "guest.created", map[string]any{"gid": gid})
	}
	return c.JSON(fiber.Map{"message": "Guest session ready", "sessionId": gid, "cart": items})
}

// Which reports the active identity kind without touching any store.
func (h *GuestHandler) Which(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		return c.JSON(fiber.Map{"sid": sid})
	}
	if gid := c.Cookies("gid"); gid != "" {
		return c.JSON(fiber.Map{"gid": gid})
	}
	return badRequest(c, "no user found")
}
