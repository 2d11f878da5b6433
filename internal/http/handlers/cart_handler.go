package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shoecrew/internal/log"
	"shoecrew/internal/services"
	"shoecrew/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type addReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	id, ok := validate.ObjectID(req.ProductID)
	if !ok {
		return badRequest(c, "missing productId")
	}

	items, err := h.Cart.Add(c.Context(), c.Cookies("sid"), c.Cookies("gid"), id, validate.Qty(req.Quantity))
	if err != nil {
		return fail(c, "cart.add", err)
	}
	applog.Info(c, "cart.add", map[string]any{"product": id})
	return c.JSON(fiber.Map{"message": "Added to cart", "cart": items})
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	items, err := h.Cart.Get(c.Context(), c.Cookies("sid"), c.Cookies("gid"))
	if err != nil {
		return fail(c, "cart.get", err)
	}
	return c.JSON(fiber.Map{"cart": items})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	entryID, ok := validate.ObjectID(c.Params("productId"))
	if !ok {
		return badRequest(c, "invalid cart entry id")
	}
	items, err := h.Cart.Remove(c.Context(), c.Cookies("sid"), c.Cookies("gid"), entryID)
	if err != nil {
		return fail(c, "cart.remove", err)
	}
	applog.Info(c, "cart.remove", map[string]any{"entry": entryID})
	return c.JSON(fiber.Map{"message": "Removed from cart", "cart": items})
}
