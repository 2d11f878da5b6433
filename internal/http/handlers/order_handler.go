package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shoecrew/internal/domain"
	applog "shoecrew/internal/log"
	"shoecrew/internal/services"
	"shoecrew/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type placeReq struct {
	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return fail(c, "order.place", services.ErrNotLoggedIn)
	}
	var req placeReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	method := domain.PaymentMethod(req.PaymentMethod)
	switch method {
	case "", domain.PayCOD, domain.PayCard, domain.PayUPI, domain.PayPaypal:
	default:
		return badRequest(c, "invalid payment method")
	}
	status := domain.PaymentStatus(req.PaymentStatus)
	switch status {
	case "", domain.PaymentPending, domain.PaymentPaid, domain.PaymentFailed:
	default:
		return badRequest(c, "invalid payment status")
	}

	order, err := h.Orders.Place(c.Context(), sid, services.PlaceInput{
		PaymentMethod: method,
		PaymentStatus: status,
	})
	if err != nil {
		return fail(c, "order.place", err)
	}
	applog.Audit(c, "order.placed", map[string]any{"order": order.ID.Hex(), "total": order.TotalAmount})
	return c.JSON(fiber.Map{"message": "Order placed successfully", "order": order})
}

func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return fail(c, "order.mine", services.ErrNotLoggedIn)
	}
	orders, err := h.Orders.MyOrders(c.Context(), sid)
	if err != nil {
		return fail(c, "order.mine", err)
	}
	return c.JSON(orders)
}

// All lists the pending-payment fulfillment queue (admin).
func (h *OrderHandler) All(c *fiber.Ctx) error {
	orders, err := h.Orders.PendingAll(c.Context())
	if err != nil {
		return fail(c, "order.all", err)
	}
	return c.JSON(orders)
}

// Deliver marks an order paid and delivered (admin).
func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	id, ok := validate.ObjectID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	order, err := h.Orders.MarkDelivered(c.Context(), id)
	if err != nil {
		return fail(c, "order.deliver", err)
	}
	applog.Audit(c, "order.delivered", map[string]any{"order": id})
	return c.JSON(fiber.Map{"message": "Order delivered successfully", "order": order})
}
