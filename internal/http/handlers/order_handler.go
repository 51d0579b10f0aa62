package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

type OrderHandler struct {
	Order *services.OrderService
}

// POST /api/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	p := principal(c)
	if p == nil {
		return unauthorized(c, "auth.missing", nil)
	}
	o, err := h.Order.CreateOrder(c.UserContext(), p.UserID)
	if err != nil {
		// business rule errors (empty cart, unknown user, stock) surface as 400
		return failBusiness(c, "order.place.fail", err, fiber.StatusBadRequest, nil)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"total":    o.TotalAmount.String(),
		"items":    len(o.Items),
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/orders/:id
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid := c.Params("id")
	o, err := h.Order.GetOrder(c.UserContext(), oid)
	if err != nil {
		return failBusiness(c, "order.view.fail", err, fiber.StatusNotFound, map[string]any{"order_id": oid})
	}
	// Ownership check: owner or admin; everyone else sees a 404
	p := principal(c)
	if p == nil || o.UserID != p.UserID && !authzAdmin(p) {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return fail(c, fiber.StatusNotFound, "order not found")
	}
	return c.JSON(o)
}

// GET /api/orders lists the caller's own orders, newest first.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	p := principal(c)
	if p == nil {
		return unauthorized(c, "auth.missing", nil)
	}
	orders, err := h.Order.ListOrders(c.UserContext(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func authzAdmin(p *Principal) bool {
	return p != nil && p.Authenticated && p.Role == domain.RoleAdmin
}
