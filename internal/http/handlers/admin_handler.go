package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type AdminHandler struct {
	Order *services.OrderService
	Inv   *services.InventoryService
}

// GET /api/admin/orders?limit=
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	ords, err := h.Order.LatestOrders(c.UserContext(), limit)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return err
	}
	return c.JSON(ords)
}

// GET /api/admin/inventory
func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.Inv.Report(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.inventory.list.fail", err, nil)
		return err
	}
	return c.JSON(rows)
}

type restockRequest struct {
	Qty *int `json:"qty"`
}

// PUT /api/admin/inventory/:id
func (h *AdminHandler) Restock(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	var req restockRequest
	if err := c.BodyParser(&req); err != nil || !ok || req.Qty == nil {
		return fail(c, fiber.StatusBadRequest, "invalid input")
	}
	fields := map[string]any{"product": pid, "qty": *req.Qty}
	if err := h.Inv.Restock(c.UserContext(), pid, *req.Qty); err != nil {
		return failBusiness(c, "admin.inventory.save.fail", err, fiber.StatusNotFound, fields)
	}
	applog.Audit(c, "admin.inventory.save", fields)
	return c.SendStatus(fiber.StatusNoContent)
}
