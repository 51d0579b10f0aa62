package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type addToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// POST /api/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	p := principal(c)
	if p == nil {
		return unauthorized(c, "auth.missing", nil)
	}
	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID <= 0 {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return fail(c, fiber.StatusBadRequest, "productId and quantity are required")
	}
	if !validate.Qty(req.Quantity, h.Cart.MaxQty) {
		applog.Security(c, "validation.fail", map[string]any{"field": "quantity", "value": req.Quantity})
		return fail(c, fiber.StatusBadRequest, "invalid quantity")
	}
	fields := map[string]any{"product": req.ProductID, "qty": req.Quantity}
	if err := h.Cart.AddItem(c.UserContext(), p.UserID, req.ProductID, req.Quantity); err != nil {
		return failBusiness(c, "cart.add.fail", err, fiber.StatusBadRequest, fields)
	}
	applog.Audit(c, "cart.add", fields)
	return c.SendStatus(fiber.StatusCreated)
}

// DELETE /api/cart/items/:productId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	p := principal(c)
	if p == nil {
		return unauthorized(c, "auth.missing", nil)
	}
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid productId")
	}
	if err := h.Cart.RemoveItem(c.UserContext(), p.UserID, pid); err != nil {
		return failBusiness(c, "cart.remove.fail", err, fiber.StatusBadRequest, map[string]any{"product": pid})
	}
	applog.Audit(c, "cart.remove", map[string]any{"product": pid})
	return c.JSON(fiber.Map{"message": "Product removed from cart"})
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	p := principal(c)
	if p == nil {
		return unauthorized(c, "auth.missing", nil)
	}
	lines, err := h.Cart.ListItems(c.UserContext(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(lines)
}
