package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Inv     *services.InventoryService
}

type productRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"imageUrl"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}

func (r productRequest) input() services.ProductInput {
	return services.ProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		ImageURL:      r.ImageURL,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
	}
}

func productID(c *fiber.Ctx) (int64, bool) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
	}
	return id, ok
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Catalog.GetActiveProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(ps)
}

// GET /api/products/search?keyword=
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	raw := c.Query("keyword")
	if strings.TrimSpace(raw) == "" {
		return h.List(c)
	}
	kw, ok := validate.Keyword(raw)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "keyword", "value": raw})
		return fail(c, fiber.StatusBadRequest, "enter a valid keyword (letters/numbers only)")
	}
	ps, err := h.Catalog.SearchByKeyword(c.UserContext(), kw)
	if err != nil {
		return err
	}
	return c.JSON(ps)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "product not found")
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return failBusiness(c, "product.get.fail", err, fiber.StatusNotFound, map[string]any{"product": id})
	}
	return c.JSON(p)
}

// GET /api/products/:id/availability
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	a, err := h.Inv.CheckAvailability(c.UserContext(), id)
	if err != nil {
		return failBusiness(c, "product.availability.fail", err, fiber.StatusNotFound, map[string]any{"product": id})
	}
	return c.JSON(a)
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return fail(c, fiber.StatusBadRequest, "malformed request body")
	}
	p, err := h.Catalog.CreateProduct(c.UserContext(), req.input())
	if err != nil {
		return failBusiness(c, "product.create.fail", err, fiber.StatusNotFound, nil)
	}
	applog.Audit(c, "product.create", map[string]any{"product": p.ID, "price": p.Price.String(), "stock": p.StockQuantity})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "product not found")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return fail(c, fiber.StatusBadRequest, "malformed request body")
	}
	p, err := h.Catalog.UpdateProduct(c.UserContext(), id, req.input())
	if err != nil {
		return failBusiness(c, "product.update.fail", err, fiber.StatusNotFound, map[string]any{"product": id})
	}
	applog.Audit(c, "product.update", map[string]any{"product": id, "price": p.Price.String(), "stock": p.StockQuantity})
	return c.JSON(p)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return fail(c, fiber.StatusNotFound, "product not found")
	}
	if err := h.Catalog.SoftDelete(c.UserContext(), id); err != nil {
		return failBusiness(c, "product.delete.fail", err, fiber.StatusNotFound, map[string]any{"product": id})
	}
	applog.Audit(c, "product.delete", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}
