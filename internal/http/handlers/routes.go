package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"storefront/internal/authz"
	applog "storefront/internal/log"
)

// Mount registers the JSON API on app. Every /api request passes through
// Identify and then Authorize against policy.
func Mount(app *fiber.App, d *Deps, policy *authz.Policy) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api", Identify(d.Auth), Authorize(policy))

	searchLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|search"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.search.hit", nil)
			return fail(c, fiber.StatusTooManyRequests, "rate limit exceeded, retry soon")
		},
	})

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/search", searchLimiter, d.ProductHandler.Search)
	api.Get("/products/:id", d.ProductHandler.Get)
	api.Get("/products/:id/availability", d.ProductHandler.Availability)
	api.Post("/products", d.ProductHandler.Create)
	api.Put("/products/:id", d.ProductHandler.Update)
	api.Delete("/products/:id", d.ProductHandler.Delete)

	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart", d.CartHandler.Add)
	api.Delete("/cart/items/:productId", d.CartHandler.Remove)

	api.Get("/orders", d.OrderHandler.History)
	api.Post("/orders", d.OrderHandler.Place)
	api.Get("/orders/:id", d.OrderHandler.View)

	api.Post("/users", d.UserHandler.Register)
	api.Get("/users", d.UserHandler.List)
	api.Get("/users/:id", d.UserHandler.Get)
	api.Put("/users/:id", d.UserHandler.Update)

	admin := api.Group("/admin")
	admin.Get("/orders", d.AdminHandler.Orders)
	admin.Get("/inventory", d.AdminHandler.Inventory)
	admin.Put("/inventory/:id", d.AdminHandler.Restock)

	app.Use(func(c *fiber.Ctx) error {
		return fail(c, fiber.StatusNotFound, "not found")
	})
}
