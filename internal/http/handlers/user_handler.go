package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type UserHandler struct {
	Users *services.UserService
}

type userRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// POST /api/users
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed request body")
	}
	u, err := h.Users.Register(c.UserContext(), services.Registration{Email: req.Email, Name: req.Name, Password: req.Password})
	if err != nil {
		return failBusiness(c, "user.register.fail", err, fiber.StatusBadRequest, map[string]any{"email": req.Email})
	}
	applog.Audit(c, "user.register", map[string]any{"user": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "user not found")
	}
	u, err := h.Users.Get(c.UserContext(), id)
	if err != nil {
		return failBusiness(c, "user.get.fail", err, fiber.StatusNotFound, map[string]any{"user": id})
	}
	return c.JSON(u)
}

// PUT /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "user not found")
	}
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed request body")
	}
	u, err := h.Users.Update(c.UserContext(), id, req.Email, req.Name)
	if err != nil {
		return failBusiness(c, "user.update.fail", err, fiber.StatusNotFound, map[string]any{"user": id})
	}
	applog.Audit(c, "user.update", map[string]any{"user": id})
	return c.JSON(u)
}
