package handlers

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/authz"
	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

const (
	HeaderUserID = "X-User-ID"
	realm        = `Basic realm="storefront", charset="UTF-8"`
)

// Principal is the caller identity resolved for one request.
type Principal struct {
	UserID        int64
	Role          string
	Authenticated bool // came from verified credentials rather than X-User-ID
}

func principal(c *fiber.Ctx) *Principal {
	p, _ := c.Locals("principal").(*Principal)
	return p
}

// Identify resolves the caller from HTTP Basic credentials or, failing that,
// the X-User-ID header. Header identities are unverified and never carry more
// than the USER role.
func Identify(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if h := c.Get(fiber.HeaderAuthorization); h != "" {
			email, pass, ok := parseBasic(h)
			if !ok {
				return unauthorized(c, "auth.basic.malformed", nil)
			}
			u, err := auth.Authenticate(c.UserContext(), email, pass)
			if err != nil {
				return unauthorized(c, "auth.basic.fail", map[string]any{"email": email})
			}
			setPrincipal(c, &Principal{UserID: u.ID, Role: u.Role, Authenticated: true})
			return c.Next()
		}
		if raw := c.Get(HeaderUserID); raw != "" {
			id, ok := validate.ID(raw)
			if !ok {
				applog.Security(c, "validation.fail", map[string]any{"field": HeaderUserID})
				return fail(c, fiber.StatusBadRequest, "invalid "+HeaderUserID)
			}
			setPrincipal(c, &Principal{UserID: id, Role: domain.RoleUser})
		}
		return c.Next()
	}
}

func setPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals("principal", p)
	c.Locals("user_id", p.UserID)
}

func parseBasic(h string) (user, pass string, ok bool) {
	const prefix = "Basic "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(h[len(prefix):]))
	if err != nil {
		return "", "", false
	}
	user, pass, ok = strings.Cut(string(raw), ":")
	return user, pass, ok && user != ""
}

func unauthorized(c *fiber.Ctx, action string, fields map[string]any) error {
	c.Set(fiber.HeaderWWWAuthenticate, realm)
	c.Status(fiber.StatusUnauthorized)
	applog.Security(c, action, fields)
	return fail(c, fiber.StatusUnauthorized, "authentication required")
}

// Authorize enforces the policy table ahead of the route handlers.
func Authorize(policy *authz.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		required, ok := policy.Required(c.Method(), c.Path())
		if !ok {
			c.Status(fiber.StatusForbidden)
			applog.Security(c, "access.denied.norule", nil)
			return fail(c, fiber.StatusForbidden, "access denied")
		}
		if required == authz.RolePublic {
			return c.Next()
		}
		p := principal(c)
		if p == nil {
			return unauthorized(c, "access.denied.anonymous", map[string]any{"required": required})
		}
		if !authz.Satisfies(p.Role, required) {
			c.Status(fiber.StatusForbidden)
			applog.Security(c, "access.denied", map[string]any{"required": required, "role": p.Role})
			return fail(c, fiber.StatusForbidden, "access denied")
		}
		return c.Next()
	}
}
