package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
)

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// businessStatus maps service sentinels to a status. ok is false for errors
// that are not a client's fault.
func businessStatus(err error, notFound int) (status int, ok bool) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrEmptyCart):
		return fiber.StatusBadRequest, true
	case errors.Is(err, services.ErrNotFound):
		return notFound, true
	}
	return 0, false
}

// failBusiness writes a 4xx for known business errors and hands anything else
// to the app ErrorHandler.
func failBusiness(c *fiber.Ctx, action string, err error, notFound int, fields map[string]any) error {
	status, ok := businessStatus(err, notFound)
	if !ok {
		return err
	}
	c.Status(status)
	applog.Info(c, action, withErr(fields, err))
	return fail(c, status, err.Error())
}

func withErr(fields map[string]any, err error) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["reason"] = err.Error()
	return out
}

// ErrorHandler logs unexpected errors and answers with a generic message so
// internals never reach the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return fail(c, fe.Code, fe.Message)
	}
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, "server.error", err, nil)
	return fail(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
}
